package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NaiveHandler lists boards by hand, with no auth, filtering or paging.
type NaiveHandler struct {
	boards BoardStore
}

func NewNaiveHandler(boards BoardStore) *NaiveHandler {
	return &NaiveHandler{boards: boards}
}

// Boards godoc
// @Summary  List every board (hand-built payload)
// @Tags     Boards
// @Produce  json
// @Success  200  {object}  map[string][]NaiveBoard
// @Router   /naive_view/ [get]
func (h *NaiveHandler) Boards(c *gin.Context) {
	boards, err := h.boards.ListAll(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to retrieve boards", err)
		return
	}

	payload := gin.H{"boards": serializeAll(boards, NewNaiveBoard)}
	c.JSON(http.StatusOK, payload)
}
