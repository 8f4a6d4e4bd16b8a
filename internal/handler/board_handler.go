package handler

import (
	"context"
	"strings"

	"boardapi/internal/middleware"
	"boardapi/internal/model"
	"boardapi/internal/policy"
	"boardapi/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	nameFilter    = "name"
	orderingParam = "ordering"
)

type BoardStore interface {
	Count(ctx context.Context, q repository.BoardQuery) (int64, error)
	List(ctx context.Context, q repository.BoardQuery) ([]model.Board, error)
	ListAll(ctx context.Context) ([]model.Board, error)
}

type BoardHandler struct {
	boards BoardStore
	policy policy.Boards
}

func NewBoardHandler(boards BoardStore, p policy.Boards) *BoardHandler {
	return &BoardHandler{
		boards: boards,
		policy: p,
	}
}

// List godoc
// @Summary      List boards
// @Description  Boards visible under the configured scope, filterable by exact name and orderable by id.
// @Tags         Boards
// @Produce      json
// @Param        name       query  string  false  "Exact board name"
// @Param        ordering   query  string  false  "id or -id"
// @Param        page       query  string  false  "Page number or 'last'"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  pagination.Page[BoardResponse]
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /generic/boards/ [get]
func (h *BoardHandler) List(c *gin.Context) {
	q := h.query(c)
	ctx := c.Request.Context()

	respondList(c, h.policy.Pagination, listing[model.Board, BoardResponse]{
		count: func() (int64, error) { return h.boards.Count(ctx, q) },
		fetch: func(offset, limit int) ([]model.Board, error) {
			q.Offset, q.Limit = offset, limit
			return h.boards.List(ctx, q)
		},
		serialize: NewBoardResponse,
		what:      "boards",
	})
}

func (h *BoardHandler) query(c *gin.Context) repository.BoardQuery {
	q := repository.BoardQuery{Limit: -1}

	if h.policy.Scope == policy.ScopeOwner {
		q.OwnedOnly = true
		q.OwnerID = middleware.ViewerID(c)
	}
	if h.policy.Filterable(nameFilter) {
		// an empty value means no filter
		if name := c.Query(nameFilter); name != "" {
			q.Name = &name
		}
	}
	// unknown ordering fields are ignored rather than rejected
	if ordering := c.Query(orderingParam); ordering != "" {
		if h.policy.Orderable(strings.TrimPrefix(ordering, "-")) {
			q.OrderBy = ordering
		}
	}
	return q
}
