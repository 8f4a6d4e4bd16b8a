package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"boardapi/internal/pagination"
	"boardapi/internal/policy"

	"github.com/gin-gonic/gin"
)

// listing describes one list endpoint: how to count rows, fetch a window of
// them and render a row.
type listing[M any, R any] struct {
	count     func() (int64, error)
	fetch     func(offset, limit int) ([]M, error)
	serialize func(M) R
	what      string
}

// respondList writes either a paginated envelope or, when pagination is
// disabled, a plain JSON array.
func respondList[M any, R any](c *gin.Context, cfg policy.Pagination, l listing[M, R]) {
	if !cfg.Enabled {
		rows, err := l.fetch(0, -1)
		if err != nil {
			internalError(c, "Failed to retrieve "+l.what, err)
			return
		}
		c.JSON(http.StatusOK, serializeAll(rows, l.serialize))
		return
	}

	req := pagination.NewRequest(c, cfg)
	total, err := l.count()
	if err != nil {
		internalError(c, "Failed to count "+l.what, err)
		return
	}
	number, offset, limit, err := req.Window(total)
	if errors.Is(err, pagination.ErrInvalidPage) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid page."})
		return
	}

	rows, err := l.fetch(offset, limit)
	if err != nil {
		internalError(c, "Failed to retrieve "+l.what, err)
		return
	}
	c.JSON(http.StatusOK, pagination.Build(req, number, total, serializeAll(rows, l.serialize)))
}

func serializeAll[M any, R any](rows []M, serialize func(M) R) []R {
	out := make([]R, len(rows))
	for i, row := range rows {
		out[i] = serialize(row)
	}
	return out
}

func internalError(c *gin.Context, msg string, err error) {
	slog.ErrorContext(c.Request.Context(), msg, "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
