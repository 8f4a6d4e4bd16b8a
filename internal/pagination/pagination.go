// Package pagination implements page-number pagination with the
// {count, next, previous, results} envelope.
package pagination

import (
	"errors"
	"net/url"
	"strconv"

	"boardapi/internal/policy"

	"github.com/gin-gonic/gin"
)

const (
	PageQueryParam = "page"
	lastPage       = "last"
)

var ErrInvalidPage = errors.New("invalid page")

type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Request is a parsed page request. Number is resolved against the total
// count by Window, because "last" cannot be known up front.
type Request struct {
	raw  string
	Size int
	url  *url.URL
}

func NewRequest(c *gin.Context, cfg policy.Pagination) Request {
	return Request{
		raw:  c.Query(PageQueryParam),
		Size: pageSize(c, cfg),
		url:  absoluteURL(c),
	}
}

func pageSize(c *gin.Context, cfg policy.Pagination) int {
	size := cfg.PageSize
	if cfg.PageSizeQueryParam != "" {
		if v, err := strconv.Atoi(c.Query(cfg.PageSizeQueryParam)); err == nil && v > 0 {
			size = v
		}
	}
	if cfg.MaxPageSize > 0 && size > cfg.MaxPageSize {
		size = cfg.MaxPageSize
	}
	return size
}

func absoluteURL(c *gin.Context) *url.URL {
	u := *c.Request.URL
	u.Scheme = "http"
	if c.Request.TLS != nil {
		u.Scheme = "https"
	}
	u.Host = c.Request.Host
	return &u
}

// Window resolves the requested page against total and returns the 1-based
// page number along with the offset and limit to query.
func (r Request) Window(total int64) (number, offset, limit int, err error) {
	pages := numPages(total, r.Size)

	switch r.raw {
	case "":
		number = 1
	case lastPage:
		number = pages
	default:
		number, err = strconv.Atoi(r.raw)
		if err != nil || number < 1 {
			return 0, 0, 0, ErrInvalidPage
		}
	}
	if number > pages {
		return 0, 0, 0, ErrInvalidPage
	}
	return number, (number - 1) * r.Size, r.Size, nil
}

// numPages never returns less than one so an empty first page is valid.
func numPages(total int64, size int) int {
	if total <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}

func Build[T any](r Request, number int, total int64, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}
	page := Page[T]{Count: total, Results: results}
	if number < numPages(total, r.Size) {
		page.Next = r.link(number + 1)
	}
	if number > 1 {
		page.Previous = r.link(number - 1)
	}
	return page
}

func (r Request) link(number int) *string {
	u := *r.url
	q := u.Query()
	if number == 1 {
		q.Del(PageQueryParam)
	} else {
		q.Set(PageQueryParam, strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
