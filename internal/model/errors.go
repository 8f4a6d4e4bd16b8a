package model

import (
	"errors"
	"strings"
)

var (
	ErrBlankName  = errors.New("board name must not be blank")
	ErrBlankTitle = errors.New("item title must not be blank")
)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
