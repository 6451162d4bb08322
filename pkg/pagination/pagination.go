package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is one requested page of a newest-first list. Build it with New or
// Parse so Page and Limit are always within bounds.
type Params struct {
	Page  int
	Limit int
}

// New clamps page and limit: a page below 1 becomes the first page, a
// missing limit the default one, and a limit above MaxLimit is capped.
func New(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Parse reads page/limit from the query string. Unparseable values fall back to the defaults.
func Parse(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return New(page, limit)
}

// Offset is the number of rows that precede the page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages is the page count for total rows at this page size.
func (p Params) TotalPages(total int64) int64 {
	if p.Limit <= 0 {
		return 0
	}
	return (total + int64(p.Limit) - 1) / int64(p.Limit)
}
