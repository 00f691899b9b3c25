// Package queries contains read operations for retrieving system state.
// Handlers read straight from the database and return read models shaped for
// the API; aggregates are only loaded where an authorization rule needs them.
package queries

import (
	"math"
	"strings"

	"parcelhub/internal/pkg/errs"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a 1-based page request. Zero values fall back to the defaults.
type Page struct {
	Number int
	Limit  int
}

func newPage(number, limit int) (Page, error) {
	if number == 0 {
		number = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if number < 1 {
		return Page{}, errs.NewValueIsOutOfRangeError("page", number, 1, math.MaxInt32)
	}
	if limit < 1 || limit > MaxLimit {
		return Page{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxLimit)
	}
	return Page{Number: number, Limit: limit}, nil
}

func (p Page) offset() int {
	return (p.Number - 1) * p.Limit
}

// Meta describes the page that was returned.
type Meta struct {
	Page      int
	Limit     int
	Total     int64
	TotalPage int64
}

func newMeta(p Page, total int64) Meta {
	limit := int64(p.Limit)
	return Meta{
		Page:      p.Number,
		Limit:     p.Limit,
		Total:     total,
		TotalPage: (total + limit - 1) / limit,
	}
}

// likePattern escapes LIKE wildcards so a search term matches literally.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
