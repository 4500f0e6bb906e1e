package querykit

import (
	"math"

	"rolegate/internal/platform/config"
	perr "rolegate/internal/platform/errors"
)

// Limits bounds the page size a list endpoint accepts
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits apply when no PAGE_ configuration is present
var DefaultLimits = Limits{Default: 10, Max: 100}

// LimitsFrom reads DEFAULT_LIMIT and MAX_LIMIT from a PAGE_ prefixed view
func LimitsFrom(c config.Conf) Limits { return DefaultLimits.From(c) }

// From overrides l with DEFAULT_LIMIT and MAX_LIMIT from c
// the default never exceeds the cap
func (l Limits) From(c config.Conf) Limits {
	l = Limits{
		Default: c.MayPositiveInt("DEFAULT_LIMIT", l.Default),
		Max:     c.MayPositiveInt("MAX_LIMIT", l.Max),
	}
	if l.Default > l.Max {
		l.Default = l.Max
	}
	return l
}

// Window is a resolved page request
type Window struct {
	Page  int
	Limit int
}

// Offset is the number of rows before the window
// it saturates at math.MaxInt, so a page far past the end stays past the end
func (w Window) Offset() int {
	if w.Page < 1 || w.Limit < 1 {
		return 0
	}
	if w.Page-1 > math.MaxInt/w.Limit {
		return math.MaxInt
	}
	return (w.Page - 1) * w.Limit
}

// Window resolves the requested page and limit
// absent values take the defaults, values below one are rejected, a limit over Max is clamped
func (l Limits) Window(page, limit *int) (Window, error) {
	w := Window{Page: 1, Limit: l.Default}
	if page != nil {
		if *page < 1 {
			return Window{}, perr.FieldValidationf("page", "page must be at least 1")
		}
		w.Page = *page
	}
	if limit != nil {
		if *limit < 1 {
			return Window{}, perr.FieldValidationf("limit", "limit must be at least 1")
		}
		w.Limit = min(*limit, l.Max)
	}
	return w, nil
}

// Pagination is the metadata block rendered next to a page of data
type Pagination struct {
	Current int `json:"current"`
	Limit   int `json:"limit"`
	Records int `json:"records"`
	Pages   int `json:"pages"`
}

// NewPagination computes the page count for records rows under w
func NewPagination(w Window, records int) Pagination {
	pages := 0
	if records > 0 {
		pages = (records + w.Limit - 1) / w.Limit
	}
	return Pagination{Current: w.Page, Limit: w.Limit, Records: records, Pages: pages}
}

// Page is one window of results
// it satisfies the http layer's paginated envelope
type Page[T any] struct {
	Data       []T
	Pagination Pagination
}

// PageData is the data slice, never nil
func (p Page[T]) PageData() any {
	if p.Data == nil {
		return []T{}
	}
	return p.Data
}

// PageInfo is the pagination block
func (p Page[T]) PageInfo() any { return p.Pagination }

// MapPage converts each item while keeping the pagination block
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Data))
	for _, v := range p.Data {
		out = append(out, fn(v))
	}
	return Page[U]{Data: out, Pagination: p.Pagination}
}
