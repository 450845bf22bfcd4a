// Package pagination windows the transaction and transfer history
// listings, the only collections in the app that grow without bound.
package pagination

import "gorm.io/gorm"

const (
	// DefaultPageSize matches roughly one month of typical activity.
	DefaultPageSize = 50
	// MaxPageSize caps what a client may request in one page.
	MaxPageSize = 200
)

// PageRequest carries the page window requested through query strings.
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// Normalize clamps the request into a usable window: zero values pick
// the defaults, an oversized page_size is capped rather than rejected.
// A zero-value PageRequest therefore means "first page, default size".
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.PageSize < 1:
		p.PageSize = DefaultPageSize
	case p.PageSize > MaxPageSize:
		p.PageSize = MaxPageSize
	}
}

func (p *PageRequest) offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResponse wraps one page of items with the window metadata the
// client needs to render paging controls.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResponse builds a PageResponse, serializing an empty page as
// [] rather than null.
func NewPageResponse[T any](data []T, page, pageSize int, totalItems int64) PageResponse[T] {
	if data == nil {
		data = []T{}
	}
	return PageResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: int((totalItems + int64(pageSize) - 1) / int64(pageSize)),
	}
}

// Paginate returns a GORM scope applying the request's OFFSET and
// LIMIT. The request is normalized first, so callers that already
// called Normalize see no change.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		req.Normalize()
		return db.Offset(req.offset()).Limit(req.PageSize)
	}
}
