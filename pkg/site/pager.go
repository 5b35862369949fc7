package site

import "github.com/wedsite/wedsite/pkg/wedmodel"

const DefaultPageLimit = 10

// Pager is the pagination state of a server paginated list. Page is always
// within [1, TotalPages].
type Pager struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

func NewPager(page, limit, total int) Pager {
	if limit <= 0 {
		limit = DefaultPageLimit
	}

	p := Pager{Limit: limit, Total: total, TotalPages: wedmodel.TotalPages(total, limit)}
	p.Page = p.clamp(page)
	return p
}

func (p Pager) clamp(page int) int {
	switch {
	case page < 1:
		return 1
	case page > p.TotalPages:
		return p.TotalPages
	default:
		return page
	}
}

// Next is the page after the current one, or the current page on the last.
func (p Pager) Next() int {
	return p.clamp(p.Page + 1)
}

// Prev is the page before the current one, or 1 on the first.
func (p Pager) Prev() int {
	return p.clamp(p.Page - 1)
}

func (p Pager) HasNext() bool {
	return p.Page < p.TotalPages
}

func (p Pager) HasPrev() bool {
	return p.Page > 1
}
