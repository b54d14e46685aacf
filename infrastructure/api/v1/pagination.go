package v1

import (
	"net/http"
	"strconv"

	"github.com/helixml/subway/domain/repository"
	"github.com/helixml/subway/infrastructure/api/jsonapi"
)

// Paging limits.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationParams holds pagination parameters parsed from query strings.
type PaginationParams struct {
	page     int
	pageSize int
}

// ParsePagination reads page and page_size from the request.
// Invalid values fall back to page 1 and DefaultPageSize; page_size is
// capped at MaxPageSize.
func ParsePagination(r *http.Request) PaginationParams {
	params := PaginationParams{page: 1, pageSize: DefaultPageSize}
	q := r.URL.Query()

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page >= 1 {
		params.page = page
	}
	if size, err := strconv.Atoi(q.Get("page_size")); err == nil && size >= 1 {
		params.pageSize = min(size, MaxPageSize)
	}
	return params
}

// Page returns the page number (1-indexed).
func (p PaginationParams) Page() int { return p.page }

// PageSize returns the page size.
func (p PaginationParams) PageSize() int { return p.pageSize }

// Offset returns the offset for database queries.
func (p PaginationParams) Offset() int { return (p.page - 1) * p.pageSize }

// Options returns repository options for database pagination.
func (p PaginationParams) Options() []repository.Option {
	return repository.WithPagination(p.pageSize, p.Offset())
}

func (p PaginationParams) totalPages(total int64) int {
	return int((total + int64(p.pageSize) - 1) / int64(p.pageSize))
}

// Meta builds the JSON:API meta object for a page of results.
func (p PaginationParams) Meta(total int64) *jsonapi.Meta {
	return &jsonapi.Meta{
		"page":        p.page,
		"page_size":   p.pageSize,
		"total_count": total,
		"total_pages": p.totalPages(total),
	}
}

// Links builds the JSON:API pagination links for the request.
func (p PaginationParams) Links(r *http.Request, total int64) *jsonapi.Links {
	pageURL := func(page int) string {
		q := r.URL.Query()
		q.Set("page", strconv.Itoa(page))
		q.Set("page_size", strconv.Itoa(p.pageSize))
		return r.URL.Path + "?" + q.Encode()
	}

	links := &jsonapi.Links{
		Self:  pageURL(p.page),
		First: pageURL(1),
	}
	pages := p.totalPages(total)
	if pages > 0 {
		links.Last = pageURL(pages)
	}
	if p.page > 1 {
		links.Prev = pageURL(p.page - 1)
	}
	if p.page < pages {
		links.Next = pageURL(p.page + 1)
	}
	return links
}
