package loggerise

import (
	"context"
	"net/url"
	"strconv"
)

// ListParams are the pagination and filter controls shared by every List
// operation. Resource-specific filters live on the per-service params
// structs that embed this one.
type ListParams struct {
	// Page is the 1-based page to fetch. Zero means the API default
	// (first page).
	Page int

	// PerPage is the page size. Zero means the API default.
	PerPage int

	// Search is a free-text filter applied server-side across the
	// resource's searchable columns.
	Search string

	// Sort names the column to order by, prefixed with "-" for
	// descending, e.g. "-created_at".
	Sort string
}

// values encodes the shared parameters into query values. Per-service
// params extend the returned set.
func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	return q
}

// PageMeta is the pagination block of a list response.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// Page is one page of a list response: the items plus the pagination
// metadata the API wraps them in.
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

// HasMore reports whether pages beyond this one exist.
func (p *Page[T]) HasMore() bool {
	return p.Meta.CurrentPage < p.Meta.LastPage
}

// NextPage returns the number of the page after this one, or zero when
// this is the last page.
func (p *Page[T]) NextPage() int {
	if !p.HasMore() {
		return 0
	}
	return p.Meta.CurrentPage + 1
}

// Iter walks every item of a paginated listing, fetching pages lazily.
//
// Construct one with [NewIter] around a service List call, then drive it
// with the usual iterator loop:
//
//	it := loggerise.NewIter(func(ctx context.Context, page int) (*loggerise.Page[loggerise.Invoice], error) {
//	    params := loggerise.InvoiceListParams{Status: loggerise.InvoiceOverdue}
//	    params.Page = page
//	    return client.Invoices.List(ctx, params)
//	})
//	for it.Next(ctx) {
//	    handle(it.Item())
//	}
//	if err := it.Err(); err != nil {
//	    return err
//	}
//
// Iter is not safe for concurrent use.
type Iter[T any] struct {
	fetch    func(ctx context.Context, page int) (*Page[T], error)
	page     *Page[T]
	idx      int
	nextPage int
	err      error
	done     bool
}

// NewIter creates an [Iter] over the paginated listing served by fetch.
// fetch is called with increasing page numbers starting at 1.
func NewIter[T any](fetch func(ctx context.Context, page int) (*Page[T], error)) *Iter[T] {
	return &Iter[T]{fetch: fetch, nextPage: 1}
}

// Next advances the iterator, fetching the next page when the current one
// is exhausted. It returns false when all items are consumed or an error
// occurred; check [Iter.Err] after the loop.
func (it *Iter[T]) Next(ctx context.Context) bool {
	if it.err != nil || it.done {
		return false
	}
	if it.page != nil && it.idx+1 < len(it.page.Data) {
		it.idx++
		return true
	}
	for {
		if it.page != nil {
			next := it.page.NextPage()
			if next == 0 {
				it.done = true
				return false
			}
			it.nextPage = next
		}
		page, err := it.fetch(ctx, it.nextPage)
		if err != nil {
			it.err = err
			it.done = true
			return false
		}
		it.page = page
		it.idx = 0
		if len(page.Data) > 0 {
			return true
		}
		// empty page: trust the metadata and keep going or stop
		if !page.HasMore() {
			it.done = true
			return false
		}
	}
}

// Item returns the current item. Only valid after a true return from
// [Iter.Next].
func (it *Iter[T]) Item() T {
	return it.page.Data[it.idx]
}

// Err returns the first error the iterator hit, or nil.
func (it *Iter[T]) Err() error {
	return it.err
}

// CollectAll drains an [Iter], returning every item of the listing. Use
// with care on large collections.
func CollectAll[T any](ctx context.Context, it *Iter[T]) ([]T, error) {
	var items []T
	for it.Next(ctx) {
		items = append(items, it.Item())
	}
	return items, it.Err()
}
