package loggerise

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"testing"
)

// TestListParams_Values verifies zero-valued fields stay out of the query
// string and set fields are encoded.
func TestListParams_Values(t *testing.T) {
	tests := []struct {
		name   string
		params ListParams
		want   string
	}{
		{"empty", ListParams{}, ""},
		{"page only", ListParams{Page: 3}, "page=3"},
		{"full", ListParams{Page: 2, PerPage: 50, Search: "rotterdam", Sort: "-created_at"},
			"page=2&per_page=50&search=rotterdam&sort=-created_at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.values().Encode(); got != tt.want {
				t.Errorf("values() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestPage_Pagination verifies HasMore and NextPage against the metadata.
func TestPage_Pagination(t *testing.T) {
	middle := &Page[int]{Meta: PageMeta{CurrentPage: 2, LastPage: 5}}
	if !middle.HasMore() {
		t.Error("HasMore() = false on page 2 of 5")
	}
	if got := middle.NextPage(); got != 3 {
		t.Errorf("NextPage() = %d, want 3", got)
	}

	last := &Page[int]{Meta: PageMeta{CurrentPage: 5, LastPage: 5}}
	if last.HasMore() {
		t.Error("HasMore() = true on the last page")
	}
	if got := last.NextPage(); got != 0 {
		t.Errorf("NextPage() = %d, want 0", got)
	}
}

// TestIter_WalksAllPages verifies the iterator requests pages lazily and
// yields every item exactly once, in order.
func TestIter_WalksAllPages(t *testing.T) {
	pages := map[int]*Page[string]{
		1: {Data: []string{"a", "b"}, Meta: PageMeta{CurrentPage: 1, LastPage: 3}},
		2: {Data: []string{"c"}, Meta: PageMeta{CurrentPage: 2, LastPage: 3}},
		3: {Data: []string{"d", "e"}, Meta: PageMeta{CurrentPage: 3, LastPage: 3}},
	}
	var fetched []int
	it := NewIter(func(ctx context.Context, page int) (*Page[string], error) {
		fetched = append(fetched, page)
		return pages[page], nil
	})

	var got []string
	for it.Next(context.Background()) {
		got = append(got, it.Item())
	}
	if err := it.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	want := []string{"a", "b", "c", "d", "e"}
	if len(got) != len(want) {
		t.Fatalf("collected %d items %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %q, want %q", i, got[i], want[i])
		}
	}
	if len(fetched) != 3 || fetched[0] != 1 || fetched[1] != 2 || fetched[2] != 3 {
		t.Errorf("fetched pages %v, want [1 2 3]", fetched)
	}

	// exhausted iterators stay exhausted
	if it.Next(context.Background()) {
		t.Error("Next() = true after exhaustion")
	}
}

// TestIter_PropagatesFetchError verifies an error stops iteration and is
// reported through Err.
func TestIter_PropagatesFetchError(t *testing.T) {
	boom := errors.New("boom")
	it := NewIter(func(ctx context.Context, page int) (*Page[string], error) {
		if page == 2 {
			return nil, boom
		}
		return &Page[string]{Data: []string{"a"}, Meta: PageMeta{CurrentPage: 1, LastPage: 2}}, nil
	})

	var count int
	for it.Next(context.Background()) {
		count++
	}
	if count != 1 {
		t.Errorf("yielded %d items before the error, want 1", count)
	}
	if !errors.Is(it.Err(), boom) {
		t.Errorf("Err() = %v, want %v", it.Err(), boom)
	}
	if it.Next(context.Background()) {
		t.Error("Next() = true after an error")
	}
}

// TestIter_EmptyListing verifies an empty first page terminates cleanly.
func TestIter_EmptyListing(t *testing.T) {
	it := NewIter(func(ctx context.Context, page int) (*Page[string], error) {
		return &Page[string]{Meta: PageMeta{CurrentPage: 1, LastPage: 1}}, nil
	})
	if it.Next(context.Background()) {
		t.Error("Next() = true on an empty listing")
	}
	if err := it.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

// TestIter_SkipsEmptyMiddlePage verifies an empty page with more pages
// behind it does not end the walk.
func TestIter_SkipsEmptyMiddlePage(t *testing.T) {
	pages := map[int]*Page[string]{
		1: {Data: []string{"a"}, Meta: PageMeta{CurrentPage: 1, LastPage: 3}},
		2: {Meta: PageMeta{CurrentPage: 2, LastPage: 3}},
		3: {Data: []string{"b"}, Meta: PageMeta{CurrentPage: 3, LastPage: 3}},
	}
	it := NewIter(func(ctx context.Context, page int) (*Page[string], error) {
		return pages[page], nil
	})

	got, err := CollectAll(context.Background(), it)
	if err != nil {
		t.Fatalf("CollectAll() error = %v", err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("CollectAll() = %v, want [a b]", got)
	}
}

// TestCollectAll_OverHTTP drives the iterator through a real service call
// against a paginating test server.
func TestCollectAll_OverHTTP(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 0 {
			page = 1
		}
		fmt.Fprintf(w, `{
			"data": [{"id": %d, "number": "INV-2026-%04d"}],
			"meta": {"current_page": %d, "last_page": 2, "per_page": 1, "total": 2}
		}`, page, page, page)
	})
	c := newTestClient(t, handler, WithToken("tok"))

	it := NewIter(func(ctx context.Context, page int) (*Page[Invoice], error) {
		params := InvoiceListParams{}
		params.Page = page
		return c.Invoices.List(ctx, params)
	})
	invoices, err := CollectAll(context.Background(), it)
	if err != nil {
		t.Fatalf("CollectAll() error = %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("len(invoices) = %d, want 2", len(invoices))
	}
	if invoices[1].Number != "INV-2026-0002" {
		t.Errorf("second invoice = %q, want INV-2026-0002", invoices[1].Number)
	}
}
