package domain

// PaginationParams carries page/limit values from the HTTP layer to the
// tabular listings view. Page is 1-indexed. Limit is capped at 100.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil pointers fall back to page=1, limit=20.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, 100)
	}
	return p
}

// Window returns the [start, end) slice bounds of the page within a
// collection of n rows. Pages past the end, however large, yield the empty
// window [n, n).
func (p PaginationParams) Window(n int) (start, end int) {
	if p.Limit < 1 || p.Page < 1 || p.Page-1 > n/p.Limit {
		return n, n
	}
	start = min((p.Page-1)*p.Limit, n)
	end = min(start+p.Limit, n)
	return start, end
}

// ListingPage is one page of the filtered tabular view.
type ListingPage struct {
	Listings []Listing
	Total    int
	Params   PaginationParams
}
