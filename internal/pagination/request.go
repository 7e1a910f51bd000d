package pagination

import "math"

// Query is what a paginated request hands to the persistence layer.
type Query struct {
	Offset    int
	Limit     int
	Column    string
	Direction Direction
	Search    string
}

// HasSearch reports whether the query carries a non-empty search term.
func (q Query) HasSearch() bool {
	return q.Search != ""
}

// PageOf returns the requested page, or the default page when it is unset or
// below 1. Pages are 1-based.
func PageOf(page *int) int {
	if page != nil && *page >= 1 {
		return *page
	}
	return Current().DefaultPage
}

// LimitOf returns the requested page size, or the default when it is unset or
// below 1, clamped to the configured ceiling.
func LimitOf(limit *int) int {
	cfg := Current()
	n := cfg.DefaultLimit
	if limit != nil && *limit >= 1 {
		n = *limit
	}
	if cfg.MaxLimit > 0 && n > cfg.MaxLimit {
		n = cfg.MaxLimit
	}
	return n
}

// OffsetOf returns the number of rows preceding page. Offsets that do not fit
// in an int saturate at math.MaxInt, which selects an empty window.
func OffsetOf(page, limit int) int {
	if page <= 1 || limit < 1 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// SearchOf returns the stored search term unchanged.
func SearchOf(search *string) (string, bool) {
	if search == nil {
		return "", false
	}
	return *search, true
}
