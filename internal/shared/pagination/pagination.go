// Package pagination normalizes limit/offset query parameters.
package pagination

import "strconv"

// MaxLimit caps every page size.
const MaxLimit = 500

// Page is a normalized limit/offset pair.
type Page struct {
	Limit  int
	Offset int
}

// New clamps limit and offset. A non-positive limit falls back to
// defaultLimit, limits above MaxLimit are capped and negative offsets become 0.
func New(limit, offset, defaultLimit int) Page {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

// Parse reads raw query values. Unparseable values are treated as absent.
func Parse(limit, offset string, defaultLimit int) Page {
	l, err := strconv.Atoi(limit)
	if err != nil {
		l = 0
	}
	o, err := strconv.Atoi(offset)
	if err != nil {
		o = 0
	}
	return New(l, o, defaultLimit)
}
