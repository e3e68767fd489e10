package pagination

import "strconv"

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Page is a normalized limit/offset pair.
type Page struct {
	Limit  int
	Offset int
}

// NormalizeLimit ensures limit is within bounds
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizeOffset clamps negative offsets to zero.
func NormalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// Parse reads limit and offset query values. Empty values fall back to the
// defaults; malformed ones are reported so handlers can reject them.
func Parse(limit, offset string) (Page, error) {
	p := Page{Limit: DefaultLimit}
	if limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil {
			return Page{}, err
		}
		p.Limit = NormalizeLimit(v)
	}
	if offset != "" {
		v, err := strconv.Atoi(offset)
		if err != nil {
			return Page{}, err
		}
		p.Offset = NormalizeOffset(v)
	}
	return p, nil
}
