package pagination

const (
	// DefaultLimit is the page size used when a caller sends none.
	DefaultLimit = 25
	// MaxLimit caps how many rows a single listing can request.
	MaxLimit = 100
)

// NormalizeLimit clamps a requested page size into the allowed range.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
