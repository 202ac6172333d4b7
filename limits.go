package rankpager

import "fmt"

// Limits bounds the page size a caller may ask for.
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits are used when nothing else is configured.
var DefaultLimits = Limits{Default: 10, Max: 100}

func (l Limits) Validate() error {
	if l.Default <= 0 || l.Max < l.Default {
		return fmt.Errorf("%w: default=%d max=%d", ErrInvalidPageSize, l.Default, l.Max)
	}

	return nil
}

// Normalize maps a requested page size into [1, Max]. Non-positive requests
// fall back to Default. The second result is false when the request had to be
// adjusted.
func (l Limits) Normalize(requested int) (int, bool) {
	switch {
	case requested <= 0:
		return min(l.Default, l.Max), false
	case requested > l.Max:
		return l.Max, false
	default:
		return requested, true
	}
}
