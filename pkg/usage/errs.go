package usage

import "errors"

var (
	// ErrInvalidConfig wraps every configuration problem reported by Validate.
	ErrInvalidConfig = errors.New("usage: invalid config")

	// ErrTooFewCores indicates Cores < 2; the per-core split needs at least
	// one drawn core plus the remainder core.
	ErrTooFewCores = errors.New("usage: at least 2 cores required")

	// ErrBadRange indicates a range with a negative bound or Min > Max.
	ErrBadRange = errors.New("usage: bad range")

	// ErrTooManyRows indicates Instances*Processes*Cores overflows or exceeds
	// MaxRows.
	ErrTooManyRows = errors.New("usage: too many rows")

	// ErrCPUTimeTooSmall indicates CPUTime.Min cannot fund one millisecond
	// per drawn core.
	ErrCPUTimeTooSmall = errors.New("usage: cpu time too small for core count")
)
