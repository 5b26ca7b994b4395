package usage

import (
	"errors"
	"fmt"
	"math"
)

// MaxRows bounds the dataset size so the record slice fits in memory.
const MaxRows = 1 << 26

// Validate reports every problem with c at once. The returned error wraps
// ErrInvalidConfig plus the specific sentinel of each problem.
func (c Config) Validate() error {
	var errs []error

	if c.Instances < 1 {
		errs = append(errs, fmt.Errorf("instances must be >= 1, got %d", c.Instances))
	}
	if c.Processes < 1 {
		errs = append(errs, fmt.Errorf("processes must be >= 1, got %d", c.Processes))
	}
	if c.Cores < 2 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrTooFewCores, c.Cores))
	}
	if c.Instances >= 1 && c.Processes >= 1 && c.Cores >= 1 {
		if rows, ok := c.rows(); !ok || rows > MaxRows {
			errs = append(errs, fmt.Errorf("%w: %d instances x %d processes x %d cores exceeds %d rows",
				ErrTooManyRows, c.Instances, c.Processes, c.Cores, MaxRows))
		}
	}
	if err := c.CPUTime.validate("cpu time"); err != nil {
		errs = append(errs, err)
	}
	if err := c.TotalTime.validate("total time"); err != nil {
		errs = append(errs, err)
	}

	// Each drawn core takes at least 1ms out of total/2, so the smallest
	// total must cover both the draw bound and one ms per drawn core.
	if c.Cores >= 2 && c.CPUTime.Min <= c.CPUTime.Max {
		if need := max(2, c.Cores-1); c.CPUTime.Min < need {
			errs = append(errs, fmt.Errorf("%w: min %dms, need >= %dms for %d cores",
				ErrCPUTimeTooSmall, c.CPUTime.Min, need, c.Cores))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func (r Range) validate(name string) error {
	if r.Min < 0 {
		return fmt.Errorf("%w: %s min %d is negative", ErrBadRange, name, r.Min)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: %s min %d > max %d", ErrBadRange, name, r.Min, r.Max)
	}
	// draw needs Max-Min+1 to fit in an int
	if r.Max-r.Min == math.MaxInt {
		return fmt.Errorf("%w: %s span %d..%d too wide", ErrBadRange, name, r.Min, r.Max)
	}
	return nil
}

// Contains reports whether v lies in the inclusive range.
func (r Range) Contains(v int) bool { return v >= r.Min && v <= r.Max }

// draw picks a value uniformly from the inclusive range.
func (r Range) draw(src Source) int {
	return r.Min + src.IntN(r.Max-r.Min+1)
}
