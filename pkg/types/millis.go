package types

import "fmt"

// Millis is a simulated duration in whole milliseconds.
type Millis int64

// Seconds returns m in seconds.
func (m Millis) Seconds() float64 { return float64(m) / 1000 }

// Humanized renders m as "850 ms", "1.50 s", "2.25 min" or "1.10 h".
func (m Millis) Humanized() string {
	v := float64(m)
	switch {
	case m >= 3_600_000:
		return fmt.Sprintf("%.2f h", v/3_600_000)
	case m >= 60_000:
		return fmt.Sprintf("%.2f min", v/60_000)
	case m >= 1000:
		return fmt.Sprintf("%.2f s", v/1000)
	default:
		return fmt.Sprintf("%d ms", m)
	}
}
