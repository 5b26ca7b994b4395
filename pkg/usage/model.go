package usage

import "math"

// Range is an inclusive [Min, Max] interval in milliseconds.
type Range struct {
	Min int
	Max int
}

// Config holds the shape of a generated dataset.
//   - Instances: number of simulated instances (ids 1..Instances)
//   - Processes: size of the process-name set reused by every instance
//   - Cores: simulated cores per process (indices 0..Cores-1)
//   - CPUTime: range for a process's total CPU time
//   - TotalTime: range for a process's wall-clock time
type Config struct {
	Instances int
	Processes int
	Cores     int
	CPUTime   Range
	TotalTime Range
}

// DefaultConfig returns a Config pre-filled with the stock dataset shape.
func DefaultConfig() Config {
	return Config{
		Instances: 6,
		Processes: 15,
		Cores:     8,
		CPUTime:   Range{Min: 100, Max: 1000},
		TotalTime: Range{Min: 500, Max: 2000},
	}
}

// Rows returns how many records a dataset of this shape holds. It is only
// meaningful for a Config that passed Validate.
func (c Config) Rows() int {
	n, _ := c.rows()
	return n
}

// rows multiplies the counts, reporting false on overflow.
func (c Config) rows() (int, bool) {
	n := 1
	for _, f := range []int{c.Instances, c.Processes, c.Cores} {
		if f <= 0 {
			return 0, true
		}
		if n > math.MaxInt/f {
			return 0, false
		}
		n *= f
	}
	return n, true
}

// Record is one row of the dataset: a single core's share of a process's
// CPU time within an instance.
type Record struct {
	InstanceID       int    `json:"instance_id"`
	ProcessName      string `json:"process_name"`
	TotalCPUTimeMs   int    `json:"total_cpu_time_ms"`
	CPUCore          int    `json:"cpu_core"`
	CPUTimeMsPerCore int    `json:"cpu_time_ms_per_core"`
	TotalTimeMs      int    `json:"total_time_ms"`
}
