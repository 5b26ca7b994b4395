package consumption

import "github.com/ja7ad/synthusage/pkg/system/util"

// Config holds power model coefficients.
// Units:
//   - PIdle/PMax: Watts per instance
//   - Gamma: dimensionless (CPU nonlinearity)
//   - Alpha: fraction of idle to charge to process share [0..1]
type Config struct {
	PIdle float64
	PMax  float64
	Gamma float64
	Alpha float64
}

// _defaultConfig returns a Config pre-filled with reasonable default coefficients.
func _defaultConfig() *Config {
	return &Config{
		PIdle: 5.0,  // W at idle
		PMax:  20.0, // W at full utilization
		Gamma: 1.3,  // CPU curve exponent
		Alpha: 0.0,  // fraction of idle to distribute
	}
}

// Sample is one simulated process run: its CPU time spread over Cores
// during TimeSec seconds of wall time.
type Sample struct {
	TimeSec float64
	CPUSec  float64
	Cores   int
}

// Util is CPU time over wall capacity, clamped to [0,1].
func (s Sample) Util() float64 {
	if s.Cores <= 0 || s.TimeSec <= 0 {
		return 0
	}
	return util.Clamp01(util.SafeDiv(s.CPUSec, s.TimeSec*float64(s.Cores)))
}

// Result is the power estimate for one sample.
type Result struct {
	PCPU    float64 // W
	PIdle   float64 // W, idle share charged to the process
	PTotal  float64 // W
	EnergyJ float64 // J over the sample's wall time
}
