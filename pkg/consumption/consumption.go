package consumption

import (
	"math"

	"github.com/ja7ad/synthusage/pkg/system/util"
	"github.com/ja7ad/synthusage/pkg/types"
	"github.com/ja7ad/synthusage/pkg/usage"
)

// Accumulator keeps running energy and averages.
type Accumulator struct {
	cfg        *Config
	energyCumJ float64
	count      int
	sumPCPU    float64
	sumPTotal  float64
	byInstance map[int]float64
}

// New creates an accumulator with the given config.
// Fields > 0 in cfg override defaults; Alpha in [0..1] is taken verbatim.
func New(cfg *Config) *Accumulator {
	base := _defaultConfig()
	acc := &Accumulator{cfg: base, byInstance: make(map[int]float64)}

	if cfg == nil {
		return acc
	}

	merged := *base
	if cfg.PIdle > 0 {
		merged.PIdle = cfg.PIdle
	}
	if cfg.PMax > 0 {
		merged.PMax = cfg.PMax
	}
	if cfg.Gamma > 0 {
		merged.Gamma = cfg.Gamma
	}
	if cfg.Alpha >= 0 && cfg.Alpha <= 1 {
		merged.Alpha = cfg.Alpha
	}
	if merged.PMax < merged.PIdle {
		merged.PMax = merged.PIdle
	}

	acc.cfg = &merged
	return acc
}

// Apply runs the model on a single sample, returns the power split and
// updates cumulative energy/averages.
//
//	P_cpu = (PMax - PIdle) * U^Gamma
//	E     = (P_cpu + Alpha*PIdle*U) * TimeSec
func (a *Accumulator) Apply(s Sample) Result {
	u := s.Util()
	pcpu := (a.cfg.PMax - a.cfg.PIdle) * util.Pow(u, a.cfg.Gamma)

	var pidle float64
	if a.cfg.Alpha > 0 {
		pidle = a.cfg.Alpha * a.cfg.PIdle * u
	}
	ptot := pcpu + pidle
	e := ptot * math.Max(s.TimeSec, 0)

	a.energyCumJ += e
	a.count++
	a.sumPCPU += pcpu
	a.sumPTotal += ptot

	return Result{PCPU: pcpu, PIdle: pidle, PTotal: ptot, EnergyJ: e}
}

// ApplyRecords estimates every (instance, process) group in records.
// A group's core count is the number of records it has.
func (a *Accumulator) ApplyRecords(records []usage.Record) {
	type key struct {
		instance int
		process  string
	}
	var order []key
	groups := make(map[key]*Sample)
	for _, r := range records {
		k := key{r.InstanceID, r.ProcessName}
		s, ok := groups[k]
		if !ok {
			s = &Sample{
				TimeSec: types.Millis(r.TotalTimeMs).Seconds(),
				CPUSec:  types.Millis(r.TotalCPUTimeMs).Seconds(),
			}
			groups[k] = s
			order = append(order, k)
		}
		s.Cores++
	}
	for _, k := range order {
		res := a.Apply(*groups[k])
		a.byInstance[k.instance] += res.EnergyJ
	}
}

// EnergyCumJ returns cumulative energy in Joules.
func (a *Accumulator) EnergyCumJ() float64 { return a.energyCumJ }

// InstanceEnergyJ returns the energy of all groups applied via ApplyRecords
// for one instance.
func (a *Accumulator) InstanceEnergyJ(id int) float64 { return a.byInstance[id] }

// Averages returns average powers over all applied samples.
func (a *Accumulator) Averages() Result {
	if a.count == 0 {
		return Result{}
	}
	n := float64(a.count)
	return Result{
		PCPU:    a.sumPCPU / n,
		PTotal:  a.sumPTotal / n,
		EnergyJ: a.energyCumJ / n,
	}
}
