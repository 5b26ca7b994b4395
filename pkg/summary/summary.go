// Package summary folds generated usage records into per-process,
// per-instance and dataset-wide totals.
package summary

import (
	"slices"

	"github.com/ja7ad/synthusage/pkg/system/util"
	"github.com/ja7ad/synthusage/pkg/types"
	"github.com/ja7ad/synthusage/pkg/usage"
)

// Result is the aggregate of one instance, or of the whole dataset when
// InstanceID is 0.
type Result struct {
	InstanceID int
	Processes  int
	Cores      int
	CPUTime    types.Millis // sum of per-core CPU time
	WallTime   types.Millis // sum of per-process wall time
	// CoreTime[i] is the CPU time attributed to core i.
	CoreTime []types.Millis
}

// Share is CPUTime over the capacity of WallTime on Cores cores, in [0,1].
func (r Result) Share() float64 {
	return util.Clamp01(util.SafeDiv(float64(r.CPUTime), float64(r.WallTime)*float64(r.Cores)))
}

// CoreShare is core i's fraction of CPUTime.
func (r Result) CoreShare(i int) float64 {
	if i < 0 || i >= len(r.CoreTime) {
		return 0
	}
	return util.SafeDiv(float64(r.CoreTime[i]), float64(r.CPUTime))
}

// ProcessResult is the aggregate of one process within one instance.
type ProcessResult struct {
	InstanceID  int
	ProcessName string
	CPUTime     types.Millis // sum of per-core CPU time
	WallTime    types.Millis
	// CoreTime[i] is the CPU time this process spent on core i.
	CoreTime []types.Millis
	// InstanceShare is CPUTime over the CPU time of the whole instance.
	InstanceShare float64
}

// CoreShare is core i's fraction of the process's CPU time.
func (p ProcessResult) CoreShare(i int) float64 {
	if i < 0 || i >= len(p.CoreTime) {
		return 0
	}
	return util.SafeDiv(float64(p.CoreTime[i]), float64(p.CPUTime))
}

type groupKey struct {
	instance int
	process  string
}

// Accumulator keeps running totals over applied records.
type Accumulator struct {
	groups    map[groupKey]*ProcessResult
	order     []groupKey
	names     []string
	instances map[int]*Result
	total     Result
}

// New creates an empty accumulator.
func New() *Accumulator {
	return &Accumulator{
		groups:    make(map[groupKey]*ProcessResult),
		instances: make(map[int]*Result),
	}
}

// Apply folds one record into the totals. Process-level fields (wall time,
// process count) are counted once per (instance, process) group.
func (a *Accumulator) Apply(r usage.Record) {
	inst, ok := a.instances[r.InstanceID]
	if !ok {
		inst = &Result{InstanceID: r.InstanceID}
		a.instances[r.InstanceID] = inst
	}

	k := groupKey{r.InstanceID, r.ProcessName}
	g, ok := a.groups[k]
	if !ok {
		g = &ProcessResult{
			InstanceID:  r.InstanceID,
			ProcessName: r.ProcessName,
			WallTime:    types.Millis(r.TotalTimeMs),
		}
		a.groups[k] = g
		a.order = append(a.order, k)
		if !slices.Contains(a.names, r.ProcessName) {
			a.names = append(a.names, r.ProcessName)
		}
		inst.Processes++
		inst.WallTime += g.WallTime
		a.total.Processes++
		a.total.WallTime += g.WallTime
	}

	share := types.Millis(r.CPUTimeMsPerCore)
	g.CPUTime += share
	inst.CPUTime += share
	a.total.CPUTime += share
	if r.CPUCore >= 0 {
		g.CoreTime = addCore(g.CoreTime, r.CPUCore, share)
		inst.CoreTime = addCore(inst.CoreTime, r.CPUCore, share)
		inst.Cores = len(inst.CoreTime)
		a.total.CoreTime = addCore(a.total.CoreTime, r.CPUCore, share)
		a.total.Cores = len(a.total.CoreTime)
	}
}

// ApplyAll folds every record in order.
func (a *Accumulator) ApplyAll(records []usage.Record) {
	for _, r := range records {
		a.Apply(r)
	}
}

func addCore(cores []types.Millis, core int, v types.Millis) []types.Millis {
	for len(cores) <= core {
		cores = append(cores, 0)
	}
	cores[core] += v
	return cores
}

// Instances returns per-instance results ordered by instance id.
func (a *Accumulator) Instances() []Result {
	out := make([]Result, 0, len(a.instances))
	for _, r := range a.instances {
		c := *r
		c.CoreTime = slices.Clone(r.CoreTime)
		out = append(out, c)
	}
	slices.SortFunc(out, func(x, y Result) int { return x.InstanceID - y.InstanceID })
	return out
}

// Processes returns per-(instance, process) results ordered by instance id,
// then by the order processes were first seen.
func (a *Accumulator) Processes() []ProcessResult {
	out := make([]ProcessResult, 0, len(a.order))
	for _, k := range a.order {
		p := *a.groups[k]
		p.CoreTime = slices.Clone(p.CoreTime)
		p.InstanceShare = util.SafeDiv(float64(p.CPUTime), float64(a.instances[k.instance].CPUTime))
		out = append(out, p)
	}
	slices.SortStableFunc(out, func(x, y ProcessResult) int { return x.InstanceID - y.InstanceID })
	return out
}

// ProcessNames returns every process name in first-seen order.
func (a *Accumulator) ProcessNames() []string { return slices.Clone(a.names) }

// Totals returns the dataset-wide result.
func (a *Accumulator) Totals() Result {
	t := a.total
	t.CoreTime = slices.Clone(a.total.CoreTime)
	return t
}

// Averages returns the mean CPU and wall time per process over all applied
// groups. Both are zero before any record is applied.
func (a *Accumulator) Averages() (cpu, wall float64) {
	if a.total.Processes == 0 {
		return 0, 0
	}
	n := float64(a.total.Processes)
	return float64(a.total.CPUTime) / n, float64(a.total.WallTime) / n
}
