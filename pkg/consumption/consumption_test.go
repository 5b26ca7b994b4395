package consumption

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/synthusage/pkg/usage"
)

func expect(cfg *Config, s Sample) (pcpu, ptotal, e float64) {
	u := s.CPUSec / (s.TimeSec * float64(s.Cores))
	if u > 1 {
		u = 1
	}
	pcpu = (cfg.PMax - cfg.PIdle) * math.Pow(u, cfg.Gamma)
	ptotal = pcpu + cfg.Alpha*cfg.PIdle*u
	e = ptotal * s.TimeSec
	return
}

func TestConsumption_Sequence(t *testing.T) {
	cfg := &Config{PIdle: 5, PMax: 20, Gamma: 1.3, Alpha: 0.1}
	acc := New(cfg)

	samples := []Sample{
		{TimeSec: 1.0, CPUSec: 0.4, Cores: 8},
		{TimeSec: 2.0, CPUSec: 4.0, Cores: 8},
		{TimeSec: 0.5, CPUSec: 1.0, Cores: 4},
		{TimeSec: 1.5, CPUSec: 6.0, Cores: 8},
	}

	var sumPCPU, sumPT, sumE float64
	for i, s := range samples {
		res := acc.Apply(s)
		expPCPU, expPT, expE := expect(cfg, s)
		require.InDelta(t, expPCPU, res.PCPU, 1e-9, "pcpu mismatch at %d", i)
		require.InDelta(t, expPT, res.PTotal, 1e-9, "ptotal mismatch at %d", i)
		require.InDelta(t, expE, res.EnergyJ, 1e-9, "energy mismatch at %d", i)
		sumPCPU += res.PCPU
		sumPT += res.PTotal
		sumE += res.EnergyJ
		t.Logf("%d: U=%.3f P_cpu=%.4fW P_total=%.4fW E=%.4fJ", i, s.Util(), res.PCPU, res.PTotal, res.EnergyJ)
	}

	assert.InDelta(t, sumE, acc.EnergyCumJ(), 1e-9)
	avg := acc.Averages()
	n := float64(len(samples))
	assert.InDelta(t, sumPCPU/n, avg.PCPU, 1e-12)
	assert.InDelta(t, sumPT/n, avg.PTotal, 1e-12)
}

func TestConsumption_ZeroAndClampPaths(t *testing.T) {
	acc := New(&Config{PIdle: 5, PMax: 20, Gamma: 1.3, Alpha: 0.2})

	res := acc.Apply(Sample{TimeSec: 1, CPUSec: 0, Cores: 4})
	assert.Zero(t, res.PTotal)

	res = acc.Apply(Sample{TimeSec: 0, CPUSec: 1, Cores: 4})
	assert.Zero(t, res.EnergyJ)

	// CPU time over capacity clamps to full utilization
	res = acc.Apply(Sample{TimeSec: 1, CPUSec: 100, Cores: 2})
	assert.InDelta(t, 15.0+0.2*5, res.PTotal, 1e-9)
}

func TestNew_Defaults(t *testing.T) {
	t.Run("nil_config", func(t *testing.T) {
		acc := New(nil)
		assert.Equal(t, _defaultConfig(), acc.cfg)
	})
	t.Run("non_positive_fields_fall_back", func(t *testing.T) {
		acc := New(&Config{PIdle: -1, PMax: 0, Gamma: 0, Alpha: 2})
		assert.Equal(t, _defaultConfig(), acc.cfg)
	})
	t.Run("pmax_below_pidle_clamped", func(t *testing.T) {
		acc := New(&Config{PIdle: 30, PMax: 10})
		assert.Equal(t, 30.0, acc.cfg.PMax)
	})
}

func TestSample_Util(t *testing.T) {
	assert.InDelta(t, 0.25, Sample{TimeSec: 2, CPUSec: 2, Cores: 4}.Util(), 1e-12)
	assert.Zero(t, Sample{TimeSec: 2, CPUSec: 2}.Util())
	assert.Zero(t, Sample{CPUSec: 2, Cores: 2}.Util())
	assert.Equal(t, 1.0, Sample{TimeSec: 1, CPUSec: 9, Cores: 2}.Util())
	assert.Zero(t, Sample{TimeSec: 1, CPUSec: -1, Cores: 2}.Util())
}

func TestApplyRecords(t *testing.T) {
	records := []usage.Record{
		{InstanceID: 1, ProcessName: "Process_A", TotalCPUTimeMs: 1000, CPUCore: 0, CPUTimeMsPerCore: 400, TotalTimeMs: 2000},
		{InstanceID: 1, ProcessName: "Process_A", TotalCPUTimeMs: 1000, CPUCore: 1, CPUTimeMsPerCore: 600, TotalTimeMs: 2000},
		{InstanceID: 2, ProcessName: "Process_A", TotalCPUTimeMs: 500, CPUCore: 0, CPUTimeMsPerCore: 250, TotalTimeMs: 1000},
		{InstanceID: 2, ProcessName: "Process_A", TotalCPUTimeMs: 500, CPUCore: 1, CPUTimeMsPerCore: 250, TotalTimeMs: 1000},
	}
	cfg := &Config{PIdle: 5, PMax: 20, Gamma: 1}
	acc := New(cfg)
	acc.ApplyRecords(records)

	// U = 1s / (2s * 2 cores) = 0.25 -> 15W * 0.25 * 2s
	assert.InDelta(t, 7.5, acc.InstanceEnergyJ(1), 1e-9)
	// U = 0.5s / (1s * 2 cores) = 0.25 -> 15W * 0.25 * 1s
	assert.InDelta(t, 3.75, acc.InstanceEnergyJ(2), 1e-9)
	assert.InDelta(t, 11.25, acc.EnergyCumJ(), 1e-9)
	assert.Zero(t, acc.InstanceEnergyJ(3))
}

func TestApplyRecords_GeneratedDataset(t *testing.T) {
	records, err := usage.Generate(usage.DefaultConfig(), usage.NewSource(4))
	require.NoError(t, err)

	acc := New(nil)
	acc.ApplyRecords(records)

	var perInstance float64
	for id := 1; id <= 6; id++ {
		e := acc.InstanceEnergyJ(id)
		assert.Positive(t, e, "instance %d", id)
		perInstance += e
	}
	assert.InDelta(t, acc.EnergyCumJ(), perInstance, 1e-6)
	assert.Equal(t, 6*15, acc.count)
}

func ExampleAccumulator_Apply() {
	acc := New(&Config{PIdle: 5, PMax: 20, Gamma: 1})
	r := acc.Apply(Sample{TimeSec: 2, CPUSec: 4, Cores: 4})
	fmt.Printf("P(cpu)=%.3fW E=%.3fJ\n", r.PCPU, acc.EnergyCumJ())
	// Output: P(cpu)=7.500W E=15.000J
}
