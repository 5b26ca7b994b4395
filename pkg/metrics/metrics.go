// Package metrics describes a generation run as Prometheus metrics and
// exports them in the node_exporter textfile format.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/ja7ad/synthusage/pkg/summary"
	"github.com/ja7ad/synthusage/pkg/types"
)

// Registry is a private registry that stamps Labels onto every gathered
// metric, so several runs can share one textfile directory.
type Registry struct {
	*prometheus.Registry
	Labels map[string]string
}

// Gather adds Labels to all metrics of the embedded registry.
func (r *Registry) Gather() ([]*dto.MetricFamily, error) {
	families, err := r.Registry.Gather()
	if err != nil {
		return nil, err
	}
	for name, value := range r.Labels {
		for _, family := range families {
			for _, metric := range family.Metric {
				metric.Label = append(metric.Label, &dto.LabelPair{
					Name:  &name,
					Value: &value,
				})
			}
		}
	}
	return families, nil
}

// Metrics holds the counters and gauges describing one generation run.
type Metrics struct {
	registry *Registry

	// Rows produced by the generator.
	recordsGenerated prometheus.Counter
	// Summed per-core CPU time per instance.
	instanceCPUTime *prometheus.GaugeVec
	// Summed per-process wall time per instance.
	instanceWallTime *prometheus.GaugeVec
	// Estimated energy per instance.
	instanceEnergy *prometheus.GaugeVec
	// How long generation took.
	generationDuration prometheus.Gauge
	// Size of the CSV output.
	outputBytes prometheus.Gauge
}

// New creates the run metrics on a fresh registry. labels are attached to
// every exported sample.
func New(labels map[string]string) *Metrics {
	reg := &Registry{Registry: prometheus.NewRegistry(), Labels: labels}

	m := &Metrics{
		registry: reg,
		recordsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "synthusage_records_generated_total",
			Help: "Number of usage records generated",
		}),
		instanceCPUTime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "synthusage_instance_cpu_time_ms",
			Help: "Total simulated CPU time of all processes in an instance",
		}, []string{"instance"}),
		instanceWallTime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "synthusage_instance_wall_time_ms",
			Help: "Total simulated wall time of all processes in an instance",
		}, []string{"instance"}),
		instanceEnergy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "synthusage_instance_energy_joules",
			Help: "Estimated CPU energy of all processes in an instance",
		}, []string{"instance"}),
		generationDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "synthusage_generation_duration_seconds",
			Help: "Duration of dataset generation",
		}),
		outputBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "synthusage_output_bytes",
			Help: "Size of the written CSV dataset",
		}),
	}
	reg.MustRegister(
		m.recordsGenerated,
		m.instanceCPUTime,
		m.instanceWallTime,
		m.instanceEnergy,
		m.generationDuration,
		m.outputBytes,
	)
	return m
}

// Registry returns the gatherer backing m.
func (m *Metrics) Registry() *Registry { return m.registry }

// ObserveGeneration records the size of a generated dataset and its
// per-instance totals.
func (m *Metrics) ObserveGeneration(rows int, instances []summary.Result, took time.Duration) {
	m.recordsGenerated.Add(float64(rows))
	for _, r := range instances {
		id := strconv.Itoa(r.InstanceID)
		m.instanceCPUTime.WithLabelValues(id).Set(float64(r.CPUTime))
		m.instanceWallTime.WithLabelValues(id).Set(float64(r.WallTime))
	}
	m.generationDuration.Set(took.Seconds())
}

// ObserveEnergy records the estimated energy of one instance.
func (m *Metrics) ObserveEnergy(instanceID int, joules float64) {
	m.instanceEnergy.WithLabelValues(strconv.Itoa(instanceID)).Set(joules)
}

// ObserveOutput records the size of the written CSV.
func (m *Metrics) ObserveOutput(size types.Bytes) {
	m.outputBytes.Set(float64(size))
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics textfile %s: %w", path, err)
	}
	return nil
}
