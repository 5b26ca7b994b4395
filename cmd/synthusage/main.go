package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ja7ad/synthusage/pkg/consumption"
	"github.com/ja7ad/synthusage/pkg/metrics"
	"github.com/ja7ad/synthusage/pkg/summary"
	"github.com/ja7ad/synthusage/pkg/system/util"
	"github.com/ja7ad/synthusage/pkg/table"
	"github.com/ja7ad/synthusage/pkg/usage"
)

type opts struct {
	// dataset shape
	instances int
	processes int
	cores     int
	cpuMin    int
	cpuMax    int
	timeMin   int
	timeMax   int

	seed    uint64
	seedSet bool

	// outputs
	csvPath     string
	jsonPath    string
	htmlPath    string
	metricsPath string
	summary     bool
	verbose     bool

	// power model
	pIdle float64
	pMax  float64
	gamma float64
	alpha float64
}

func (o opts) config() usage.Config {
	return usage.Config{
		Instances: o.instances,
		Processes: o.processes,
		Cores:     o.cores,
		CPUTime:   usage.Range{Min: o.cpuMin, Max: o.cpuMax},
		TotalTime: usage.Range{Min: o.timeMin, Max: o.timeMax},
	}
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var o opts
	def := usage.DefaultConfig()

	root := &cobra.Command{
		Use:   "synthusage",
		Short: "Synthetic per-core CPU usage dataset generator",
		Long: `synthusage writes a CSV table of simulated CPU time usage: every instance
runs the same set of processes, and every process reports its total CPU time
split across a number of cores, together with a simulated wall time.

Columns:
  instance_id, process_name, total_cpu_time_ms, cpu_core, cpu_time_ms_per_core, total_time_ms

Examples:
  synthusage
  synthusage --seed 42 --instances 3 --cores 4 -o out/data.csv --summary
  synthusage --json data.json --html report.html --metrics synthusage.prom`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o.seedSet = cmd.Flags().Changed("seed")
			return run(cmd.Context(), o, stdout)
		},
	}

	root.Flags().StringVarP(&o.csvPath, "output", "o", "instance_data.csv", "CSV file to write")
	root.Flags().IntVar(&o.instances, "instances", def.Instances, "number of instances")
	root.Flags().IntVar(&o.processes, "processes", def.Processes, "number of processes per instance")
	root.Flags().IntVar(&o.cores, "cores", def.Cores, "number of CPU cores per process (>= 2)")
	root.Flags().IntVar(&o.cpuMin, "cpu-min", def.CPUTime.Min, "minimum total CPU time per process (ms)")
	root.Flags().IntVar(&o.cpuMax, "cpu-max", def.CPUTime.Max, "maximum total CPU time per process (ms)")
	root.Flags().IntVar(&o.timeMin, "time-min", def.TotalTime.Min, "minimum total wall time per process (ms)")
	root.Flags().IntVar(&o.timeMax, "time-max", def.TotalTime.Max, "maximum total wall time per process (ms)")
	root.Flags().Uint64Var(&o.seed, "seed", 0, "random seed (default: random, logged for reuse)")

	root.Flags().StringVar(&o.jsonPath, "json", "", "also write records and run metadata to a JSON file")
	root.Flags().StringVar(&o.htmlPath, "html", "", "also write an HTML summary report")
	root.Flags().StringVar(&o.metricsPath, "metrics", "", "write run metrics in Prometheus textfile format")
	root.Flags().Float64Var(&o.pIdle, "p-idle", 5.0, "idle power in Watts, for the energy estimate")
	root.Flags().Float64Var(&o.pMax, "p-max", 20.0, "max power in Watts at 100% utilization")
	root.Flags().Float64Var(&o.gamma, "gamma", 1.3, "CPU nonlinearity exponent")
	root.Flags().Float64Var(&o.alpha, "alpha", 0.0, "fraction of idle to charge proportionally [0..1]")
	root.Flags().BoolVar(&o.summary, "summary", false, "print a per-instance summary table")
	root.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")

	return root
}

func run(ctx context.Context, o opts, stdout io.Writer) error {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	runID := uuid.New()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With("run_id", runID.String())

	cfg := o.config()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if o.alpha < 0 || o.alpha > 1 {
		return fmt.Errorf("alpha must be in [0,1]")
	}

	seed := o.seed
	if !o.seedSet {
		seed = usage.RandomSeed()
	}
	log.Debug("generating", "instances", cfg.Instances, "processes", cfg.Processes,
		"cores", cfg.Cores, "rows", cfg.Rows(), "seed", seed)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	records, err := usage.Generate(cfg, usage.NewSource(seed))
	if err != nil {
		return err
	}
	took := time.Since(start)

	acc := summary.New()
	acc.ApplyAll(records)

	power := consumption.New(&consumption.Config{PIdle: o.pIdle, PMax: o.pMax, Gamma: o.gamma, Alpha: o.alpha})
	power.ApplyRecords(records)

	if err := ctx.Err(); err != nil {
		log.Info("interrupted")
		return err
	}

	size, err := table.WriteCSV(o.csvPath, records)
	if err != nil {
		return fmt.Errorf("csv: %w", err)
	}
	log.Info("dataset written", "path", o.csvPath, "rows", len(records), "size", size, "seed", seed)

	meta := table.Meta{RunID: runID, Seed: seed, GeneratedAt: start}

	if o.jsonPath != "" {
		if _, err := table.WriteJSON(o.jsonPath, table.NewDocument(meta, cfg, records)); err != nil {
			return fmt.Errorf("json: %w", err)
		}
		log.Info("json written", "path", o.jsonPath)
	}

	if o.htmlPath != "" {
		rep := table.Report{
			Meta:         meta,
			Config:       cfg,
			Instances:    acc.Instances(),
			Totals:       acc.Totals(),
			Processes:    acc.Processes(),
			ProcessNames: acc.ProcessNames(),
			Records:      records,
		}
		if _, err := table.WriteHTML(o.htmlPath, rep); err != nil {
			return fmt.Errorf("html: %w", err)
		}
		log.Info("html written", "path", o.htmlPath)
	}

	if o.metricsPath != "" {
		m := metrics.New(map[string]string{"run_id": runID.String()})
		m.ObserveGeneration(len(records), acc.Instances(), took)
		m.ObserveOutput(size)
		for _, r := range acc.Instances() {
			m.ObserveEnergy(r.InstanceID, power.InstanceEnergyJ(r.InstanceID))
		}
		if err := m.WriteTextfile(o.metricsPath); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		log.Info("metrics written", "path", o.metricsPath)
	}

	if o.summary {
		printSummary(stdout, acc, power)
	}

	fmt.Fprintf(stdout, "CSV file '%s' has been generated.\n", o.csvPath)
	return nil
}

func printSummary(w io.Writer, acc *summary.Accumulator, power *consumption.Accumulator) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INSTANCE\tPROCESSES\tCPU TIME\tWALL TIME\tCPU SHARE\tENERGY (J)")
	fmt.Fprintln(tw, "--------\t---------\t--------\t---------\t---------\t----------")
	for _, r := range acc.Instances() {
		printSummaryRow(tw, strconv.Itoa(r.InstanceID), r, power.InstanceEnergyJ(r.InstanceID))
	}
	printSummaryRow(tw, "total", acc.Totals(), power.EnergyCumJ())

	cpu, wall := acc.Averages()
	fmt.Fprintf(tw, "avg/process\t\t%s ms\t%s ms\t\t%.3f\n",
		util.FmtFloat(round2(cpu)), util.FmtFloat(round2(wall)), power.Averages().EnergyJ)
	tw.Flush()
	fmt.Fprintln(w)
}

func printSummaryRow(tw *tabwriter.Writer, label string, r summary.Result, energyJ float64) {
	fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%.3f\n",
		label, r.Processes, r.CPUTime.Humanized(), r.WallTime.Humanized(), util.Percent(r.Share()), energyJ)
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
