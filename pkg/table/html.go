package table

import (
	"html/template"
	"io"
	"strconv"

	"github.com/ja7ad/synthusage/pkg/summary"
	"github.com/ja7ad/synthusage/pkg/system/util"
	"github.com/ja7ad/synthusage/pkg/types"
	"github.com/ja7ad/synthusage/pkg/usage"
)

// Report is what WriteHTML renders.
type Report struct {
	Meta      Meta
	Config    usage.Config
	Instances []summary.Result
	Totals    summary.Result
	// Processes are per-(instance, process) results as returned by
	// summary.Accumulator.Processes; ProcessNames fixes the column order.
	Processes    []summary.ProcessResult
	ProcessNames []string
	Records      []usage.Record
}

// matrixRow is one instance's CPU time per process, aligned with
// Report.ProcessNames.
type matrixRow struct {
	InstanceID int
	Cells      []types.Millis
}

type processView struct {
	Name string
	Rows []summary.ProcessResult // one per instance
}

type instanceView struct {
	InstanceID int
	Rows       []summary.ProcessResult
}

type reportView struct {
	Report
	Cores      []int
	Matrix     []matrixRow
	ByProcess  []processView
	ByInstance []instanceView
}

func newReportView(rep Report) reportView {
	v := reportView{Report: rep}

	cores := rep.Totals.Cores
	for _, r := range rep.Instances {
		cores = max(cores, r.Cores)
	}
	for i := 0; i < cores; i++ {
		v.Cores = append(v.Cores, i)
	}

	col := make(map[string]int, len(rep.ProcessNames))
	for i, name := range rep.ProcessNames {
		col[name] = i
		v.ByProcess = append(v.ByProcess, processView{Name: name})
	}

	rowOf := make(map[int]int)
	for _, p := range rep.Processes {
		ri, ok := rowOf[p.InstanceID]
		if !ok {
			ri = len(v.Matrix)
			rowOf[p.InstanceID] = ri
			v.Matrix = append(v.Matrix, matrixRow{
				InstanceID: p.InstanceID,
				Cells:      make([]types.Millis, len(rep.ProcessNames)),
			})
			v.ByInstance = append(v.ByInstance, instanceView{InstanceID: p.InstanceID})
		}
		v.ByInstance[ri].Rows = append(v.ByInstance[ri].Rows, p)

		if ci, ok := col[p.ProcessName]; ok {
			v.Matrix[ri].Cells[ci] = p.CPUTime
			v.ByProcess[ci].Rows = append(v.ByProcess[ci].Rows, p)
		}
	}
	return v
}

// WriteHTML renders an HTML summary of the run to path.
func WriteHTML(path string, rep Report) (types.Bytes, error) {
	return writeAtomic(path, func(w io.Writer) error {
		return tpl.Execute(w, newReportView(rep))
	})
}

// bar sizes an inline bar to a [0,1] share.
func bar(share float64) template.CSS {
	return template.CSS("width:" + strconv.FormatFloat(util.Clamp01(share)*100, 'f', 2, 64) + "%")
}

var tpl = template.Must(template.New("rep").Funcs(template.FuncMap{
	"pct": util.Percent,
	"bar": bar,
}).Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>Synthetic CPU Usage Report</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2,h3{margin:0 0 8px}
table{border-collapse:collapse;width:100%;font-size:14px;margin-bottom:14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right}
th:first-child,td:first-child{text-align:left}
.small{color:#555}
.badge{display:inline-block;background:#eef;border:1px solid #ccd;padding:2px 6px;border-radius:6px;margin-right:6px;}
.track{background:#f2f2f2;width:200px;height:10px}
.bar{background:#5470c6;height:10px}
</style>

<h1>Synthetic CPU Usage Report</h1>

<p class="small">
<span class="badge">run {{.Meta.RunID}}</span>
<span class="badge">seed {{.Meta.Seed}}</span>
Generated: {{.Meta.GeneratedAt.Format "2006-01-02 15:04:05"}} &nbsp;|&nbsp;
Rows: {{len .Records}}
</p>

<h2>Configuration</h2>
<ul>
<li>Instances: {{.Config.Instances}}</li>
<li>Processes: {{.Config.Processes}}</li>
<li>Cores: {{.Config.Cores}}</li>
<li>CPU time: {{.Config.CPUTime.Min}}..{{.Config.CPUTime.Max}} ms</li>
<li>Total time: {{.Config.TotalTime.Min}}..{{.Config.TotalTime.Max}} ms</li>
</ul>

<h2>Per instance</h2>
<table id="instances">
<thead>
<tr><th>instance</th><th>processes</th><th>CPU time</th><th>wall time</th><th>CPU share</th>
{{range .Cores}}<th>core {{.}} (ms)</th>{{end}}</tr>
</thead>
<tbody>
{{range .Instances}}
<tr>
<td>{{.InstanceID}}</td>
<td>{{.Processes}}</td>
<td>{{.CPUTime.Humanized}}</td>
<td>{{.WallTime.Humanized}}</td>
<td>{{pct .Share}}</td>
{{range .CoreTime}}<td>{{.}}</td>{{end}}
</tr>
{{end}}
<tr>
<td><b>total</b></td>
<td>{{.Totals.Processes}}</td>
<td>{{.Totals.CPUTime.Humanized}}</td>
<td>{{.Totals.WallTime.Humanized}}</td>
<td>{{pct .Totals.Share}}</td>
{{range .Totals.CoreTime}}<td>{{.}}</td>{{end}}
</tr>
</tbody>
</table>

<h2>CPU time per process (ms)</h2>
<table id="process-matrix">
<thead>
<tr><th>instance</th>{{range .ProcessNames}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{range .Matrix}}
<tr><td>{{.InstanceID}}</td>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{end}}
</tbody>
</table>

<h2>Per-core split by process</h2>
{{$cores := .Cores}}
{{range .ByProcess}}
<h3>{{.Name}}</h3>
<table class="core-split">
<thead>
<tr><th>instance</th>{{range $cores}}<th>core {{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{range $p := .Rows}}
<tr><td>{{$p.InstanceID}}</td>{{range $i, $ms := $p.CoreTime}}<td>{{$ms}} ms ({{pct ($p.CoreShare $i)}})</td>{{end}}</tr>
{{end}}
</tbody>
</table>
{{end}}

<h2>Process share per instance</h2>
{{range .ByInstance}}
<h3>Instance {{.InstanceID}}</h3>
<table class="process-share">
<thead>
<tr><th>process</th><th>CPU time (ms)</th><th>share</th><th></th></tr>
</thead>
<tbody>
{{range .Rows}}
<tr>
<td>{{.ProcessName}}</td>
<td>{{.CPUTime}}</td>
<td>{{pct .InstanceShare}}</td>
<td><div class="track"><div class="bar" style="{{bar .InstanceShare}}"></div></div></td>
</tr>
{{end}}
</tbody>
</table>
{{end}}

<h2>Records</h2>
<table id="records">
<thead>
<tr>
<th>instance_id</th><th>process_name</th><th>total_cpu_time_ms</th>
<th>cpu_core</th><th>cpu_time_ms_per_core</th><th>total_time_ms</th>
</tr>
</thead>
<tbody>
{{range .Records}}
<tr>
<td>{{.InstanceID}}</td>
<td>{{.ProcessName}}</td>
<td>{{.TotalCPUTimeMs}}</td>
<td>{{.CPUCore}}</td>
<td>{{.CPUTimeMsPerCore}}</td>
<td>{{.TotalTimeMs}}</td>
</tr>
{{end}}
</tbody>
</table>
</html>
`))
