// Package table serializes usage records to files: the CSV dataset itself,
// plus optional JSON and HTML renderings.
//
// Every writer replaces its destination atomically. A failed write never
// leaves a partial file behind.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ja7ad/synthusage/pkg/types"
	"github.com/ja7ad/synthusage/pkg/usage"
)

// Header is the first CSV row, in column order.
var Header = []string{
	"instance_id",
	"process_name",
	"total_cpu_time_ms",
	"cpu_core",
	"cpu_time_ms_per_core",
	"total_time_ms",
}

// WriteCSV writes Header and one row per record to path, overwriting any
// existing file. It returns the size of the written file.
func WriteCSV(path string, records []usage.Record) (types.Bytes, error) {
	return writeAtomic(path, func(w io.Writer) error {
		return EncodeCSV(w, records)
	})
}

// EncodeCSV writes Header and records to w.
func EncodeCSV(w io.Writer, records []usage.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	row := make([]string, len(Header))
	for i, r := range records {
		row[0] = strconv.Itoa(r.InstanceID)
		row[1] = r.ProcessName
		row[2] = strconv.Itoa(r.TotalCPUTimeMs)
		row[3] = strconv.Itoa(r.CPUCore)
		row[4] = strconv.Itoa(r.CPUTimeMsPerCore)
		row[5] = strconv.Itoa(r.TotalTimeMs)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
