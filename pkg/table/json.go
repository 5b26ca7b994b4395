package table

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/ja7ad/synthusage/pkg/types"
	"github.com/ja7ad/synthusage/pkg/usage"
)

// Meta identifies one generation run.
type Meta struct {
	RunID       uuid.UUID `json:"run_id"`
	Seed        uint64    `json:"seed"`
	GeneratedAt time.Time `json:"generated_at"`
}

// RangeDoc is the JSON form of usage.Range.
type RangeDoc struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ConfigDoc is the JSON form of usage.Config.
type ConfigDoc struct {
	Instances int      `json:"instances"`
	Processes int      `json:"processes"`
	Cores     int      `json:"cores"`
	CPUTime   RangeDoc `json:"cpu_time_ms"`
	TotalTime RangeDoc `json:"total_time_ms"`
}

// Document is what WriteJSON emits.
type Document struct {
	Meta
	Config  ConfigDoc      `json:"config"`
	Records []usage.Record `json:"records"`
}

// NewDocument bundles a run's metadata, configuration and records.
func NewDocument(meta Meta, cfg usage.Config, records []usage.Record) Document {
	return Document{
		Meta: meta,
		Config: ConfigDoc{
			Instances: cfg.Instances,
			Processes: cfg.Processes,
			Cores:     cfg.Cores,
			CPUTime:   RangeDoc(cfg.CPUTime),
			TotalTime: RangeDoc(cfg.TotalTime),
		},
		Records: records,
	}
}

// WriteJSON writes doc as indented JSON to path.
func WriteJSON(path string, doc Document) (types.Bytes, error) {
	return writeAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	})
}
