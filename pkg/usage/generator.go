package usage

import "fmt"

// Generate builds the full dataset for cfg using src. Records come back
// grouped by instance, then process (in ProcessNames order), then core.
// Nothing is drawn from src when cfg is invalid.
func Generate(cfg Config, src Source) ([]Record, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}

	names := ProcessNames(cfg.Processes)
	records := make([]Record, 0, cfg.Rows())

	for instanceID := 1; instanceID <= cfg.Instances; instanceID++ {
		for _, name := range names {
			totalCPU := cfg.CPUTime.draw(src)
			totalTime := cfg.TotalTime.draw(src)

			for core, share := range SplitCores(totalCPU, cfg.Cores, src) {
				records = append(records, Record{
					InstanceID:       instanceID,
					ProcessName:      name,
					TotalCPUTimeMs:   totalCPU,
					CPUCore:          core,
					CPUTimeMsPerCore: share,
					TotalTimeMs:      totalTime,
				})
			}
		}
	}
	return records, nil
}
