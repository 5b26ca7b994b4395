// Package usage generates synthetic per-core CPU usage datasets.
//
// A dataset covers Config.Instances instances. Every instance runs the same
// fixed set of processes (see ProcessNames), and every process reports its
// total CPU time split across Config.Cores cores:
//
//	instance_id, process_name, total_cpu_time_ms, cpu_core, cpu_time_ms_per_core, total_time_ms
//
// Per (instance, process) group:
//   - there is exactly one record per core index 0..Cores-1
//   - the per-core times add up to total_cpu_time_ms exactly
//   - total_cpu_time_ms is drawn from CPUTime, total_time_ms from TotalTime
//
// Randomness comes from a Source, so a fixed seed (NewSource) reproduces the
// same dataset byte for byte.
//
// # Per-core split
//
// The first Cores-1 shares are drawn from [1, total/2] and the last core
// takes the remainder. A draw is capped when it would leave too little for
// the draws after it, so the remainder is never negative; it can be zero.
// Validate rejects CPUTime ranges too small to fund one millisecond per
// drawn core.
package usage
