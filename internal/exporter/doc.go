// Package exporter serializes processed growth-curve records to CSV files.
//
// The output contract is fixed: header Well,Time_s,Time_h,OD with an optional
// trailing Condition column, one row per (well, timepoint) observation, rows
// ordered well-major with time ascending within each well. Numeric fields are
// written at full floating precision.
package exporter
