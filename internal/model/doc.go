// Package model defines the ingestion record and its persisted CSV schema.
//
// Conventions:
//   - Timestamps: int64 nanoseconds since Unix epoch (wall clock)
//   - Latencies: float64 fractional milliseconds
//   - Optional values: pointers; nil serializes as an empty cell
package model
