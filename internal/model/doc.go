// Package model defines shared data types used across the aggregator.
//
// Conventions:
//   - Forex timestamps: int64 milliseconds since Unix epoch (fxTimestamp)
//   - Store timestamps: time.Time (created_at column)
//   - Missing upstream values: nil pointers, serialized as explicit JSON null
package model
