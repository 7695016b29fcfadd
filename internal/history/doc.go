// Package history reads stored snapshot ranges and downsamples them into
// a bounded, minimal-field response.
//
// Downsampling is deterministic stride sampling: keep every Nth record
// with N = ceil(fetched/target). It preserves the oldest-to-newest shape
// while bounding payload size; it is not a statistically unbiased sample.
package history
