// Package snapshot assembles per-pair forex and order-book data into one
// Full Snapshot.
//
// Per-pair work fans out concurrently and the assembler waits for every
// pair before producing the snapshot; a slow or failed pair delays but
// never aborts the others.
package snapshot
