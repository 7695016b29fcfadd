// Package gate decides whether a freshly assembled snapshot is persisted.
//
// The debounce exists because the pipeline can be invoked more often than
// upstream data changes (overlapping manual and scheduled triggers). The
// check is best-effort read-before-write, not a lock: two near-simultaneous
// invocations can both pass and both write, which is accepted as rare,
// harmless duplication.
package gate
