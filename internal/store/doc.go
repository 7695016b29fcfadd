// Package store persists snapshots to the shared append-only history
// table and reads them back.
//
// The table is arb_history(id bigserial, created_at timestamptz default
// now(), data jsonb). This system only appends and reads; rows are never
// mutated or deleted.
package store
