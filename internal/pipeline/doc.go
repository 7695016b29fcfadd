// Package pipeline orchestrates one snapshot acquisition pass.
//
// The dispatcher is the single entry point: fetch forex, assemble the
// snapshot, maybe persist it, and shape the response for the caller class
// (automated cron trigger vs. interactive viewer). It keeps no state
// between invocations; every pass starts from the store's current
// contents.
package pipeline
