// Package server exposes the aggregator over HTTP.
//
// One data endpoint, GET /api, drives the whole pipeline; its cron,
// force and since query parameters select the caller mode. /health
// reports process liveness and store connectivity.
package server
