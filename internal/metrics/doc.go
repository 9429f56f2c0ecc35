// Package metrics exposes Prometheus collectors for the relay: submissions by
// outcome, transport latency, and per-route HTTP request counts. Everything is
// registered on a private registry served by Handler, usually at /metrics.
package metrics
