// Package metrics groups the metrics adapters.
//
// The prometheus subpackage records request counters and latencies on a
// private registry and exposes them over HTTP.
package metrics
