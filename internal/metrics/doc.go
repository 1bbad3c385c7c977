// Package metrics provides Prometheus instrumentation for the recorder.
//
// Key metrics:
//   - Feed frame and update counts, by event type
//   - Records appended to the CSV sink
//   - Connection state, reconnects, and idle heartbeats
//   - Exchange-to-receive network latency distribution
//
// All record methods are safe on a nil *Registry, so callers can disable
// instrumentation by not constructing one.
package metrics
