// Package metrics defines interfaces and event types for recording
// scheduling observability data. Sinks like PromSink and InfluxSink record
// events such as completed runs or allocation shortfalls and can be
// combined with NewMultiSink.
package metrics
