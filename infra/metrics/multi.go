package metrics

import coremetrics "github.com/SheetMetalConnect/eryxon-flow-sub007/core/metrics"

// MultiSink fans scheduling events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordScheduleRun forwards the run summary to all sinks, returning the
// first error encountered.
func (m *MultiSink) RecordScheduleRun(ev coremetrics.ScheduleRunEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordScheduleRun(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordAllocationShortfall forwards shortfall events.
func (m *MultiSink) RecordAllocationShortfall(ev coremetrics.AllocationShortfallEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.ShortfallRecorder); ok {
			if err := rec.RecordAllocationShortfall(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordCellLoad forwards capacity snapshots.
func (m *MultiSink) RecordCellLoad(ev coremetrics.CellLoadEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.CellLoadRecorder); ok {
			if err := rec.RecordCellLoad(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
