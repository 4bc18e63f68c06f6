package metrics

import "time"

// ScheduleRunEvent summarizes one scheduling run.
type ScheduleRunEvent struct {
	RunID          string
	Operations     int
	Scheduled      int
	Shortfalls     int
	HoursAllocated float64
	Start          time.Time
	Time           time.Time
}

// MetricsSink records scheduling results for observability purposes.
type MetricsSink interface {
	RecordScheduleRun(ev ScheduleRunEvent) error
}

// AllocationShortfallEvent captures an operation left under-allocated when
// the day-search ceiling was hit before its full duration was placed.
type AllocationShortfallEvent struct {
	RunID          string
	OperationID    string
	CellID         string
	RequestedHours float64
	AllocatedHours float64
	Time           time.Time
}

// ShortfallRecorder records allocation shortfalls.
type ShortfallRecorder interface {
	RecordAllocationShortfall(ev AllocationShortfallEvent) error
}

// CellLoadEvent is a per-cell capacity snapshot for one calendar day.
type CellLoadEvent struct {
	RunID     string
	CellID    string
	Date      time.Time
	Total     float64
	Used      float64
	Available float64
}

// CellLoadRecorder records capacity snapshots.
type CellLoadRecorder interface {
	RecordCellLoad(ev CellLoadEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordScheduleRun(ScheduleRunEvent) error                 { return nil }
func (NopSink) RecordAllocationShortfall(AllocationShortfallEvent) error { return nil }
func (NopSink) RecordCellLoad(CellLoadEvent) error                       { return nil }
