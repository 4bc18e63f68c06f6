package schedule

import (
	"testing"

	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/calendar"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/capacity"
	coremetrics "github.com/SheetMetalConnect/eryxon-flow-sub007/core/metrics"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/model"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/infra/logger"
)

func newScheduler(overrides []model.CalendarOverride, sink coremetrics.MetricsSink, cells ...model.Cell) *Scheduler {
	r := calendar.NewResolver(model.DefaultWorkingDays(), overrides, cells)
	return New(r, capacity.NewLedger(r), logger.NopLogger{}, sink)
}

func TestScheduleOperationsHolidaySkip(t *testing.T) {
	// Two 8h operations from Monday; Tuesday is a declared holiday. The
	// second operation must land on Wednesday.
	overrides := []model.CalendarOverride{
		{Date: date(2025, 6, 3), DayType: model.DayHoliday},
	}
	s := newScheduler(overrides, nil, model.Cell{ID: "laser", CapacityHoursPerDay: 8})

	ops := []model.Operation{
		{ID: "op1", CellID: "laser", EstimatedTimeMinutes: 480},
		{ID: "op2", CellID: "laser", EstimatedTimeMinutes: 480},
	}
	out := s.ScheduleOperations(ops, date(2025, 6, 2))
	if len(out) != 2 {
		t.Fatalf("expected 2 rows got %d", len(out))
	}
	if !out[0].Allocations[0].Date.Equal(date(2025, 6, 2)) {
		t.Fatalf("op1 on %s", model.DateKey(out[0].Allocations[0].Date))
	}
	if !out[1].Allocations[0].Date.Equal(date(2025, 6, 4)) {
		t.Fatalf("op2 on %s, expected the day after the holiday", model.DateKey(out[1].Allocations[0].Date))
	}
}

func TestScheduleOperationsUnassignedPassThrough(t *testing.T) {
	s := newScheduler(nil, nil, model.Cell{ID: "laser", CapacityHoursPerDay: 8})
	ops := []model.Operation{
		{ID: "op1", EstimatedTimeMinutes: 120}, // no cell
		{ID: "op2", CellID: "laser", EstimatedTimeMinutes: 120},
	}
	out := s.ScheduleOperations(ops, date(2025, 6, 2))
	if len(out) != 2 {
		t.Fatalf("expected one row per input operation, got %d", len(out))
	}
	if out[0].PlannedStart != nil || out[0].PlannedEnd != nil || len(out[0].Allocations) != 0 {
		t.Fatalf("unassigned operation was scheduled: %+v", out[0])
	}
	// The unassigned operation must not advance the cursor.
	if !out[1].Allocations[0].Date.Equal(date(2025, 6, 2)) {
		t.Fatalf("cursor advanced past monday: %s", model.DateKey(out[1].Allocations[0].Date))
	}
}

func TestScheduleOperationsGlobalCursor(t *testing.T) {
	// The cursor is shared across cells: after op1 finishes Monday on the
	// laser, op2 starts Tuesday on the press even though the press was idle.
	s := newScheduler(nil, nil,
		model.Cell{ID: "laser", CapacityHoursPerDay: 8},
		model.Cell{ID: "press", CapacityHoursPerDay: 8},
	)
	ops := []model.Operation{
		{ID: "op1", CellID: "laser", EstimatedTimeMinutes: 240},
		{ID: "op2", CellID: "press", EstimatedTimeMinutes: 240},
	}
	out := s.ScheduleOperations(ops, date(2025, 6, 2))
	if !out[1].Allocations[0].Date.Equal(date(2025, 6, 3)) {
		t.Fatalf("op2 started %s, expected tuesday", model.DateKey(out[1].Allocations[0].Date))
	}
}

func TestScheduleOperationsLeftoverNotReused(t *testing.T) {
	// op1 takes 4 of Monday's 8 hours; op2 on the same cell still starts
	// Tuesday. Monday's leftover is never offered to later batch members.
	s := newScheduler(nil, nil, model.Cell{ID: "laser", CapacityHoursPerDay: 8})
	ops := []model.Operation{
		{ID: "op1", CellID: "laser", EstimatedTimeMinutes: 240},
		{ID: "op2", CellID: "laser", EstimatedTimeMinutes: 240},
	}
	out := s.ScheduleOperations(ops, date(2025, 6, 2))
	if !out[1].Allocations[0].Date.Equal(date(2025, 6, 3)) {
		t.Fatalf("op2 reused monday leftover: %s", model.DateKey(out[1].Allocations[0].Date))
	}
}

func TestScheduleOperationsDefaultDuration(t *testing.T) {
	s := newScheduler(nil, nil, model.Cell{ID: "laser", CapacityHoursPerDay: 8})
	out := s.ScheduleOperations([]model.Operation{{ID: "op1", CellID: "laser"}}, date(2025, 6, 2))
	if got := out[0].AllocatedHours(); got != 1 {
		t.Fatalf("expected default 1h got %v", got)
	}
}

func TestScheduleOperationsPlannedBounds(t *testing.T) {
	s := newScheduler(nil, nil, model.Cell{ID: "laser", CapacityHoursPerDay: 8})
	out := s.ScheduleOperations([]model.Operation{
		{ID: "op1", CellID: "laser", EstimatedTimeMinutes: 960},
	}, date(2025, 6, 2))

	so := out[0]
	if so.PlannedStart == nil || so.PlannedEnd == nil {
		t.Fatalf("planned bounds missing")
	}
	if !so.PlannedStart.Equal(date(2025, 6, 2)) {
		t.Fatalf("planned start %v", so.PlannedStart)
	}
	if model.DateKey(*so.PlannedEnd) != "2025-06-03" || !so.PlannedEnd.After(*so.PlannedStart) {
		t.Fatalf("planned end %v", so.PlannedEnd)
	}
	if !so.FullyAllocated {
		t.Fatalf("expected fully allocated")
	}
}

func TestScheduleOperationsEmptyInput(t *testing.T) {
	s := newScheduler(nil, nil, model.Cell{ID: "laser"})
	if out := s.ScheduleOperations(nil, date(2025, 6, 2)); len(out) != 0 {
		t.Fatalf("expected empty output got %d rows", len(out))
	}
}

func TestScheduleJobsDueDateOrdering(t *testing.T) {
	s := newScheduler(nil, nil, model.Cell{ID: "laser", CapacityHoursPerDay: 8})
	feb := date(2025, 2, 1)
	jan := date(2025, 1, 15)
	jobs := []model.Job{
		{ID: "late", DueDate: &feb},
		{ID: "early", DueDate: &jan},
	}
	opsByJob := map[string][]model.Operation{
		"late":  {{ID: "late-1", CellID: "laser", EstimatedTimeMinutes: 480}},
		"early": {{ID: "early-1", CellID: "laser", EstimatedTimeMinutes: 480}},
	}
	out := s.ScheduleJobs(jobs, opsByJob, date(2025, 1, 6))
	if out[0].ID != "early-1" {
		t.Fatalf("earlier-due job scheduled second")
	}
	if out[0].PlannedEnd.After(*out[1].PlannedStart) {
		t.Fatalf("earlier-due job placed after later-due job")
	}
}

func TestScheduleJobsNilDueDateSortsLast(t *testing.T) {
	s := newScheduler(nil, nil, model.Cell{ID: "laser", CapacityHoursPerDay: 8})
	due := date(2025, 3, 1)
	jobs := []model.Job{
		{ID: "undated"},
		{ID: "dated", DueDate: &due},
	}
	opsByJob := map[string][]model.Operation{
		"undated": {{ID: "u-1", CellID: "laser", EstimatedTimeMinutes: 60}},
		"dated":   {{ID: "d-1", CellID: "laser", EstimatedTimeMinutes: 60}},
	}
	out := s.ScheduleJobs(jobs, opsByJob, date(2025, 1, 6))
	if out[0].ID != "d-1" {
		t.Fatalf("dated job not scheduled first")
	}
}

func TestScheduleJobsSkipsEmptyJobs(t *testing.T) {
	s := newScheduler(nil, nil, model.Cell{ID: "laser"})
	jobs := []model.Job{{ID: "empty"}, {ID: "real"}}
	opsByJob := map[string][]model.Operation{
		"real": {{ID: "r-1", CellID: "laser", EstimatedTimeMinutes: 60}},
	}
	out := s.ScheduleJobs(jobs, opsByJob, date(2025, 6, 2))
	if len(out) != 1 || out[0].ID != "r-1" {
		t.Fatalf("unexpected output %+v", out)
	}
}

// recordingSink captures sink events for assertions.
type recordingSink struct {
	runs       []coremetrics.ScheduleRunEvent
	shortfalls []coremetrics.AllocationShortfallEvent
}

func (r *recordingSink) RecordScheduleRun(ev coremetrics.ScheduleRunEvent) error {
	r.runs = append(r.runs, ev)
	return nil
}

func (r *recordingSink) RecordAllocationShortfall(ev coremetrics.AllocationShortfallEvent) error {
	r.shortfalls = append(r.shortfalls, ev)
	return nil
}

func TestScheduleRecordsRunAndShortfall(t *testing.T) {
	// Calendar fully closed: the only operation is truncated to nothing.
	var overrides []model.CalendarOverride
	start := date(2025, 1, 6)
	for d := start.AddDate(0, 0, -7); d.Before(start.AddDate(2, 0, 0)); d = d.AddDate(0, 0, 1) {
		overrides = append(overrides, model.CalendarOverride{Date: d, DayType: model.DayClosure})
	}
	sink := &recordingSink{}
	s := newScheduler(overrides, sink, model.Cell{ID: "laser"})

	out := s.ScheduleOperations([]model.Operation{
		{ID: "op1", CellID: "laser", EstimatedTimeMinutes: 480},
	}, start)

	if out[0].FullyAllocated {
		t.Fatalf("expected shortfall flag")
	}
	if len(sink.runs) != 1 {
		t.Fatalf("expected one run event got %d", len(sink.runs))
	}
	if sink.runs[0].Shortfalls != 1 || sink.runs[0].Scheduled != 0 {
		t.Fatalf("unexpected run event %+v", sink.runs[0])
	}
	if len(sink.shortfalls) != 1 || sink.shortfalls[0].OperationID != "op1" {
		t.Fatalf("unexpected shortfall events %+v", sink.shortfalls)
	}
	if sink.shortfalls[0].RunID != s.RunID() {
		t.Fatalf("shortfall not tagged with run id")
	}
}
