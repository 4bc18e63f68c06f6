package schedule

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/calendar"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/capacity"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/logger"
	coremetrics "github.com/SheetMetalConnect/eryxon-flow-sub007/core/metrics"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/model"
)

// Scheduler threads operations through the allocator behind a single global
// date cursor shared across the whole batch. Capacity left on the end day of
// one operation is not offered to the next one, even when that next
// operation targets a different cell that sat idle; the planning model is
// strictly sequential. See DESIGN.md for the rationale of keeping it so.
//
// A Scheduler owns its ledger for the duration of one run and is not safe
// for concurrent use.
type Scheduler struct {
	cal    *calendar.Resolver
	ledger *capacity.Ledger
	alloc  *Allocator
	log    logger.Logger
	sink   coremetrics.MetricsSink
	runID  string
}

// New creates a scheduler around an isolated per-run ledger. A nil sink
// disables event recording.
func New(cal *calendar.Resolver, ledger *capacity.Ledger, log logger.Logger, sink coremetrics.MetricsSink) *Scheduler {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return &Scheduler{
		cal:    cal,
		ledger: ledger,
		alloc:  NewAllocator(cal, ledger),
		log:    log,
		sink:   sink,
		runID:  uuid.NewString(),
	}
}

// RunID identifies this scheduler instance in logs and sink events.
func (s *Scheduler) RunID() string {
	return s.runID
}

// ScheduleOperations processes operations in input order starting from
// startDate. Operations without a cell pass through unscheduled and do not
// advance the cursor; every other operation is allocated from the current
// cursor, after which the cursor jumps to the next working day strictly
// after the operation's end date. Exactly one output row is produced per
// input operation.
func (s *Scheduler) ScheduleOperations(ops []model.Operation, startDate time.Time) []model.ScheduledOperation {
	out := make([]model.ScheduledOperation, 0, len(ops))
	cursor := model.Day(startDate)

	for _, op := range ops {
		if op.CellID == "" {
			s.log.Debugw("operation has no cell, passing through unscheduled", map[string]any{
				"run_id":       s.runID,
				"operation_id": op.ID,
			})
			out = append(out, model.ScheduledOperation{Operation: op, Allocations: []model.DayAllocation{}})
			continue
		}
		res := s.alloc.Allocate(op.CellID, op.ID, op.DurationHours(), cursor)
		out = append(out, s.scheduled(op, res))
		cursor = s.cal.NextWorkingDay(res.End.AddDate(0, 0, 1))
	}

	s.recordRun(out, startDate)
	return out
}

// ScheduleJobs sorts jobs ascending by due date, jobs without one after all
// dated jobs in stable input order, then schedules each job's operations
// consecutively through the shared cursor. Jobs with no associated
// operations produce no output rows.
func (s *Scheduler) ScheduleJobs(jobs []model.Job, opsByJob map[string][]model.Operation, startDate time.Time) []model.ScheduledOperation {
	ordered := make([]model.Job, len(jobs))
	copy(ordered, jobs)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].DueDate, ordered[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	var batch []model.Operation
	for _, job := range ordered {
		batch = append(batch, opsByJob[job.ID]...)
	}
	return s.ScheduleOperations(batch, startDate)
}

func (s *Scheduler) scheduled(op model.Operation, res Allocation) model.ScheduledOperation {
	so := model.ScheduledOperation{
		Operation:      op,
		Allocations:    res.Days,
		FullyAllocated: res.FullyAllocated(),
	}
	if so.Allocations == nil {
		so.Allocations = []model.DayAllocation{}
	}
	if len(res.Days) > 0 {
		firstDay := model.Day(res.Days[0].Date)
		lastDay := model.Day(res.Days[len(res.Days)-1].Date)
		first := model.StartOfDay(firstDay)
		last := model.EndOfDay(lastDay)
		so.PlannedStart = &first
		so.PlannedEnd = &last
		allocationSpanDays.Observe(lastDay.Sub(firstDay).Hours()/24 + 1)
	}

	operationsScheduled.WithLabelValues(op.CellID).Inc()
	hoursAllocated.WithLabelValues(op.CellID).Add(so.AllocatedHours())

	if !so.FullyAllocated {
		allocationShortfalls.WithLabelValues(op.CellID).Inc()
		s.log.Warnf("operation %s under-allocated on cell %s: %.2fh unplaced after %d-day search",
			op.ID, op.CellID, res.RemainingHours, calendar.MaxScanDays)
		if rec, ok := s.sink.(coremetrics.ShortfallRecorder); ok {
			_ = rec.RecordAllocationShortfall(coremetrics.AllocationShortfallEvent{
				RunID:          s.runID,
				OperationID:    op.ID,
				CellID:         op.CellID,
				RequestedHours: op.DurationHours(),
				AllocatedHours: so.AllocatedHours(),
				Time:           time.Now(),
			})
		}
	}
	return so
}

func (s *Scheduler) recordRun(out []model.ScheduledOperation, startDate time.Time) {
	ev := coremetrics.ScheduleRunEvent{
		RunID:      s.runID,
		Operations: len(out),
		Start:      model.Day(startDate),
		Time:       time.Now(),
	}
	for _, so := range out {
		if len(so.Allocations) > 0 {
			ev.Scheduled++
		}
		if so.CellID != "" && !so.FullyAllocated {
			ev.Shortfalls++
		}
		ev.HoursAllocated += so.AllocatedHours()
	}
	if err := s.sink.RecordScheduleRun(ev); err != nil {
		s.log.Errorf("record schedule run: %v", err)
	}
	s.log.Infof("run %s: %d operations, %d scheduled, %d shortfalls, %.1fh allocated",
		s.runID, ev.Operations, ev.Scheduled, ev.Shortfalls, ev.HoursAllocated)
}
