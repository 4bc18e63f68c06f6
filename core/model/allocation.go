package model

import "time"

// DayAllocation assigns part of one operation's duration to one cell on one
// calendar day. Hours is always positive and never exceeds the cell's
// effective capacity for that date.
type DayAllocation struct {
	Date        time.Time `json:"date"`
	CellID      string    `json:"cell_id"`
	OperationID string    `json:"operation_id"`
	Hours       float64   `json:"hours_allocated"`
}

// ScheduledOperation echoes the input operation plus the scheduling-derived
// fields. Operations without a cell, or for which no capacity was ever
// found, keep nil planned dates and an empty allocation list.
//
// FullyAllocated distinguishes a completely placed operation from one
// truncated by the day-search ceiling; callers relying on the planned dates
// alone cannot tell the two apart.
type ScheduledOperation struct {
	Operation
	PlannedStart   *time.Time      `json:"planned_start,omitempty"`
	PlannedEnd     *time.Time      `json:"planned_end,omitempty"`
	Allocations    []DayAllocation `json:"allocations"`
	FullyAllocated bool            `json:"fully_allocated"`
}

// AllocatedHours sums the hours across the operation's day allocations.
func (s ScheduledOperation) AllocatedHours() float64 {
	total := 0.0
	for _, a := range s.Allocations {
		total += a.Hours
	}
	return total
}
