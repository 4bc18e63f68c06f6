package model

import "time"

// DefaultOperationMinutes is assumed when an operation carries no duration
// estimate.
const DefaultOperationMinutes = 60

// Operation is an indivisible unit of work on one cell, belonging to a job.
// An empty CellID marks the operation unassignable; it is echoed through
// scheduling output unscheduled.
type Operation struct {
	ID                   string `json:"id"`
	JobID                string `json:"job_id,omitempty"`
	CellID               string `json:"cell_id,omitempty"`
	EstimatedTimeMinutes int    `json:"estimated_time"`
	Sequence             int    `json:"sequence"`
}

// DurationHours converts the estimate to hours, substituting the default
// when the estimate is missing or non-positive.
func (o Operation) DurationHours() float64 {
	m := o.EstimatedTimeMinutes
	if m <= 0 {
		m = DefaultOperationMinutes
	}
	return float64(m) / 60
}

// Job is an ordered collection of operations belonging to one customer
// order. A nil due date sorts the job after all dated jobs.
type Job struct {
	ID      string     `json:"id"`
	DueDate *time.Time `json:"due_date,omitempty"`
}
