package schedule

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	operationsScheduled  *prometheus.CounterVec
	hoursAllocated       *prometheus.CounterVec
	allocationShortfalls *prometheus.CounterVec
	allocationSpanDays   prometheus.Histogram
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, *prometheus.CounterVec, *prometheus.CounterVec, prometheus.Histogram) {
	ops := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_operations_total",
			Help: "Number of operations processed by the scheduler",
		},
		[]string{"cell_id"},
	)
	hours := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_hours_allocated_total",
			Help: "Hours of operation duration placed onto calendar days",
		},
		[]string{"cell_id"},
	)
	short := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_allocation_shortfall_total",
			Help: "Operations left under-allocated by the day-search ceiling",
		},
		[]string{"cell_id"},
	)
	span := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scheduler_allocation_span_days",
			Help:    "Calendar span in days between an operation's first and last allocation",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 60, 120, 365},
		},
	)
	return ops, hours, short, span
}

func init() {
	operationsScheduled, hoursAllocated, allocationShortfalls, allocationSpanDays = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers scheduler metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(operationsScheduled, hoursAllocated, allocationShortfalls, allocationSpanDays)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	operationsScheduled, hoursAllocated, allocationShortfalls, allocationSpanDays = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
