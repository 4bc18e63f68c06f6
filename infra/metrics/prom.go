package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/SheetMetalConnect/eryxon-flow-sub007/core/metrics"
)

// PromSink records scheduling events in Prometheus metrics.
type PromSink struct {
	runs        prometheus.Counter
	shortfalls  prometheus.Counter
	hours       prometheus.Counter
	utilization *prometheus.GaugeVec
}

// NewPromSink registers scheduling metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_runs_total",
		Help: "Total number of scheduling runs",
	})
	shortfalls := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_run_shortfalls_total",
		Help: "Operations left under-allocated across all runs",
	})
	hours := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_run_hours_allocated_total",
		Help: "Hours placed onto calendar days across all runs",
	})
	utilization := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cell_utilization_ratio",
		Help: "Used over total capacity for a cell's most recently reported day",
	}, []string{"cell_id"})

	if err := registerCounter(reg, &runs); err != nil {
		return nil, err
	}
	if err := registerCounter(reg, &shortfalls); err != nil {
		return nil, err
	}
	if err := registerCounter(reg, &hours); err != nil {
		return nil, err
	}
	if err := reg.Register(utilization); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			utilization = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{runs: runs, shortfalls: shortfalls, hours: hours, utilization: utilization}, nil
}

func registerCounter(reg prometheus.Registerer, c *prometheus.Counter) error {
	if err := reg.Register(*c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			*c = are.ExistingCollector.(prometheus.Counter)
			return nil
		}
		return err
	}
	return nil
}

// RecordScheduleRun increments the run counters.
func (s *PromSink) RecordScheduleRun(ev coremetrics.ScheduleRunEvent) error {
	s.runs.Inc()
	s.shortfalls.Add(float64(ev.Shortfalls))
	s.hours.Add(ev.HoursAllocated)
	return nil
}

// RecordCellLoad sets the utilization gauge for the cell.
func (s *PromSink) RecordCellLoad(ev coremetrics.CellLoadEvent) error {
	if ev.Total > 0 {
		s.utilization.WithLabelValues(ev.CellID).Set(ev.Used / ev.Total)
	}
	return nil
}

// StartPromServer exposes the default registry on the given port. It blocks
// until the server fails.
func StartPromServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}
