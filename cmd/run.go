package cmd

import (
	"fmt"
	"time"

	"github.com/SheetMetalConnect/eryxon-flow-sub007/config"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/calendar"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/capacity"
	coremetrics "github.com/SheetMetalConnect/eryxon-flow-sub007/core/metrics"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/model"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/schedule"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/infra/logger"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/infra/metrics"
)

// runtime bundles everything one scheduling invocation needs: the
// materialized plan, a resolver and an isolated ledger, and the configured
// metrics sink.
type runtime struct {
	log      logger.Logger
	sink     coremetrics.MetricsSink
	input    schedule.PlanInput
	resolver *calendar.Resolver
	ledger   *capacity.Ledger
	sched    *schedule.Scheduler
	start    time.Time
}

func newRuntime(planPath, component string) (*runtime, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, fmt.Errorf("set log level: %w", err)
	}
	logg := logger.New(component)

	plan, err := schedule.LoadPlan(planPath)
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}
	input, err := plan.Materialize()
	if err != nil {
		return nil, fmt.Errorf("materialize plan: %w", err)
	}

	sink := buildSink(cfg, logg)
	resolver := calendar.NewResolver(cfg.Scheduler.WorkingDays(), input.Overrides, input.Cells)
	ledger := capacity.NewLedger(resolver)

	return &runtime{
		log:      logg,
		sink:     sink,
		input:    input,
		resolver: resolver,
		ledger:   ledger,
		sched:    schedule.New(resolver, ledger, logg, sink),
		start:    resolveStart(cfg, input),
	}, nil
}

// run executes the scheduling pass: jobs when the plan defines them, the
// flat operation batch otherwise.
func (r *runtime) run() []model.ScheduledOperation {
	if len(r.input.Jobs) > 0 {
		return r.sched.ScheduleJobs(r.input.Jobs, r.input.OperationsByJob, r.start)
	}
	return r.sched.ScheduleOperations(r.input.Operations, r.start)
}

// Start resolution order: plan file, then configuration, then today.
func resolveStart(cfg *config.Config, input schedule.PlanInput) time.Time {
	if !input.Start.IsZero() {
		return input.Start
	}
	if cfg.Scheduler.StartDate != "" {
		// Validated during config load.
		d, _ := model.ParseDateKey(cfg.Scheduler.StartDate)
		return d
	}
	return model.Day(time.Now().UTC())
}

func buildSink(cfg *config.Config, logg logger.Logger) coremetrics.MetricsSink {
	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			logg.Errorf("prom sink: %v", err)
		} else {
			sinks = append(sinks, sink)
			go func() {
				if err := metrics.StartPromServer(cfg.Metrics.PrometheusPort); err != nil {
					logg.Errorf("prom server: %v", err)
				}
			}()
		}
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}
	case 1:
		return sinks[0]
	default:
		return metrics.NewMultiSink(sinks...)
	}
}
