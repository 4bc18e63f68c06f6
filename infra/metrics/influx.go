package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/SheetMetalConnect/eryxon-flow-sub007/core/metrics"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/model"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/infra/logger"
)

// InfluxSink writes scheduling events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	base := strings.TrimSuffix(cfg.InfluxURL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns
// a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordScheduleRun writes the run summary as a line protocol point.
func (s *InfluxSink) RecordScheduleRun(ev coremetrics.ScheduleRunEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("schedule_run").
		AddTag("run_id", ev.RunID).
		AddField("operations", ev.Operations).
		AddField("scheduled", ev.Scheduled).
		AddField("shortfalls", ev.Shortfalls).
		AddField("hours_allocated", round3(ev.HoursAllocated)).
		AddField("start_date", model.DateKey(ev.Start)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordAllocationShortfall persists an under-allocated operation.
func (s *InfluxSink) RecordAllocationShortfall(ev coremetrics.AllocationShortfallEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("allocation_shortfall").
		AddTag("run_id", ev.RunID).
		AddTag("cell_id", ev.CellID).
		AddTag("operation_id", ev.OperationID).
		AddField("requested_hours", round3(ev.RequestedHours)).
		AddField("allocated_hours", round3(ev.AllocatedHours)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordCellLoad writes a per-cell, per-day capacity snapshot.
func (s *InfluxSink) RecordCellLoad(ev coremetrics.CellLoadEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("cell_load").
		AddTag("run_id", ev.RunID).
		AddTag("cell_id", ev.CellID).
		AddField("total", round3(ev.Total)).
		AddField("used", round3(ev.Used)).
		AddField("available", round3(ev.Available)).
		SetTime(model.Day(ev.Date))
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client resources.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
