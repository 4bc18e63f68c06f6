package capacity

import (
	"math"
	"testing"

	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/calendar"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/model"
)

func TestSummarySkipsNonWorkingDays(t *testing.T) {
	cells := []model.Cell{{ID: "laser", CapacityHoursPerDay: 8}}
	r := calendar.NewResolver(model.DefaultWorkingDays(), nil, cells)
	rep := NewReporter(r, NewLedger(r), cells)

	// Monday through Sunday.
	summary := rep.Summary(date(2025, 6, 2), date(2025, 6, 8), "")
	if len(summary) != 5 {
		t.Fatalf("expected 5 working days got %d", len(summary))
	}
	if _, ok := summary["2025-06-07"]; ok {
		t.Fatalf("saturday present in summary")
	}
	if _, ok := summary["2025-06-08"]; ok {
		t.Fatalf("sunday present in summary")
	}
}

func TestSummaryAggregatesAcrossCells(t *testing.T) {
	cells := []model.Cell{
		{ID: "laser", CapacityHoursPerDay: 8},
		{ID: "press", CapacityHoursPerDay: 4},
	}
	r := calendar.NewResolver(model.DefaultWorkingDays(), nil, cells)
	l := NewLedger(r)
	monday := date(2025, 6, 2)
	l.Commit("laser", monday, 5)
	l.Commit("press", monday, 1)

	rep := NewReporter(r, l, cells)
	all := rep.Summary(monday, monday, "")
	s, ok := all["2025-06-02"]
	if !ok {
		t.Fatalf("monday missing from summary")
	}
	if s.Total != 12 || s.Used != 6 || s.Available != 6 {
		t.Fatalf("unexpected aggregate %+v", s)
	}

	one := rep.Summary(monday, monday, "press")["2025-06-02"]
	if one.Total != 4 || one.Used != 1 || one.Available != 3 {
		t.Fatalf("unexpected filtered summary %+v", one)
	}
}

func TestSummaryHonorsOverrides(t *testing.T) {
	cells := []model.Cell{{ID: "laser", CapacityHoursPerDay: 8}}
	overrides := []model.CalendarOverride{
		{Date: date(2025, 6, 3), DayType: model.DayHalfDay, CapacityMultiplier: 0.5},
		{Date: date(2025, 6, 4), DayType: model.DayClosure},
	}
	r := calendar.NewResolver(model.DefaultWorkingDays(), overrides, cells)
	rep := NewReporter(r, NewLedger(r), cells)

	summary := rep.Summary(date(2025, 6, 2), date(2025, 6, 6), "")
	if len(summary) != 4 {
		t.Fatalf("closure day not omitted: %d entries", len(summary))
	}
	if got := summary["2025-06-03"].Total; got != 4 {
		t.Fatalf("half day total %v", got)
	}
}

func TestUtilizationStats(t *testing.T) {
	summary := map[string]DaySummary{
		"2025-06-02": {Total: 8, Used: 8, Available: 0},
		"2025-06-03": {Total: 8, Used: 4, Available: 4},
		"2025-06-04": {Total: 0, Used: 0, Available: 0}, // ignored
	}
	mean, peak := UtilizationStats(summary)
	if math.Abs(mean-0.75) > 1e-9 {
		t.Fatalf("expected mean 0.75 got %v", mean)
	}
	if peak != 1 {
		t.Fatalf("expected peak 1 got %v", peak)
	}

	mean, peak = UtilizationStats(nil)
	if mean != 0 || peak != 0 {
		t.Fatalf("empty summary: got %v %v", mean, peak)
	}
}
