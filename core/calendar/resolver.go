package calendar

import (
	"time"

	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/model"
)

// MaxScanDays bounds every forward date scan. It is a safety ceiling
// guaranteeing termination when a calendar has no capacity at all, not a
// business rule.
const MaxScanDays = 365

// Resolver decides whether a calendar day is a working day and what
// effective capacity a cell has on it. Explicit overrides take precedence
// over the weekly working pattern.
type Resolver struct {
	pattern   model.WorkingDays
	overrides map[string]model.CalendarOverride
	cells     map[string]model.Cell
}

// NewResolver indexes overrides by calendar-day key and cells by id. When
// the input carries duplicate override dates the last entry wins.
func NewResolver(pattern model.WorkingDays, overrides []model.CalendarOverride, cells []model.Cell) *Resolver {
	r := &Resolver{
		pattern:   pattern,
		overrides: make(map[string]model.CalendarOverride, len(overrides)),
		cells:     make(map[string]model.Cell, len(cells)),
	}
	for _, ov := range overrides {
		r.overrides[model.DateKey(ov.Date)] = ov
	}
	for _, c := range cells {
		r.cells[c.ID] = c
	}
	return r
}

// Override returns the calendar override for date, if one exists.
func (r *Resolver) Override(date time.Time) (model.CalendarOverride, bool) {
	ov, ok := r.overrides[model.DateKey(date)]
	return ov, ok
}

// IsWorkingDay reports whether date accepts allocations. An override decides
// alone when present; otherwise the weekly pattern is consulted.
func (r *Resolver) IsWorkingDay(date time.Time) bool {
	if ov, ok := r.Override(date); ok {
		return ov.DayType.Working()
	}
	return r.pattern.Includes(model.Day(date).Weekday())
}

// EffectiveCapacity returns the hours cellID can absorb on date. With an
// override the cell's base capacity is scaled by the override multiplier;
// without one the cell contributes its full capacity on pattern working
// days and nothing otherwise.
func (r *Resolver) EffectiveCapacity(cellID string, date time.Time) float64 {
	base := r.cellCapacity(cellID)
	if ov, ok := r.Override(date); ok {
		return base * ov.CapacityMultiplier
	}
	if r.pattern.Includes(model.Day(date).Weekday()) {
		return base
	}
	return 0
}

// NextWorkingDay scans forward from date (inclusive) to the first working
// day. When no working day exists within the scan ceiling the last date
// visited is returned so callers always get a usable cursor.
func (r *Resolver) NextWorkingDay(date time.Time) time.Time {
	d := model.Day(date)
	for i := 1; i < MaxScanDays && !r.IsWorkingDay(d); i++ {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// Unknown cell ids resolve to the default capacity rather than erroring;
// the scheduler is a best-effort planning aid, not a referential-integrity
// checker.
func (r *Resolver) cellCapacity(cellID string) float64 {
	if c, ok := r.cells[cellID]; ok {
		return c.DailyCapacity()
	}
	return model.DefaultDailyCapacityHours
}
