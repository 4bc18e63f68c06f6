package model

import "time"

// DayType classifies a calendar override.
type DayType string

const (
	DayWorking DayType = "working"
	DayHoliday DayType = "holiday"
	DayClosure DayType = "closure"
	DayHalfDay DayType = "half_day"
)

// Valid reports whether d is a known day type.
func (d DayType) Valid() bool {
	switch d {
	case DayWorking, DayHoliday, DayClosure, DayHalfDay:
		return true
	}
	return false
}

// Working reports whether the day type counts as a working day for
// allocation purposes. Holiday and closure days never do, regardless of
// their capacity multiplier.
func (d DayType) Working() bool {
	return d == DayWorking || d == DayHalfDay
}

// CalendarOverride is a date-specific exception to the default weekly
// working pattern. At most one override exists per calendar day and it takes
// precedence over the pattern.
type CalendarOverride struct {
	Date               time.Time `json:"date"`
	DayType            DayType   `json:"day_type"`
	CapacityMultiplier float64   `json:"capacity_multiplier"`
}

// Weekday bits of the legacy working-days mask.
const (
	MaskMonday = 1 << iota
	MaskTuesday
	MaskWednesday
	MaskThursday
	MaskFriday
	MaskSaturday
	MaskSunday
)

// maskOrder maps mask bit positions to weekdays, Monday first.
var maskOrder = [7]time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// WorkingDays is the default weekly working pattern. Internally it is an
// explicit weekday set; the 7-bit mask (Mon=1 .. Sun=64) is kept as the wire
// encoding for callers that exchange it.
type WorkingDays struct {
	working [7]bool // indexed by time.Weekday
}

// DefaultWorkingDays enables Monday through Friday.
func DefaultWorkingDays() WorkingDays {
	return WorkingDaysFromMask(MaskMonday | MaskTuesday | MaskWednesday | MaskThursday | MaskFriday)
}

// WorkingDaysFromMask decodes the legacy bitmask encoding.
func WorkingDaysFromMask(mask int) WorkingDays {
	var w WorkingDays
	for i, d := range maskOrder {
		if mask&(1<<i) != 0 {
			w.working[d] = true
		}
	}
	return w
}

// Mask encodes the pattern back into the legacy bitmask.
func (w WorkingDays) Mask() int {
	mask := 0
	for i, d := range maskOrder {
		if w.working[d] {
			mask |= 1 << i
		}
	}
	return mask
}

// Includes reports whether d is a default working day.
func (w WorkingDays) Includes(d time.Weekday) bool {
	return w.working[d]
}
