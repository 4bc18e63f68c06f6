package model

import (
	"testing"
	"time"
)

func TestDefaultWorkingDays(t *testing.T) {
	w := DefaultWorkingDays()
	for _, d := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		if !w.Includes(d) {
			t.Fatalf("expected %s to be a working day", d)
		}
	}
	for _, d := range []time.Weekday{time.Saturday, time.Sunday} {
		if w.Includes(d) {
			t.Fatalf("expected %s to be non-working", d)
		}
	}
	if w.Mask() != 31 {
		t.Fatalf("expected mask 31 got %d", w.Mask())
	}
}

func TestWorkingDaysMaskRoundTrip(t *testing.T) {
	for mask := 0; mask < 128; mask++ {
		if got := WorkingDaysFromMask(mask).Mask(); got != mask {
			t.Fatalf("mask %d round-tripped to %d", mask, got)
		}
	}
}

func TestWorkingDaysMaskBits(t *testing.T) {
	w := WorkingDaysFromMask(MaskSaturday | MaskSunday)
	if !w.Includes(time.Saturday) || !w.Includes(time.Sunday) {
		t.Fatalf("weekend mask not decoded")
	}
	if w.Includes(time.Monday) {
		t.Fatalf("monday unexpectedly working")
	}
}

func TestDayTypeWorking(t *testing.T) {
	cases := []struct {
		dt   DayType
		want bool
	}{
		{DayWorking, true},
		{DayHalfDay, true},
		{DayHoliday, false},
		{DayClosure, false},
	}
	for _, c := range cases {
		if c.dt.Working() != c.want {
			t.Fatalf("%s: expected working=%v", c.dt, c.want)
		}
	}
}

func TestDateKeyHelpers(t *testing.T) {
	ts := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	if got := DateKey(ts); got != "2025-03-14" {
		t.Fatalf("unexpected key %s", got)
	}
	d, err := ParseDateKey("2025-03-14")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !d.Equal(Day(ts)) {
		t.Fatalf("parse mismatch: %v vs %v", d, Day(ts))
	}
	if EndOfDay(d).Before(StartOfDay(d)) {
		t.Fatalf("end of day precedes start of day")
	}
	if DateKey(EndOfDay(d)) != "2025-03-14" {
		t.Fatalf("end of day crossed into the next date")
	}
}
