package model

// DefaultDailyCapacityHours applies to cells with no explicit capacity and
// to unknown cell ids referenced by operations.
const DefaultDailyCapacityHours = 8.0

// Cell represents one bounded-throughput manufacturing station.
type Cell struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Sequence            int     `json:"sequence"`
	CapacityHoursPerDay float64 `json:"capacity_hours_per_day"`
	Active              bool    `json:"active"`
}

// DailyCapacity returns the configured daily capacity, substituting the
// default when the field is absent or non-positive.
func (c Cell) DailyCapacity() float64 {
	if c.CapacityHoursPerDay <= 0 {
		return DefaultDailyCapacityHours
	}
	return c.CapacityHoursPerDay
}
