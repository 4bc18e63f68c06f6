package schedule

import (
	"math"
	"time"

	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/calendar"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/capacity"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/model"
)

// Allocator places one operation's hours onto working days, consuming ledger
// capacity day by day.
type Allocator struct {
	cal    *calendar.Resolver
	ledger *capacity.Ledger
}

// NewAllocator creates an allocator over the run's resolver and ledger.
func NewAllocator(cal *calendar.Resolver, ledger *capacity.Ledger) *Allocator {
	return &Allocator{cal: cal, ledger: ledger}
}

// Allocation is the outcome of placing one operation.
type Allocation struct {
	Days []model.DayAllocation
	// End is the last day that received an allocation, or the (advanced)
	// start day when none did.
	End            time.Time
	RemainingHours float64
}

// FullyAllocated reports whether the whole requested duration was placed.
func (a Allocation) FullyAllocated() bool {
	return a.RemainingHours <= 0
}

// Allocate walks forward from start, skipping non-working days and taking
// min(available, remaining) hours on each day with open capacity, until the
// duration is exhausted or the day-search ceiling is reached. When the
// ceiling is hit the allocation comes back partially filled with
// RemainingHours reporting the unplaced balance; the allocator never errors.
func (a *Allocator) Allocate(cellID, operationID string, hours float64, start time.Time) Allocation {
	cur := a.cal.NextWorkingDay(start)
	res := Allocation{End: cur, RemainingHours: hours}

	for attempts := 0; res.RemainingHours > 0 && attempts < calendar.MaxScanDays; attempts++ {
		if a.cal.IsWorkingDay(cur) {
			if avail := a.ledger.Available(cellID, cur); avail > 0 {
				take := math.Min(avail, res.RemainingHours)
				res.Days = append(res.Days, model.DayAllocation{
					Date:        cur,
					CellID:      cellID,
					OperationID: operationID,
					Hours:       take,
				})
				a.ledger.Commit(cellID, cur, take)
				res.RemainingHours -= take
				res.End = cur
			}
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return res
}
