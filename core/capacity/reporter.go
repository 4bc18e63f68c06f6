package capacity

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/calendar"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/model"
)

// DaySummary aggregates capacity for one working day.
type DaySummary struct {
	Total     float64 `json:"total"`
	Used      float64 `json:"used"`
	Available float64 `json:"available"`
}

// Reporter summarizes ledger state after a scheduling run for dashboard
// consumption.
type Reporter struct {
	resolver *calendar.Resolver
	ledger   *Ledger
	cells    []model.Cell
}

// NewReporter creates a reporter over the run's resolver and ledger. The
// cell list defines the aggregation universe for unfiltered summaries.
func NewReporter(resolver *calendar.Resolver, ledger *Ledger, cells []model.Cell) *Reporter {
	return &Reporter{resolver: resolver, ledger: ledger, cells: cells}
}

// Summary walks every calendar day in the inclusive range, keyed by ISO
// date. Non-working days are omitted entirely. With a cellID the numbers
// cover that cell only; with an empty filter they are summed across every
// known cell.
func (r *Reporter) Summary(start, end time.Time, cellID string) map[string]DaySummary {
	out := make(map[string]DaySummary)
	last := model.Day(end)
	for d := model.Day(start); !d.After(last); d = d.AddDate(0, 0, 1) {
		if !r.resolver.IsWorkingDay(d) {
			continue
		}
		var s DaySummary
		if cellID != "" {
			s = r.cellDay(cellID, d)
		} else {
			for _, c := range r.cells {
				cs := r.cellDay(c.ID, d)
				s.Total += cs.Total
				s.Used += cs.Used
				s.Available += cs.Available
			}
		}
		out[model.DateKey(d)] = s
	}
	return out
}

func (r *Reporter) cellDay(cellID string, d time.Time) DaySummary {
	return DaySummary{
		Total:     r.resolver.EffectiveCapacity(cellID, d),
		Used:      r.ledger.UsedHours(cellID, d),
		Available: r.ledger.Available(cellID, d),
	}
}

// UtilizationStats returns the mean and peak used/total ratio across the
// summarized days. Days with zero total capacity are ignored; an empty
// summary yields zeros.
func UtilizationStats(summary map[string]DaySummary) (mean, peak float64) {
	ratios := make([]float64, 0, len(summary))
	for _, s := range summary {
		if s.Total <= 0 {
			continue
		}
		ratios = append(ratios, s.Used/s.Total)
	}
	if len(ratios) == 0 {
		return 0, 0
	}
	return stat.Mean(ratios, nil), floats.Max(ratios)
}
