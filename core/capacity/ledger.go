// Package capacity tracks committed hours per cell per day within one
// scheduling run and summarizes the result for reporting.
package capacity

import (
	"time"

	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/calendar"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/model"
)

type ledgerKey struct {
	cellID string
	day    string
}

// Ledger is the running record of hours committed per (cell, day). Each
// scheduling run owns an isolated instance; hours are only ever added, never
// released. The ledger is not safe for concurrent use.
type Ledger struct {
	resolver *calendar.Resolver
	used     map[ledgerKey]float64
}

// NewLedger creates an empty ledger bound to the run's calendar resolver.
func NewLedger(resolver *calendar.Resolver) *Ledger {
	return &Ledger{resolver: resolver, used: make(map[ledgerKey]float64)}
}

// UsedHours returns the hours committed so far, zero for unseen pairs.
func (l *Ledger) UsedHours(cellID string, date time.Time) float64 {
	return l.used[ledgerKey{cellID: cellID, day: model.DateKey(date)}]
}

// Commit adds hours to the running total for the pair.
func (l *Ledger) Commit(cellID string, date time.Time, hours float64) {
	l.used[ledgerKey{cellID: cellID, day: model.DateKey(date)}] += hours
}

// Available returns the capacity still open on date, floored at zero.
func (l *Ledger) Available(cellID string, date time.Time) float64 {
	avail := l.resolver.EffectiveCapacity(cellID, date) - l.UsedHours(cellID, date)
	if avail < 0 {
		return 0
	}
	return avail
}
