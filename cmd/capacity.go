package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/capacity"
	coremetrics "github.com/SheetMetalConnect/eryxon-flow-sub007/core/metrics"
	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/model"
)

var (
	capacityPlanPath string
	capacityFrom     string
	capacityTo       string
	capacityCell     string
)

var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Run the scheduler and summarize per-day capacity for a date range",
	RunE:  runCapacity,
}

func init() {
	capacityCmd.Flags().StringVarP(&capacityPlanPath, "plan", "p", "plan.yaml", "plan file with cells, calendar and work")
	capacityCmd.Flags().StringVar(&capacityFrom, "from", "", "range start (yyyy-mm-dd, defaults to the scheduling start)")
	capacityCmd.Flags().StringVar(&capacityTo, "to", "", "range end (yyyy-mm-dd, defaults to four weeks after the start)")
	capacityCmd.Flags().StringVar(&capacityCell, "cell", "", "restrict the summary to one cell")
	rootCmd.AddCommand(capacityCmd)
}

func runCapacity(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(capacityPlanPath, "capacity-command")
	if err != nil {
		return err
	}
	rt.run()

	from, to, err := capacityRange(rt.start)
	if err != nil {
		return err
	}

	reporter := capacity.NewReporter(rt.resolver, rt.ledger, rt.input.Cells)
	summary := reporter.Summary(from, to, capacityCell)
	mean, peak := capacity.UtilizationStats(summary)
	rt.log.Infof("capacity %s..%s: %d working days, utilization mean %.0f%% peak %.0f%%",
		model.DateKey(from), model.DateKey(to), len(summary), mean*100, peak*100)

	if rec, ok := rt.sink.(coremetrics.CellLoadRecorder); ok {
		recordCellLoads(rec, rt, from, to)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

func capacityRange(start time.Time) (time.Time, time.Time, error) {
	from := start
	if capacityFrom != "" {
		d, err := model.ParseDateKey(capacityFrom)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--from: %w", err)
		}
		from = d
	}
	to := from.AddDate(0, 0, 27)
	if capacityTo != "" {
		d, err := model.ParseDateKey(capacityTo)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--to: %w", err)
		}
		to = d
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to %s precedes --from %s", model.DateKey(to), model.DateKey(from))
	}
	return from, to, nil
}

func recordCellLoads(rec coremetrics.CellLoadRecorder, rt *runtime, from, to time.Time) {
	reporter := capacity.NewReporter(rt.resolver, rt.ledger, rt.input.Cells)
	for _, c := range rt.input.Cells {
		for key, s := range reporter.Summary(from, to, c.ID) {
			d, err := model.ParseDateKey(key)
			if err != nil {
				continue
			}
			if err := rec.RecordCellLoad(coremetrics.CellLoadEvent{
				RunID:     rt.sched.RunID(),
				CellID:    c.ID,
				Date:      d,
				Total:     s.Total,
				Used:      s.Used,
				Available: s.Available,
			}); err != nil {
				rt.log.Errorf("record cell load: %v", err)
			}
		}
	}
}
