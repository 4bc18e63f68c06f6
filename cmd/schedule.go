package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var schedulePlanPath string

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule a plan file's operations onto calendar days",
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVarP(&schedulePlanPath, "plan", "p", "plan.yaml", "plan file with cells, calendar and work")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(schedulePlanPath, "schedule-command")
	if err != nil {
		return err
	}
	out := rt.run()

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
