package config

import (
	"fmt"

	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/model"
)

// SchedulerConfig defines planning parameters.
type SchedulerConfig struct {
	// WorkingDaysMask is the default weekly pattern in the legacy 7-bit
	// encoding (Mon=1 .. Sun=64).
	WorkingDaysMask int `json:"working_days_mask"`
	// StartDate is the ISO day scheduling starts from when the plan file
	// does not name one. Empty means today.
	StartDate string `json:"start_date"`
}

// SetDefaults applies the Monday-Friday pattern when no mask is configured.
func (c *SchedulerConfig) SetDefaults() {
	if c.WorkingDaysMask == 0 {
		c.WorkingDaysMask = model.DefaultWorkingDays().Mask()
	}
}

// Validate checks the mask range and the start date format.
func (c SchedulerConfig) Validate() error {
	if c.WorkingDaysMask < 1 || c.WorkingDaysMask > 127 {
		return fmt.Errorf("working_days_mask %d out of range 1..127", c.WorkingDaysMask)
	}
	if c.StartDate != "" {
		if _, err := model.ParseDateKey(c.StartDate); err != nil {
			return fmt.Errorf("start_date: %w", err)
		}
	}
	return nil
}

// WorkingDays decodes the configured mask.
func (c SchedulerConfig) WorkingDays() model.WorkingDays {
	return model.WorkingDaysFromMask(c.WorkingDaysMask)
}
