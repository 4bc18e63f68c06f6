package schedule

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/model"
)

const yamlPlan = `start: "2025-06-02"
cells:
  - id: laser
    name: Laser
    capacity_hours_per_day: 8
    active: true
calendar:
  - date: "2025-06-03"
    day_type: holiday
jobs:
  - id: j1
    due_date: "2025-06-20"
    operations:
      - id: op2
        cell_id: laser
        estimated_time: 120
        sequence: 2
      - id: op1
        cell_id: laser
        estimated_time: 60
        sequence: 1
`

func TestDecodePlanYAML(t *testing.T) {
	plan, err := DecodePlan(strings.NewReader(yamlPlan), "yaml")
	require.NoError(t, err)

	in, err := plan.Materialize()
	require.NoError(t, err)

	require.Equal(t, date(2025, 6, 2), in.Start)
	require.Len(t, in.Cells, 1)
	require.Len(t, in.Overrides, 1)
	require.Equal(t, model.DayHoliday, in.Overrides[0].DayType)
	require.Len(t, in.Jobs, 1)
	require.NotNil(t, in.Jobs[0].DueDate)

	ops := in.OperationsByJob["j1"]
	require.Len(t, ops, 2)
	// Sorted by sequence and stamped with the job id.
	require.Equal(t, "op1", ops[0].ID)
	require.Equal(t, "j1", ops[0].JobID)
}

func TestDecodePlanJSON(t *testing.T) {
	data := `{
  "cells": [{"id": "press", "capacity_hours_per_day": 4}],
  "operations": [{"id": "op1", "cell_id": "press", "estimated_time": 90, "sequence": 1}]
}`
	plan, err := DecodePlan(strings.NewReader(data), "json")
	require.NoError(t, err)

	in, err := plan.Materialize()
	require.NoError(t, err)
	require.True(t, in.Start.IsZero())
	require.Len(t, in.Operations, 1)
	require.Empty(t, in.Jobs)
}

func TestLoadPlanFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlPlan), 0o644))

	plan, err := LoadPlan(path)
	require.NoError(t, err)
	require.Equal(t, "2025-06-02", plan.Start)
}

func TestLoadPlanUnsupportedFormat(t *testing.T) {
	if _, err := LoadPlan("plan.toml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestMaterializeRejectsBadInput(t *testing.T) {
	_, err := (Plan{Calendar: []PlanOverride{{Date: "junk", DayType: "holiday"}}}).Materialize()
	require.Error(t, err)

	_, err = (Plan{Calendar: []PlanOverride{{Date: "2025-06-02", DayType: "siesta"}}}).Materialize()
	require.Error(t, err)

	_, err = (Plan{Jobs: []PlanJob{{ID: "j1", DueDate: "tomorrow"}}}).Materialize()
	require.Error(t, err)
}
