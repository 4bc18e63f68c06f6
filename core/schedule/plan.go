package schedule

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/SheetMetalConnect/eryxon-flow-sub007/core/model"
)

// Plan is the scheduler input document: cells, calendar overrides and work
// to place, either as jobs or as a flat operation batch. Dates are exchanged
// as ISO calendar days.
type Plan struct {
	Start      string            `json:"start"`
	Cells      []model.Cell      `json:"cells"`
	Calendar   []PlanOverride    `json:"calendar"`
	Jobs       []PlanJob         `json:"jobs"`
	Operations []model.Operation `json:"operations"`
}

// PlanOverride is the wire form of a calendar override.
type PlanOverride struct {
	Date               string  `json:"date"`
	DayType            string  `json:"day_type"`
	CapacityMultiplier float64 `json:"capacity_multiplier"`
}

// PlanJob is the wire form of a job with its operations inline.
type PlanJob struct {
	ID         string            `json:"id"`
	DueDate    string            `json:"due_date"`
	Operations []model.Operation `json:"operations"`
}

// LoadPlan loads a Plan from a JSON or YAML file.
func LoadPlan(path string) (Plan, error) {
	parser, err := planParser(strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return Plan{}, err
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return Plan{}, err
	}
	return unmarshalPlan(k)
}

// DecodePlan reads from r to decode a Plan in the given format ("yaml" or
// "json").
func DecodePlan(r io.Reader, format string) (Plan, error) {
	parser, err := planParser("." + strings.TrimPrefix(strings.ToLower(format), "."))
	if err != nil {
		return Plan{}, err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return Plan{}, err
	}
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(b), parser); err != nil {
		return Plan{}, err
	}
	return unmarshalPlan(k)
}

func planParser(ext string) (koanf.Parser, error) {
	switch ext {
	case ".yaml", ".yml":
		return kyaml.Parser(), nil
	case ".json":
		return kjson.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported plan format: %s", ext)
	}
}

func unmarshalPlan(k *koanf.Koanf) (Plan, error) {
	var p Plan
	if err := k.UnmarshalWithConf("", &p, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// PlanInput holds the materialized domain records of a plan.
type PlanInput struct {
	// Start is zero when the plan leaves the start date to the caller.
	Start           time.Time
	Cells           []model.Cell
	Overrides       []model.CalendarOverride
	Jobs            []model.Job
	OperationsByJob map[string][]model.Operation
	Operations      []model.Operation
}

// Materialize converts the wire document into domain records, parsing dates
// and ordering each job's operations by sequence number.
func (p Plan) Materialize() (PlanInput, error) {
	in := PlanInput{
		Cells:           p.Cells,
		Operations:      p.Operations,
		OperationsByJob: make(map[string][]model.Operation, len(p.Jobs)),
	}

	if p.Start != "" {
		d, err := model.ParseDateKey(p.Start)
		if err != nil {
			return in, fmt.Errorf("plan start %q: %w", p.Start, err)
		}
		in.Start = d
	}

	for _, ov := range p.Calendar {
		d, err := model.ParseDateKey(ov.Date)
		if err != nil {
			return in, fmt.Errorf("calendar override %q: %w", ov.Date, err)
		}
		dayType := model.DayType(ov.DayType)
		if !dayType.Valid() {
			return in, fmt.Errorf("calendar override %s: unknown day type %q", ov.Date, ov.DayType)
		}
		in.Overrides = append(in.Overrides, model.CalendarOverride{
			Date:               d,
			DayType:            dayType,
			CapacityMultiplier: ov.CapacityMultiplier,
		})
	}

	for _, pj := range p.Jobs {
		job := model.Job{ID: pj.ID}
		if pj.DueDate != "" {
			d, err := model.ParseDateKey(pj.DueDate)
			if err != nil {
				return in, fmt.Errorf("job %s due date %q: %w", pj.ID, pj.DueDate, err)
			}
			job.DueDate = &d
		}
		ops := make([]model.Operation, len(pj.Operations))
		copy(ops, pj.Operations)
		for i := range ops {
			ops[i].JobID = pj.ID
		}
		sort.SliceStable(ops, func(i, j int) bool { return ops[i].Sequence < ops[j].Sequence })
		in.Jobs = append(in.Jobs, job)
		in.OperationsByJob[pj.ID] = ops
	}

	return in, nil
}
