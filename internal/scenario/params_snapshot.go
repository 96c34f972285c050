package scenario

import (
	"fmt"
	"strconv"

	"boatsim/internal/core"
	"boatsim/internal/steering"
)

// Parameters describes the run for the HUD and the figure caption.
func (r *Result) Parameters() core.ParameterSnapshot {
	s := r.Scenario
	groups := []core.ParameterGroup{
		{
			Name: "Field",
			Params: []core.Parameter{
				intParam("w", "Width", s.Width),
				intParam("h", "Height", s.Height),
				int64Param("seed", "Seed", s.Seed),
				floatParam("dispersion", "Dispersion", s.Dispersion),
				floatParam("max_speed", "Max step", s.MaxSpeed),
				floatParam("max_speed_actual", "Max speed (actual)", r.Field.MaxSpeed()),
				stringParam("normalization", "Normalization", s.Normalization),
			},
		},
		{
			Name: "Boat",
			Params: []core.Parameter{
				stringParam("start", "Start", point(s.Start.X, s.Start.Y)),
				stringParam("goal", "Goal", point(s.Goal.X, s.Goal.Y)),
				floatParam("drift", "Drift", s.Drift),
				floatParam("step_size", "Step size", s.StepSize),
				intParam("max_steps", "Max steps", s.MaxSteps),
				floatParam("bearing", "Initial heading", steering.Bearing(r.InitialHeading())),
			},
		},
	}

	outcomes := core.ParameterGroup{Name: "Outcomes"}
	for _, name := range r.Order {
		tr := r.Trajectories[name]
		p := stringParam(name, name, fmt.Sprintf("%s in %d", tr.Reason, tr.Steps()))
		p.Description = "final " + point(tr.Final()[0], tr.Final()[1])
		outcomes.Params = append(outcomes.Params, p)
	}
	groups = append(groups, outcomes)

	return core.ParameterSnapshot{Groups: groups}
}

func point(x, y float64) string {
	return fmt.Sprintf("(%.2f, %.2f)", x, y)
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
