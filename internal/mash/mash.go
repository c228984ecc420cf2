// Package mash computes strike and infusion temperatures and the running
// state of a mash schedule. Steps form an ordered sequence: each infusion
// after the first is solved against the temperature and volume the mash
// already has, so resolving a schedule is a left-to-right fold, never a
// per-step computation.
package mash

import (
	"fmt"

	"github.com/brewsmith/brewsmith/internal/domain"
)

// GrainHeatRatio is the specific heat of crushed malt relative to water.
// Published values sit between 0.38 and 0.45; 0.41 is the conventional
// middle and is held constant everywhere, never re-derived.
const GrainHeatRatio = 0.41

// DefaultGrainTempC is the assumed temperature of room-stored grain.
const DefaultGrainTempC = 20

// StrikeTemp returns the water temperature needed so that mixing strike
// water at thickness L/kg with grain at grainTempC settles at targetC.
// Non-positive thickness means no meaningful water mass: the target itself
// is returned. The result is clamped to [0, 100]; water can't be hotter
// than boiling.
func StrikeTemp(targetC, grainTempC, thicknessLKg float64) float64 {
	if thicknessLKg <= 0 {
		return clampTemp(targetC)
	}
	tw := targetC + (GrainHeatRatio/thicknessLKg)*(targetC-grainTempC)
	return clampTemp(tw)
}

// InfusionTemp returns the temperature the added water must have so that
// infusing infusionL liters into a mash currently at currentC (holding
// mashVolumeL liters of water and grainKg of grain) lands on targetC.
// It solves the same mixing equation as StrikeTemp, but for the added
// water's temperature. Non-positive infusion volume clamps to boiling:
// there is no finite volume that gets there.
func InfusionTemp(currentC, targetC, mashVolumeL, grainKg, infusionL float64) float64 {
	if infusionL <= 0 {
		return 100
	}
	thermalMass := mashVolumeL + GrainHeatRatio*grainKg
	tw := targetC + thermalMass*(targetC-currentC)/infusionL
	return clampTemp(tw)
}

func clampTemp(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 100 {
		return 100
	}
	return t
}

// Schedule is a resolved mash schedule: the input steps with computed
// infusion temperatures plus the running water volume after each step.
type Schedule struct {
	Steps []ResolvedStep
}

// ResolvedStep is one mash step with its computed state.
type ResolvedStep struct {
	domain.MashStep
	// MashVolumeL is the water in the tun after this step.
	MashVolumeL float64
}

// Resolve walks the ordered step list and fills in strike/infusion
// temperatures. The first infusion step is the strike: its volume defaults
// to grain weight times mash thickness when the step doesn't carry one.
// Later infusion steps use their own infusion volume against the current
// mash temperature and volume. Temperature and decoction steps change the
// mash temperature without adding water.
func Resolve(steps []domain.MashStep, grainKg, thicknessLKg, grainTempC float64) Schedule {
	out := Schedule{Steps: make([]ResolvedStep, 0, len(steps))}

	var (
		currentTemp = grainTempC
		volume      float64
		struck      bool
	)

	for _, step := range steps {
		rs := ResolvedStep{MashStep: step}

		if step.Type == domain.MashInfusion {
			if !struck {
				vol := step.InfusionVolumeL
				if vol <= 0 {
					vol = grainKg * thicknessLKg
				}
				rs.InfusionVolumeL = vol
				rs.InfusionTempC = StrikeTemp(step.TargetTempC, grainTempC, thicknessLKg)
				volume += vol
				struck = true
			} else {
				rs.InfusionTempC = InfusionTemp(currentTemp, step.TargetTempC, volume, grainKg, step.InfusionVolumeL)
				if step.InfusionVolumeL > 0 {
					volume += step.InfusionVolumeL
				}
			}
		}

		currentTemp = step.TargetTempC
		rs.MashVolumeL = volume
		out.Steps = append(out.Steps, rs)
	}

	return out
}

// TotalTimeMin sums the durations of all steps.
func (s Schedule) TotalTimeMin() float64 {
	var total float64
	for _, st := range s.Steps {
		if st.DurationMin > 0 {
			total += st.DurationMin
		}
	}
	return total
}

// TotalInfusionL sums the water added across all infusion steps.
func (s Schedule) TotalInfusionL() float64 {
	var total float64
	for _, st := range s.Steps {
		if st.Type == domain.MashInfusion && st.InfusionVolumeL > 0 {
			total += st.InfusionVolumeL
		}
	}
	return total
}

// VolumeAtStep returns the mash water volume after the step at idx,
// or zero when idx is out of range.
func (s Schedule) VolumeAtStep(idx int) float64 {
	if idx < 0 || idx >= len(s.Steps) {
		return 0
	}
	return s.Steps[idx].MashVolumeL
}

// SingleInfusion generates the simplest schedule: one strike to a single
// saccharification rest.
func SingleInfusion(grainKg float64, eq domain.EquipmentProfile) []domain.MashStep {
	return []domain.MashStep{
		{
			Name:            "Saccharification",
			Type:            domain.MashInfusion,
			TargetTempC:     66,
			DurationMin:     60,
			InfusionVolumeL: grainKg * eq.MashThicknessLPerKg,
		},
	}
}

// StepMash generates a traditional multi-step schedule: protein rest,
// saccharification, mash-out. The strike lands on the protein rest; the
// later rests are reached by infusion, with volumes sized to roughly a
// quarter of the strike volume each.
func StepMash(grainKg float64, eq domain.EquipmentProfile) []domain.MashStep {
	strike := grainKg * eq.MashThicknessLPerKg
	infusion := strike / 4
	return []domain.MashStep{
		{Name: "Protein rest", Type: domain.MashInfusion, TargetTempC: 52, DurationMin: 15, InfusionVolumeL: strike},
		{Name: "Saccharification", Type: domain.MashInfusion, TargetTempC: 66, DurationMin: 45, InfusionVolumeL: infusion},
		{Name: "Mash-out", Type: domain.MashInfusion, TargetTempC: 76, DurationMin: 15, InfusionVolumeL: infusion},
	}
}

// Validate reports the problems with a mash step as human-readable
// messages. An empty slice means the step is acceptable. Invalid steps are
// never rejected by the calculators; blocking them is the editor's call.
func Validate(step domain.MashStep) []string {
	var problems []string

	if step.DurationMin <= 0 {
		problems = append(problems, fmt.Sprintf("duration must be positive, got %g min", step.DurationMin))
	}
	if step.TargetTempC < 0 || step.TargetTempC > 100 {
		problems = append(problems, fmt.Sprintf("target temperature %g C is outside the brewing range (0-100 C)", step.TargetTempC))
	}
	switch step.Type {
	case domain.MashInfusion:
		if step.InfusionVolumeL <= 0 {
			problems = append(problems, "infusion steps need a positive infusion volume")
		}
	case domain.MashTemperature, domain.MashDecoction:
		// No extra shape requirements.
	default:
		problems = append(problems, fmt.Sprintf("unknown step type %q", step.Type))
	}

	return problems
}
