package mash

import (
	"math"
	"testing"

	"github.com/brewsmith/brewsmith/internal/domain"
)

func almostEqual(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("got %v, want %v (tolerance %v)", got, want, tol)
	}
}

func TestStrikeTemp(t *testing.T) {
	// 66 C target, 3 L/kg, grain at 20 C: water must be hotter than the
	// target to make up for the cold grain.
	got := StrikeTemp(66, 20, 3)
	if got <= 66 {
		t.Fatalf("strike temp %v should exceed target 66", got)
	}
	// 66 + (0.41/3)*46
	almostEqual(t, got, 72.29, 0.01)
}

func TestStrikeTempMonotonicInGrainTemp(t *testing.T) {
	prev := 200.0
	for grain := 5.0; grain <= 66; grain += 5 {
		got := StrikeTemp(66, grain, 3)
		if got > prev {
			t.Fatalf("strike temp should fall as grain warms: grain=%v got=%v prev=%v", grain, got, prev)
		}
		prev = got
	}
	// Grain already at target needs water at the target.
	almostEqual(t, StrikeTemp(66, 66, 3), 66, 1e-9)
}

func TestStrikeTempGuards(t *testing.T) {
	// No thickness: return the target.
	almostEqual(t, StrikeTemp(66, 20, 0), 66, 1e-9)
	// Thick mash with cold grain caps at boiling.
	if got := StrikeTemp(78, 4, 0.5); got > 100 {
		t.Fatalf("strike temp must clamp at 100, got %v", got)
	}
}

func TestInfusionTemp(t *testing.T) {
	// Raising 15 L of mash with 5 kg of grain from 52 to 66 C using 5 L:
	// the water must be much hotter than the target.
	got := InfusionTemp(52, 66, 15, 5, 5)
	if got <= 66 {
		t.Fatalf("infusion temp %v should exceed target", got)
	}
	// 66 + (15 + 0.41*5) * 14 / 5 = 113.7, clamped to boiling.
	almostEqual(t, got, 100, 1e-9)

	// A generous infusion volume brings the required temperature down.
	relaxed := InfusionTemp(60, 66, 15, 5, 8)
	almostEqual(t, relaxed, 78.79, 0.05)
}

func TestInfusionTempZeroVolume(t *testing.T) {
	if got := InfusionTemp(52, 66, 15, 5, 0); got != 100 {
		t.Fatalf("zero infusion volume should clamp to boiling, got %v", got)
	}
}

func TestResolveFold(t *testing.T) {
	steps := []domain.MashStep{
		{Name: "Protein rest", Type: domain.MashInfusion, TargetTempC: 52, DurationMin: 15, InfusionVolumeL: 15},
		{Name: "Sacch", Type: domain.MashInfusion, TargetTempC: 66, DurationMin: 45, InfusionVolumeL: 8},
		{Name: "Mash-out", Type: domain.MashTemperature, TargetTempC: 76, DurationMin: 10},
	}

	s := Resolve(steps, 5, 3, 20)
	if len(s.Steps) != 3 {
		t.Fatalf("expected 3 resolved steps, got %d", len(s.Steps))
	}

	// Step 1 is the strike.
	almostEqual(t, s.Steps[0].InfusionTempC, StrikeTemp(52, 20, 3), 1e-9)
	almostEqual(t, s.Steps[0].MashVolumeL, 15, 1e-9)

	// Step 2 is a true infusion computed from the *previous* step's state,
	// not independently: 52 C mash, 15 L, 5 kg grain, 8 L addition.
	almostEqual(t, s.Steps[1].InfusionTempC, InfusionTemp(52, 66, 15, 5, 8), 1e-9)
	almostEqual(t, s.Steps[1].MashVolumeL, 23, 1e-9)

	// Temperature step adds no water.
	almostEqual(t, s.Steps[2].MashVolumeL, 23, 1e-9)
	if s.Steps[2].InfusionTempC != 0 {
		t.Fatalf("temperature step should not compute an infusion temp, got %v", s.Steps[2].InfusionTempC)
	}
}

func TestResolveStrikeVolumeDefault(t *testing.T) {
	steps := []domain.MashStep{
		{Name: "Sacch", Type: domain.MashInfusion, TargetTempC: 66, DurationMin: 60},
	}
	s := Resolve(steps, 5, 3, 20)
	// No explicit volume: grain weight times thickness.
	almostEqual(t, s.Steps[0].InfusionVolumeL, 15, 1e-9)
	almostEqual(t, s.Steps[0].MashVolumeL, 15, 1e-9)
}

func TestScheduleAggregates(t *testing.T) {
	s := Resolve(StepMash(5, domain.DefaultEquipment()), 5, 3, 20)

	almostEqual(t, s.TotalTimeMin(), 75, 1e-9)
	// 15 strike + 3.75 + 3.75 infusions.
	almostEqual(t, s.TotalInfusionL(), 22.5, 1e-9)
	almostEqual(t, s.VolumeAtStep(0), 15, 1e-9)
	almostEqual(t, s.VolumeAtStep(2), 22.5, 1e-9)
	if s.VolumeAtStep(99) != 0 {
		t.Fatal("out-of-range step index should yield zero volume")
	}
}

func TestPresets(t *testing.T) {
	eq := domain.DefaultEquipment()

	single := SingleInfusion(5, eq)
	if len(single) != 1 || single[0].Type != domain.MashInfusion {
		t.Fatalf("unexpected single infusion preset: %+v", single)
	}
	almostEqual(t, single[0].InfusionVolumeL, 15, 1e-9)

	multi := StepMash(5, eq)
	if len(multi) != 3 {
		t.Fatalf("expected 3 steps in step mash, got %d", len(multi))
	}
	// Rests must be ordered by rising temperature.
	for i := 1; i < len(multi); i++ {
		if multi[i].TargetTempC <= multi[i-1].TargetTempC {
			t.Fatalf("step mash temperatures must rise: %+v", multi)
		}
	}
	// Presets obey the same strike formula as manual schedules.
	s := Resolve(multi, 5, 3, 20)
	almostEqual(t, s.Steps[0].InfusionTempC, StrikeTemp(52, 20, 3), 1e-9)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		step     domain.MashStep
		problems int
	}{
		{"valid infusion", domain.MashStep{Type: domain.MashInfusion, TargetTempC: 66, DurationMin: 60, InfusionVolumeL: 15}, 0},
		{"valid temperature step", domain.MashStep{Type: domain.MashTemperature, TargetTempC: 76, DurationMin: 10}, 0},
		{"zero duration", domain.MashStep{Type: domain.MashTemperature, TargetTempC: 66, DurationMin: 0}, 1},
		{"temp too high", domain.MashStep{Type: domain.MashTemperature, TargetTempC: 104, DurationMin: 10}, 1},
		{"infusion without volume", domain.MashStep{Type: domain.MashInfusion, TargetTempC: 66, DurationMin: 60}, 1},
		{"unknown type", domain.MashStep{Type: "steam", TargetTempC: 66, DurationMin: 10}, 1},
		{"all wrong", domain.MashStep{Type: domain.MashInfusion, TargetTempC: -4, DurationMin: -1}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.step)
			if len(got) != tt.problems {
				t.Fatalf("expected %d problems, got %d: %v", tt.problems, len(got), got)
			}
		})
	}
}
