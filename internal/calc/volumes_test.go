package calc

import (
	"math"
	"testing"

	"github.com/brewsmith/brewsmith/internal/domain"
)

func TestVolumesDefaultProfile(t *testing.T) {
	vols := Volumes(20, domain.DefaultEquipment(), 5, 0)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"packaged", vols.PackagedL, 20},
		{"into fermenter", vols.IntoFermenterL, 21},
		// 21.5 / 0.96 shrinkage + 1 kettle loss
		{"post boil", vols.PostBoilL, 23.3958},
		// + 3 L/hr over a 60 min boil
		{"pre boil", vols.PreBoilL, 26.3958},
		// 5 kg at 3 L/kg
		{"mash water", vols.MashWaterL, 15},
		{"sparge water", vols.SpargeWaterL, 11.3958},
		{"grain absorption", vols.GrainAbsorptionL, 5},
		// pre-boil + absorption + 2 L deadspace
		{"total water", vols.TotalWaterL, 33.3958},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 0.001 {
				t.Fatalf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestVolumesConservation(t *testing.T) {
	// Mash + sparge must equal pre-boil for any non-negative loss profile.
	profiles := []domain.EquipmentProfile{
		{},
		domain.DefaultEquipment(),
		{BoilTimeMin: 90, BoilOffRateLPerHr: 4.5, MashThicknessLPerKg: 2.5,
			GrainAbsorptionLKg: 1.04, MashTunDeadspaceL: 4, KettleLossL: 2,
			HopAbsorptionLKg: 7, ChillerLossL: 1, FermenterLossL: 2, CoolingShrinkagePct: 4},
		{MashThicknessLPerKg: 8}, // absurdly thin mash, strike capped at pre-boil
	}

	for _, eq := range profiles {
		vols := Volumes(19, eq, 6, 0.1)
		if diff := math.Abs(vols.MashWaterL + vols.SpargeWaterL - vols.PreBoilL); diff > 1e-9 {
			t.Fatalf("conservation broken for %+v: mash %v + sparge %v != preboil %v",
				eq, vols.MashWaterL, vols.SpargeWaterL, vols.PreBoilL)
		}
	}
}

func TestVolumesNeverNegative(t *testing.T) {
	// Losses exceeding the batch must clamp at zero, not go negative.
	vols := Volumes(0, domain.DefaultEquipment(), 0, 0)
	for name, v := range map[string]float64{
		"mash":      vols.MashWaterL,
		"sparge":    vols.SpargeWaterL,
		"preboil":   vols.PreBoilL,
		"postboil":  vols.PostBoilL,
		"fermenter": vols.IntoFermenterL,
		"packaged":  vols.PackagedL,
		"total":     vols.TotalWaterL,
	} {
		if v < 0 {
			t.Fatalf("%s volume is negative: %v", name, v)
		}
	}

	// Negative batch volume behaves like zero.
	vols = Volumes(-5, domain.EquipmentProfile{}, 0, 0)
	if vols.PackagedL != 0 || vols.PreBoilL != 0 {
		t.Fatalf("negative batch should clamp to zero, got %+v", vols)
	}
}

func TestVolumesZeroProfileIsPassthrough(t *testing.T) {
	// An all-zero equipment profile adds nothing back.
	vols := Volumes(20, domain.EquipmentProfile{}, 0, 0)
	if vols.PreBoilL != 20 || vols.PostBoilL != 20 || vols.TotalWaterL != 20 {
		t.Fatalf("zero-loss profile should be passthrough, got %+v", vols)
	}
}

func TestVolumesHopAbsorption(t *testing.T) {
	eq := domain.EquipmentProfile{HopAbsorptionLKg: 6}
	with := Volumes(20, eq, 0, 0.1)   // 100 g of kettle hops
	without := Volumes(20, eq, 0, 0)
	if diff := with.PostBoilL - without.PostBoilL; math.Abs(diff-0.6) > 1e-9 {
		t.Fatalf("expected 0.6 L hop absorption, got %v", diff)
	}
}
