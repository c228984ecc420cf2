// Package calc implements the recipe calculation service: volume accounting
// through the brew process and the aggregate engine that turns a recipe into
// its derived brewing numbers. Everything here is pure; callers recompute on
// every edit and decide for themselves whether to cache.
package calc

import (
	"github.com/brewsmith/brewsmith/internal/domain"
)

// Volumes works backward from the target packaged volume, adding each known
// loss back in reverse process order: fermenter loss, chiller loss, cooling
// shrinkage, boil-off, kettle loss and hop absorption. The mash/sparge split
// is taken from mash thickness, with the strike volume capped at the pre-boil
// requirement so that mash water + sparge water always equals the pre-boil
// volume exactly. Grain absorption and tun deadspace are extra water the
// grain bed keeps, so they appear in the total, not in the kettle chain.
// Every checkpoint is floored at zero; missing equipment values mean
// "no effect".
func Volumes(batchL float64, eq domain.EquipmentProfile, grainKg, hopKg float64) domain.Volumes {
	packaged := floor0(batchL)
	intoFermenter := packaged + floor0(eq.FermenterLossL)
	afterChill := intoFermenter + floor0(eq.ChillerLossL)

	shrink := eq.CoolingShrinkagePct
	if shrink < 0 {
		shrink = 0
	}
	if shrink >= 100 {
		shrink = 0 // nonsense input, treat as no shrinkage
	}
	postBoil := afterChill/(1-shrink/100) + floor0(eq.KettleLossL) + floor0(hopKg)*floor0(eq.HopAbsorptionLKg)

	preBoil := postBoil + floor0(eq.BoilOffRateLPerHr)*floor0(eq.BoilTimeMin)/60

	mashWater := floor0(grainKg) * floor0(eq.MashThicknessLPerKg)
	if mashWater > preBoil {
		mashWater = preBoil
	}
	sparge := floor0(preBoil - mashWater)

	grainAbsorption := floor0(grainKg) * floor0(eq.GrainAbsorptionLKg)
	totalWater := preBoil + grainAbsorption + floor0(eq.MashTunDeadspaceL)

	return domain.Volumes{
		MashWaterL:       mashWater,
		SpargeWaterL:     sparge,
		PreBoilL:         floor0(preBoil),
		PostBoilL:        floor0(postBoil),
		IntoFermenterL:   intoFermenter,
		PackagedL:        packaged,
		GrainAbsorptionL: grainAbsorption,
		TotalWaterL:      floor0(totalWater),
	}
}

func floor0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
