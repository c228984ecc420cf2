package units

import "math"

// TinsethUtilization returns the hop utilization fraction for a boil of the
// given length at the given average wort gravity. Utilization saturates with
// time and drops as gravity rises above 1.050 (hop oils dissolve worse in
// denser wort). Non-positive boil times yield zero.
func TinsethUtilization(avgSG, boilMin float64) float64 {
	if boilMin <= 0 {
		return 0
	}
	bigness := 1.65 * math.Pow(0.000125, avgSG-1)
	timeFactor := (1 - math.Exp(-0.04*boilMin)) / 4.15
	return bigness * timeFactor
}

// IBU returns the bitterness contribution of a single hop addition:
// alpha-acid concentration in mg/L times the utilization fraction.
// Zero batch volume yields zero, not a division error.
func IBU(alphaAcidPct, weightG, utilization, batchL float64) float64 {
	if batchL <= 0 || weightG <= 0 || alphaAcidPct <= 0 {
		return 0
	}
	mgPerL := alphaAcidPct / 100 * weightG * 1000 / batchL
	return mgPerL * utilization
}

// MoreySRM maps malt color units (lb x lovibond / gal) to SRM with Morey's
// power-law fit. A linear sum overstates dark beers; the exponent and scale
// here are the accepted approximation and match the BJCP SRM ranges.
func MoreySRM(mcu float64) float64 {
	if mcu <= 0 {
		return 0
	}
	return 1.4922 * math.Pow(mcu, 0.6859)
}

// ABV estimates alcohol by volume (percent) from original and final gravity
// with the standard 131.25 multiplier. Never negative.
func ABV(og, fg float64) float64 {
	abv := (og - fg) * 131.25
	if abv < 0 {
		return 0
	}
	return abv
}

// Plato converts specific gravity to degrees Plato (cubic fit).
func Plato(sg float64) float64 {
	return -616.868 + 1111.14*sg - 630.272*sg*sg + 135.997*sg*sg*sg
}

// RealExtract estimates the real extract (degrees Plato) remaining in beer
// from the original and final gravity, per the standard Balling correction.
func RealExtract(og, fg float64) float64 {
	re := 0.1808*Plato(og) + 0.8192*Plato(fg)
	if re < 0 {
		return 0
	}
	return re
}

// Nutrition is the per-serving calorie/carbohydrate estimate.
type Nutrition struct {
	Calories float64 // kcal per 12 oz
	CarbsG   float64 // grams per 12 oz
}

// Nutrition12oz estimates calories and carbohydrates per 12 oz serving from
// OG and FG via the published real-extract and alcohol approximations.
// Inverted gravities (fg > og) degrade to the zero estimate.
func Nutrition12oz(og, fg float64) Nutrition {
	if og <= fg || og <= 1 {
		return Nutrition{}
	}
	calAlcohol := 1881.22 * fg * (og - fg) / (1.775 - og)
	calCarbs := 3550 * fg * (0.1808*og + 0.8192*fg - 1.0004)
	if calAlcohol < 0 {
		calAlcohol = 0
	}
	if calCarbs < 0 {
		calCarbs = 0
	}
	// 4 kcal per gram of carbohydrate.
	return Nutrition{
		Calories: calAlcohol + calCarbs,
		CarbsG:   calCarbs / 4.0,
	}
}
