// Package water derives the mineral profile of brewing water from salt
// additions and splits salt amounts across the mash and sparge volumes.
package water

import "github.com/brewsmith/brewsmith/internal/domain"

// Ion contribution factors in ppm per gram of salt per liter of water.
// Derived from each salt's molar masses; fixed constants, never re-derived.
const (
	// Gypsum, CaSO4·2H2O
	gypsumCa  = 232.8
	gypsumSO4 = 557.7
	// Calcium chloride, CaCl2·2H2O
	caClCa = 272.6
	caClCl = 482.3
	// Epsom salt, MgSO4·7H2O
	epsomMg  = 98.6
	epsomSO4 = 389.6
	// Table salt, NaCl
	tableNa = 393.4
	tableCl = 606.6
	// Baking soda, NaHCO3
	sodaNa   = 273.7
	sodaHCO3 = 726.3
)

// FinalProfile returns the ion profile after dissolving the given salts in
// totalL liters of the source water. With no water to dissolve into
// (totalL <= 0) the source profile is returned unchanged, never NaN.
func FinalProfile(source domain.WaterProfile, salts domain.SaltAdditions, totalL float64) domain.WaterProfile {
	if totalL <= 0 {
		return source
	}

	out := source
	add := func(ppm *float64, grams, factor float64) {
		if grams > 0 {
			*ppm += grams * factor / totalL
		}
	}

	add(&out.CalciumPPM, salts.GypsumG, gypsumCa)
	add(&out.SulfatePPM, salts.GypsumG, gypsumSO4)
	add(&out.CalciumPPM, salts.CalciumChlorideG, caClCa)
	add(&out.ChloridePPM, salts.CalciumChlorideG, caClCl)
	add(&out.MagnesiumPPM, salts.EpsomSaltG, epsomMg)
	add(&out.SulfatePPM, salts.EpsomSaltG, epsomSO4)
	add(&out.SodiumPPM, salts.TableSaltG, tableNa)
	add(&out.ChloridePPM, salts.TableSaltG, tableCl)
	add(&out.SodiumPPM, salts.BakingSodaG, sodaNa)
	add(&out.BicarbonatePPM, salts.BakingSodaG, sodaHCO3)

	return out
}

// Split is a salt schedule apportioned between mash and sparge water.
type Split struct {
	Mash   domain.SaltAdditions
	Sparge domain.SaltAdditions
}

// SplitSalts apportions each salt between mash and sparge water in direct
// proportion to each stage's share of the total volume, keeping the ion
// concentration uniform across both stages. With no water at all the split
// is empty: nothing dissolves anywhere.
func SplitSalts(salts domain.SaltAdditions, mashL, spargeL float64) Split {
	if mashL < 0 {
		mashL = 0
	}
	if spargeL < 0 {
		spargeL = 0
	}
	total := mashL + spargeL
	if total <= 0 {
		return Split{}
	}

	share := mashL / total
	mash := domain.SaltAdditions{
		GypsumG:          salts.GypsumG * share,
		CalciumChlorideG: salts.CalciumChlorideG * share,
		EpsomSaltG:       salts.EpsomSaltG * share,
		TableSaltG:       salts.TableSaltG * share,
		BakingSodaG:      salts.BakingSodaG * share,
	}
	sparge := domain.SaltAdditions{
		GypsumG:          salts.GypsumG - mash.GypsumG,
		CalciumChlorideG: salts.CalciumChlorideG - mash.CalciumChlorideG,
		EpsomSaltG:       salts.EpsomSaltG - mash.EpsomSaltG,
		TableSaltG:       salts.TableSaltG - mash.TableSaltG,
		BakingSodaG:      salts.BakingSodaG - mash.BakingSodaG,
	}
	return Split{Mash: mash, Sparge: sparge}
}
