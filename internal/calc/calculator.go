package calc

import (
	"github.com/brewsmith/brewsmith/internal/domain"
	"github.com/brewsmith/brewsmith/internal/units"
)

// Option configures the calculator.
type Option func(*Calculator)

// WithFirstWortFactor sets the utilization multiplier for first-wort hops
// relative to a full-boil addition.
func WithFirstWortFactor(f float64) Option {
	return func(c *Calculator) { c.firstWortFactor = f }
}

// WithMashHopFactor sets the utilization multiplier for mash hops relative
// to a full-boil addition.
func WithMashHopFactor(f float64) Option {
	return func(c *Calculator) { c.mashHopFactor = f }
}

// WithWhirlpoolCurve sets the linear temperature window for whirlpool
// utilization: zero at or below floorC, full at or above ceilC.
func WithWhirlpoolCurve(floorC, ceilC float64) Option {
	return func(c *Calculator) {
		if ceilC > floorC {
			c.whirlpoolFloorC = floorC
			c.whirlpoolCeilC = ceilC
		}
	}
}

// Calculator is the recipe calculation service. It holds only tuning
// constants, no state: Calculate is a pure function of its input and two
// calls on the same recipe return identical results.
//
// The non-boil utilization factors are deliberately configuration. The
// adjustment curves for first-wort and whirlpool additions vary between
// published sources, so they are tunable rather than baked-in constants.
type Calculator struct {
	firstWortFactor float64
	mashHopFactor   float64
	whirlpoolFloorC float64
	whirlpoolCeilC  float64
}

// New creates a calculator with the default utilization policies:
// first wort 1.10x full boil, mash hops 0.20x full boil, whirlpool scaled
// linearly from no isomerization at 50 C to full at 100 C.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		firstWortFactor: 1.10,
		mashHopFactor:   0.20,
		whirlpoolFloorC: 50,
		whirlpoolCeilC:  100,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate derives the full set of brewing numbers from a recipe.
//
// The order matters only in that later metrics consume earlier ones:
// volumes first, then OG from gravity points at the post-boil volume,
// FG from blended yeast attenuation, then ABV, IBU, SRM and nutrition.
// Zero fermentables degrade to OG 1.000 with every dependent metric at
// its documented default; nothing here returns an error.
func (c *Calculator) Calculate(r *domain.Recipe) domain.Calculations {
	vols := Volumes(r.BatchVolumeL, r.Equipment, r.TotalGrainKg(), r.TotalHopKg())

	og := c.originalGravity(r, vols)
	atten, hasYeast := blendedAttenuation(r.Yeasts)
	fg := og - (og-1)*atten/100
	abv := units.ABV(og, fg)

	hopIBUs, totalIBU := c.bitterness(r, og)

	srm := c.color(r)
	nut := units.Nutrition12oz(og, fg)

	return domain.Calculations{
		OG:       og,
		FG:       fg,
		ABVPct:   abv,
		IBU:      totalIBU,
		SRM:      srm,
		Calories: nut.Calories,
		CarbsG:   nut.CarbsG,
		HopIBUs:  hopIBUs,
		Volumes:  vols,
		HasYeast: hasYeast,
	}
}

// ActualABV computes alcohol from two measured gravities, independent of any
// recipe. Exposed for session tracking against the predicted value.
func (c *Calculator) ActualABV(measuredOG, measuredFG float64) float64 {
	return units.ABV(measuredOG, measuredFG)
}

// originalGravity sums each fermentable's gravity points and converts them
// to a specific gravity at the post-boil volume: extract concentration is
// fixed at end of boil, and the packaged beer keeps that concentration.
//
// Efficiency policy: a fermentable's own efficiency percentage, when set,
// overrides the recipe's mash efficiency for that fermentable. Applying
// both would discount the extract twice.
func (c *Calculator) originalGravity(r *domain.Recipe, vols domain.Volumes) float64 {
	gal := units.LToGal(vols.PostBoilL)
	if gal <= 0 {
		return 1.0
	}

	var points float64
	for _, f := range r.Fermentables {
		if f.WeightKg <= 0 || f.PPG <= 0 {
			continue
		}
		eff := f.EfficiencyPct
		if eff <= 0 {
			eff = r.Equipment.MashEfficiencyPct
		}
		if eff <= 0 {
			eff = 100
		}
		points += units.KgToLb(f.WeightKg) * f.PPG * eff / 100
	}

	return units.SGFromPoints(points / gal)
}

// bitterness computes each hop addition's IBU share and the total.
// Average wort gravity is approximated as the final OG for all additions;
// a per-addition gravity would need a boil timeline the recipe doesn't carry.
func (c *Calculator) bitterness(r *domain.Recipe, og float64) ([]domain.HopBitterness, float64) {
	if len(r.Hops) == 0 {
		return nil, 0
	}

	boilMin := r.Equipment.BoilTimeMin
	out := make([]domain.HopBitterness, 0, len(r.Hops))
	var total float64

	for _, h := range r.Hops {
		util := c.utilization(h, og, boilMin)
		ibu := units.IBU(h.AlphaAcidPct, h.WeightG, util, r.BatchVolumeL)
		out = append(out, domain.HopBitterness{
			Name:        h.Name,
			Use:         h.Use,
			IBU:         ibu,
			Utilization: util,
		})
		total += ibu
	}
	return out, total
}

// utilization picks the boil length and adjustment factor for one addition
// based on its usage type.
func (c *Calculator) utilization(h domain.Hop, og, recipeBoilMin float64) float64 {
	switch h.Use {
	case domain.HopBoil:
		t := h.BoilMin
		if t > recipeBoilMin {
			t = recipeBoilMin
		}
		return units.TinsethUtilization(og, t)
	case domain.HopFirstWort:
		// In the kettle for the whole boil, slightly above full-boil
		// utilization.
		return units.TinsethUtilization(og, recipeBoilMin) * c.firstWortFactor
	case domain.HopMash:
		return units.TinsethUtilization(og, recipeBoilMin) * c.mashHopFactor
	case domain.HopWhirlpool:
		return units.TinsethUtilization(og, h.WhirlpoolMin) * c.whirlpoolFactor(h.WhirlpoolTempC)
	case domain.HopDry:
		return 0
	default:
		return 0
	}
}

// whirlpoolFactor scales utilization linearly across the configured
// temperature window, clamped to [0, 1].
func (c *Calculator) whirlpoolFactor(tempC float64) float64 {
	f := (tempC - c.whirlpoolFloorC) / (c.whirlpoolCeilC - c.whirlpoolFloorC)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// color sums malt color units against the batch volume and maps them
// through Morey's curve.
func (c *Calculator) color(r *domain.Recipe) float64 {
	gal := units.LToGal(r.BatchVolumeL)
	if gal <= 0 {
		return 0
	}
	var mcu float64
	for _, f := range r.Fermentables {
		if f.WeightKg <= 0 || f.Lovibond <= 0 {
			continue
		}
		mcu += units.KgToLb(f.WeightKg) * f.Lovibond
	}
	return units.MoreySRM(mcu / gal)
}

// blendedAttenuation averages attenuation across all yeasts. With no yeast
// there is no fermentation to predict: attenuation is zero, FG equals OG,
// and the caller flags the result as "no data" rather than a measurement.
func blendedAttenuation(yeasts []domain.Yeast) (float64, bool) {
	if len(yeasts) == 0 {
		return 0, false
	}
	var sum float64
	for _, y := range yeasts {
		sum += y.AttenuationPct
	}
	return sum / float64(len(yeasts)), true
}
