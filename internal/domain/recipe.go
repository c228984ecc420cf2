// Package domain defines the core types and interfaces for the recipe builder.
// All other packages depend on domain; domain depends on nothing.
package domain

import "time"

// Recipe is the aggregate root: everything needed to derive the brewing
// numbers for one beer. All weights are kilograms (hops in grams), all
// volumes liters, all temperatures Celsius.
type Recipe struct {
	ID                string             `json:"id"`
	Name              string             `json:"name" validate:"required"`
	StyleCode         string             `json:"styleCode,omitempty"`
	BatchVolumeL      float64            `json:"batchVolumeL" validate:"gt=0"`
	Equipment         EquipmentProfile   `json:"equipment"`
	Fermentables      []Fermentable      `json:"fermentables" validate:"dive"`
	Hops              []Hop              `json:"hops" validate:"dive"`
	Yeasts            []Yeast            `json:"yeasts" validate:"dive"`
	MashSteps         []MashStep         `json:"mashSteps"`
	FermentationSteps []FermentationStep `json:"fermentationSteps"`
	Water             *WaterChemistry    `json:"water,omitempty"`
	Others            []OtherIngredient  `json:"others,omitempty"`
	Version           int                `json:"version"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// RecipeSummary is a lightweight view of a recipe for listing.
type RecipeSummary struct {
	ID        string
	Name      string
	StyleCode string
	Version   int
	UpdatedAt time.Time
}

// EquipmentProfile holds the loss and efficiency parameters of the brewer's
// gear. A zero value for any field means "no effect", never an error; the
// volume calculator treats the whole profile as best-effort numbers.
type EquipmentProfile struct {
	BoilTimeMin         float64 `json:"boilTimeMin" validate:"gte=0"`
	BoilOffRateLPerHr   float64 `json:"boilOffRateLPerHr" validate:"gte=0"`
	MashEfficiencyPct   float64 `json:"mashEfficiencyPct" validate:"gte=0,lte=100"`
	MashThicknessLPerKg float64 `json:"mashThicknessLPerKg" validate:"gte=0"`
	GrainAbsorptionLKg  float64 `json:"grainAbsorptionLPerKg" validate:"gte=0"`
	MashTunDeadspaceL   float64 `json:"mashTunDeadspaceL" validate:"gte=0"`
	KettleLossL         float64 `json:"kettleLossL" validate:"gte=0"`
	HopAbsorptionLKg    float64 `json:"hopAbsorptionLPerKg" validate:"gte=0"`
	ChillerLossL        float64 `json:"chillerLossL" validate:"gte=0"`
	FermenterLossL      float64 `json:"fermenterLossL" validate:"gte=0"`
	CoolingShrinkagePct float64 `json:"coolingShrinkagePct" validate:"gte=0,lt=100"`
}

// Fermentable is one grain, extract, or sugar addition.
type Fermentable struct {
	Name string `json:"name" validate:"required"`
	// WeightKg is the amount added to the mash or kettle.
	WeightKg float64 `json:"weightKg" validate:"gte=0"`
	// Lovibond is the grain color used for SRM estimation.
	Lovibond float64 `json:"lovibond" validate:"gte=0"`
	// PPG is the potential extract in points per pound per gallon.
	PPG float64 `json:"ppg" validate:"gte=0"`
	// EfficiencyPct, when set (> 0), overrides the recipe's mash efficiency
	// for this fermentable. Sugars and extracts typically use 100.
	EfficiencyPct float64 `json:"efficiencyPct" validate:"gte=0,lte=100"`
}

// HopUse says where in the process a hop addition happens. Exactly one
// timing shape is meaningful per use; the others are ignored, not rejected.
type HopUse string

const (
	HopBoil      HopUse = "boil"
	HopWhirlpool HopUse = "whirlpool"
	HopDry       HopUse = "dry"
	HopFirstWort HopUse = "firstwort"
	HopMash      HopUse = "mash"
)

// Hop is one hop addition.
type Hop struct {
	Name         string  `json:"name" validate:"required"`
	AlphaAcidPct float64 `json:"alphaAcidPct" validate:"gte=0"`
	WeightG      float64 `json:"weightG" validate:"gte=0"`
	Use          HopUse  `json:"use"`

	// Boil timing.
	BoilMin float64 `json:"boilMin,omitempty"`
	// Whirlpool timing.
	WhirlpoolTempC float64 `json:"whirlpoolTempC,omitempty"`
	WhirlpoolMin   float64 `json:"whirlpoolMin,omitempty"`
	// Dry-hop timing.
	DryHopStartDay int `json:"dryHopStartDay,omitempty"`
	DryHopDays     int `json:"dryHopDays,omitempty"`

	// Flavor is a 9-axis sensory profile (0-5 per axis), display only.
	Flavor *FlavorProfile `json:"flavor,omitempty"`
}

// FlavorProfile is the 9-axis hop sensory vector used by visualizations.
type FlavorProfile struct {
	Citrus     float64 `json:"citrus" validate:"gte=0,lte=5"`
	Tropical   float64 `json:"tropical" validate:"gte=0,lte=5"`
	StoneFruit float64 `json:"stoneFruit" validate:"gte=0,lte=5"`
	Berry      float64 `json:"berry" validate:"gte=0,lte=5"`
	Floral     float64 `json:"floral" validate:"gte=0,lte=5"`
	Grassy     float64 `json:"grassy" validate:"gte=0,lte=5"`
	Herbal     float64 `json:"herbal" validate:"gte=0,lte=5"`
	Spicy      float64 `json:"spicy" validate:"gte=0,lte=5"`
	Resinous   float64 `json:"resinous" validate:"gte=0,lte=5"`
}

// Yeast is one yeast addition. Attenuation drives the FG estimate.
type Yeast struct {
	Name           string  `json:"name" validate:"required"`
	AttenuationPct float64 `json:"attenuationPct" validate:"gte=0,lte=100"`
}

// MashStepType enumerates how a mash step reaches its target temperature.
type MashStepType string

const (
	MashInfusion    MashStepType = "infusion"
	MashTemperature MashStepType = "temperature"
	MashDecoction   MashStepType = "decoction"
)

// MashStep is one step of the mash schedule. For infusion steps the
// calculator fills InfusionTempC: the first infusion step is the strike
// water, later ones are true infusions computed from the running mash state.
type MashStep struct {
	Name            string       `json:"name"`
	Type            MashStepType `json:"type"`
	TargetTempC     float64      `json:"targetTempC"`
	DurationMin     float64      `json:"durationMin"`
	InfusionVolumeL float64      `json:"infusionVolumeL,omitempty"`
	InfusionTempC   float64      `json:"infusionTempC,omitempty"`
}

// FermentationStep is one stage of the fermentation schedule.
type FermentationStep struct {
	Name  string  `json:"name"`
	TempC float64 `json:"tempC"`
	Days  float64 `json:"days" validate:"gte=0"`
}

// OtherIngredient is a misc addition (finings, spices, fruit) that does not
// participate in any calculation.
type OtherIngredient struct {
	Name    string  `json:"name"`
	Amount  float64 `json:"amount" validate:"gte=0"`
	Unit    string  `json:"unit"`
	AddedAt string  `json:"addedAt"` // "mash", "boil", "fermenter", ""
}

// DefaultEquipment returns the standard loss profile new recipes start with.
func DefaultEquipment() EquipmentProfile {
	return EquipmentProfile{
		BoilTimeMin:         60,
		BoilOffRateLPerHr:   3,
		MashEfficiencyPct:   75,
		MashThicknessLPerKg: 3,
		GrainAbsorptionLKg:  1,
		MashTunDeadspaceL:   2,
		KettleLossL:         1,
		HopAbsorptionLKg:    6,
		ChillerLossL:        0.5,
		FermenterLossL:      1,
		CoolingShrinkagePct: 4,
	}
}

// NewRecipe creates a recipe with the documented defaults: a 20 L batch and
// the standard equipment losses.
func NewRecipe(id, name string) *Recipe {
	now := time.Now()
	return &Recipe{
		ID:           id,
		Name:         name,
		BatchVolumeL: 20,
		Equipment:    DefaultEquipment(),
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// TotalGrainKg sums the weight of all fermentables.
func (r *Recipe) TotalGrainKg() float64 {
	var kg float64
	for _, f := range r.Fermentables {
		if f.WeightKg > 0 {
			kg += f.WeightKg
		}
	}
	return kg
}

// TotalHopKg sums the weight of all kettle hop additions in kilograms.
// Dry hops never touch the kettle, so they don't absorb wort.
func (r *Recipe) TotalHopKg() float64 {
	var g float64
	for _, h := range r.Hops {
		if h.Use != HopDry && h.WeightG > 0 {
			g += h.WeightG
		}
	}
	return g / 1000
}

// Clone returns a deep copy of the recipe. Snapshots and brew sessions must
// never alias the live editing state.
func (r *Recipe) Clone() *Recipe {
	c := *r
	c.Fermentables = append([]Fermentable(nil), r.Fermentables...)
	c.Hops = make([]Hop, len(r.Hops))
	for i, h := range r.Hops {
		c.Hops[i] = h
		if h.Flavor != nil {
			fl := *h.Flavor
			c.Hops[i].Flavor = &fl
		}
	}
	c.Yeasts = append([]Yeast(nil), r.Yeasts...)
	c.MashSteps = append([]MashStep(nil), r.MashSteps...)
	c.FermentationSteps = append([]FermentationStep(nil), r.FermentationSteps...)
	c.Others = append([]OtherIngredient(nil), r.Others...)
	if r.Water != nil {
		w := *r.Water
		c.Water = &w
	}
	return &c
}

// Summary returns the listing view of the recipe.
func (r *Recipe) Summary() RecipeSummary {
	return RecipeSummary{
		ID:        r.ID,
		Name:      r.Name,
		StyleCode: r.StyleCode,
		Version:   r.Version,
		UpdatedAt: r.UpdatedAt,
	}
}
