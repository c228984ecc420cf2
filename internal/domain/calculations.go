package domain

// Volumes is every checkpoint of the water chain through the brew process.
// All values are liters and never negative.
type Volumes struct {
	MashWaterL        float64 `json:"mashWaterL"`
	SpargeWaterL      float64 `json:"spargeWaterL"`
	PreBoilL          float64 `json:"preBoilL"`
	PostBoilL         float64 `json:"postBoilL"`
	IntoFermenterL    float64 `json:"intoFermenterL"`
	PackagedL         float64 `json:"packagedL"`
	GrainAbsorptionL  float64 `json:"grainAbsorptionL"`
	TotalWaterL       float64 `json:"totalWaterL"`
}

// HopBitterness is one hop addition's share of the total IBU.
type HopBitterness struct {
	Name        string  `json:"name"`
	Use         HopUse  `json:"use"`
	IBU         float64 `json:"ibu"`
	Utilization float64 `json:"utilization"`
}

// Calculations is the derived result of the recipe calculation service.
// It is recomputed on demand and never persisted.
type Calculations struct {
	OG           float64         `json:"og"`
	FG           float64         `json:"fg"`
	ABVPct       float64         `json:"abvPct"`
	IBU          float64         `json:"ibu"`
	SRM          float64         `json:"srm"`
	Calories     float64         `json:"calories"` // per 12 oz serving
	CarbsG       float64         `json:"carbsG"`   // per 12 oz serving
	HopIBUs      []HopBitterness `json:"hopIBUs,omitempty"`
	Volumes      Volumes         `json:"volumes"`
	// HasYeast is false when no yeast is selected; FG/ABV then describe
	// unfermented wort and should render as "no data", not as a measurement.
	HasYeast bool `json:"hasYeast"`
}
