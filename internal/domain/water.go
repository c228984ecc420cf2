package domain

// WaterProfile is a mineral ion profile in ppm (mg/L).
type WaterProfile struct {
	CalciumPPM     float64 `json:"calciumPPM" validate:"gte=0"`
	MagnesiumPPM   float64 `json:"magnesiumPPM" validate:"gte=0"`
	SodiumPPM      float64 `json:"sodiumPPM" validate:"gte=0"`
	ChloridePPM    float64 `json:"chloridePPM" validate:"gte=0"`
	SulfatePPM     float64 `json:"sulfatePPM" validate:"gte=0"`
	BicarbonatePPM float64 `json:"bicarbonatePPM" validate:"gte=0"`
}

// SaltAdditions are brewing salt amounts in grams, for the whole water volume.
type SaltAdditions struct {
	GypsumG          float64 `json:"gypsumG" validate:"gte=0"`
	CalciumChlorideG float64 `json:"calciumChlorideG" validate:"gte=0"`
	EpsomSaltG       float64 `json:"epsomSaltG" validate:"gte=0"`
	TableSaltG       float64 `json:"tableSaltG" validate:"gte=0"`
	BakingSodaG      float64 `json:"bakingSodaG" validate:"gte=0"`
}

// WaterChemistry is the optional water treatment block of a recipe.
// TargetName is display-only: the name of the profile the brewer is
// aiming for (e.g. "Burton", "Pilsen"), never used in calculation.
type WaterChemistry struct {
	Source     WaterProfile  `json:"source"`
	TargetName string        `json:"targetName,omitempty"`
	Salts      SaltAdditions `json:"salts"`
}
