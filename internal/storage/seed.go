package storage

import (
	"context"
	"time"

	"github.com/brewsmith/brewsmith/internal/domain"
)

// Seed populates an empty store with the built-in example recipes. A store
// that already has recipes is left alone.
func Seed(ctx context.Context, store domain.RecipeStore) error {
	existing, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, r := range []*domain.Recipe{cascadePaleAle(), dryIrishStout()} {
		if err := store.Save(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func cascadePaleAle() *domain.Recipe {
	now := time.Now()
	return &domain.Recipe{
		ID:           "cascade-pale-ale",
		Name:         "Cascade Pale Ale",
		StyleCode:    "18B",
		BatchVolumeL: 20,
		Equipment:    domain.DefaultEquipment(),
		Fermentables: []domain.Fermentable{
			{Name: "Pale 2-Row", WeightKg: 4.5, Lovibond: 2, PPG: 37},
			{Name: "Crystal 40", WeightKg: 0.35, Lovibond: 40, PPG: 34},
			{Name: "Munich", WeightKg: 0.25, Lovibond: 9, PPG: 35},
		},
		Hops: []domain.Hop{
			{Name: "Cascade", AlphaAcidPct: 5.5, WeightG: 28, Use: domain.HopBoil, BoilMin: 60},
			{Name: "Cascade", AlphaAcidPct: 5.5, WeightG: 28, Use: domain.HopBoil, BoilMin: 15},
			{
				Name: "Cascade", AlphaAcidPct: 5.5, WeightG: 56,
				Use: domain.HopWhirlpool, WhirlpoolTempC: 80, WhirlpoolMin: 20,
				Flavor: &domain.FlavorProfile{Citrus: 4, Floral: 3, Grassy: 1, Spicy: 1},
			},
			{
				Name: "Cascade", AlphaAcidPct: 5.5, WeightG: 56,
				Use: domain.HopDry, DryHopStartDay: 7, DryHopDays: 4,
				Flavor: &domain.FlavorProfile{Citrus: 4, Floral: 3, Grassy: 1, Spicy: 1},
			},
		},
		Yeasts: []domain.Yeast{
			{Name: "SafAle US-05", AttenuationPct: 78},
		},
		MashSteps: []domain.MashStep{
			{Name: "Saccharification", Type: domain.MashInfusion, TargetTempC: 66, DurationMin: 60},
			{Name: "Mash out", Type: domain.MashTemperature, TargetTempC: 76, DurationMin: 10},
		},
		FermentationSteps: []domain.FermentationStep{
			{Name: "Primary", TempC: 19, Days: 10},
			{Name: "Conditioning", TempC: 2, Days: 7},
		},
		Water: &domain.WaterChemistry{
			Source: domain.WaterProfile{
				CalciumPPM: 20, MagnesiumPPM: 3, SodiumPPM: 8,
				ChloridePPM: 12, SulfatePPM: 15, BicarbonatePPM: 40,
			},
			TargetName: "Pale ale (sulfate forward)",
			Salts:      domain.SaltAdditions{GypsumG: 6, CalciumChlorideG: 2},
		},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func dryIrishStout() *domain.Recipe {
	now := time.Now()
	return &domain.Recipe{
		ID:           "dry-irish-stout",
		Name:         "Dry Irish Stout",
		StyleCode:    "15B",
		BatchVolumeL: 20,
		Equipment:    domain.DefaultEquipment(),
		Fermentables: []domain.Fermentable{
			{Name: "Maris Otter", WeightKg: 3.2, Lovibond: 3, PPG: 38},
			{Name: "Flaked Barley", WeightKg: 0.8, Lovibond: 2, PPG: 32},
			{Name: "Roasted Barley", WeightKg: 0.45, Lovibond: 300, PPG: 25},
		},
		Hops: []domain.Hop{
			{Name: "East Kent Goldings", AlphaAcidPct: 5.0, WeightG: 50, Use: domain.HopBoil, BoilMin: 60},
		},
		Yeasts: []domain.Yeast{
			{Name: "Wyeast 1084 Irish Ale", AttenuationPct: 73},
		},
		MashSteps: []domain.MashStep{
			{Name: "Saccharification", Type: domain.MashInfusion, TargetTempC: 67, DurationMin: 60},
		},
		FermentationSteps: []domain.FermentationStep{
			{Name: "Primary", TempC: 18, Days: 7},
			{Name: "Conditioning", TempC: 12, Days: 7},
		},
		Water: &domain.WaterChemistry{
			Source: domain.WaterProfile{
				CalciumPPM: 110, MagnesiumPPM: 4, SodiumPPM: 12,
				ChloridePPM: 20, SulfatePPM: 50, BicarbonatePPM: 280,
			},
			TargetName: "Dublin",
			Salts:      domain.SaltAdditions{BakingSodaG: 2},
		},
		Others: []domain.OtherIngredient{
			{Name: "Irish moss", Amount: 5, Unit: "g", AddedAt: "boil"},
		},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
