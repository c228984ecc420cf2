package water

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

func TestFinalProfileSingleSalts(t *testing.T) {
	// 1 g of each salt into 1 L isolates the raw factors.
	tests := []struct {
		name  string
		salts domain.SaltAdditions
		check func(t *testing.T, p domain.WaterProfile)
	}{
		{"gypsum", domain.SaltAdditions{GypsumG: 1}, func(t *testing.T, p domain.WaterProfile) {
			almostEqual(t, p.CalciumPPM, 232.8, 0.1)
			almostEqual(t, p.SulfatePPM, 557.7, 0.1)
		}},
		{"calcium chloride", domain.SaltAdditions{CalciumChlorideG: 1}, func(t *testing.T, p domain.WaterProfile) {
			almostEqual(t, p.CalciumPPM, 272.6, 0.1)
			almostEqual(t, p.ChloridePPM, 482.3, 0.1)
		}},
		{"epsom", domain.SaltAdditions{EpsomSaltG: 1}, func(t *testing.T, p domain.WaterProfile) {
			almostEqual(t, p.MagnesiumPPM, 98.6, 0.1)
			almostEqual(t, p.SulfatePPM, 389.6, 0.1)
		}},
		{"table salt", domain.SaltAdditions{TableSaltG: 1}, func(t *testing.T, p domain.WaterProfile) {
			almostEqual(t, p.SodiumPPM, 393.4, 0.1)
			almostEqual(t, p.ChloridePPM, 606.6, 0.1)
		}},
		{"baking soda", domain.SaltAdditions{BakingSodaG: 1}, func(t *testing.T, p domain.WaterProfile) {
			almostEqual(t, p.SodiumPPM, 273.7, 0.1)
			almostEqual(t, p.BicarbonatePPM, 726.3, 0.1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, FinalProfile(domain.WaterProfile{}, tt.salts, 1))
		})
	}
}

func TestFinalProfileAddsToSource(t *testing.T) {
	source := domain.WaterProfile{CalciumPPM: 50, SulfatePPM: 40, ChloridePPM: 30}
	// 3 g gypsum in 30 L: +23.28 Ca, +55.77 SO4.
	got := FinalProfile(source, domain.SaltAdditions{GypsumG: 3}, 30)
	almostEqual(t, got.CalciumPPM, 73.28, 0.01)
	almostEqual(t, got.SulfatePPM, 95.77, 0.01)
	almostEqual(t, got.ChloridePPM, 30, 1e-9) // untouched
}

func TestFinalProfileZeroVolume(t *testing.T) {
	source := domain.WaterProfile{CalciumPPM: 50, SodiumPPM: 12}
	got := FinalProfile(source, domain.SaltAdditions{GypsumG: 5, TableSaltG: 2}, 0)
	if got != source {
		t.Fatalf("zero volume must return the source unchanged, got %+v", got)
	}
}

func TestSplitSaltsProportional(t *testing.T) {
	salts := domain.SaltAdditions{GypsumG: 6, TableSaltG: 3}
	// 15 L mash, 10 L sparge: 60/40 split.
	got := SplitSalts(salts, 15, 10)

	almostEqual(t, got.Mash.GypsumG, 3.6, 1e-9)
	almostEqual(t, got.Sparge.GypsumG, 2.4, 1e-9)
	almostEqual(t, got.Mash.TableSaltG, 1.8, 1e-9)
	almostEqual(t, got.Sparge.TableSaltG, 1.2, 1e-9)

	// The split conserves every salt exactly.
	almostEqual(t, got.Mash.GypsumG+got.Sparge.GypsumG, salts.GypsumG, 1e-12)
	almostEqual(t, got.Mash.TableSaltG+got.Sparge.TableSaltG, salts.TableSaltG, 1e-12)
}

func TestSplitSaltsNoSparge(t *testing.T) {
	salts := domain.SaltAdditions{CalciumChlorideG: 4}
	got := SplitSalts(salts, 20, 0)
	almostEqual(t, got.Mash.CalciumChlorideG, 4, 1e-9)
	almostEqual(t, got.Sparge.CalciumChlorideG, 0, 1e-9)
}

func TestSplitSaltsZeroWater(t *testing.T) {
	got := SplitSalts(domain.SaltAdditions{GypsumG: 5}, 0, 0)
	if got.Mash.GypsumG != 0 || got.Sparge.GypsumG != 0 {
		t.Fatalf("no water means nothing dissolves, got %+v", got)
	}
}
