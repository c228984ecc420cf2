package style

import (
	"testing"

	"github.com/brewsmith/brewsmith/internal/domain"
)

func TestLookup(t *testing.T) {
	spec, ok := Lookup("21A")
	if !ok {
		t.Fatal("expected 21A to resolve")
	}
	if spec.Name != "American IPA" {
		t.Fatalf("unexpected name: %s", spec.Name)
	}
	if spec.IBU == nil || spec.IBU.Min != 40 || spec.IBU.Max != 70 {
		t.Fatalf("unexpected IBU range: %+v", spec.IBU)
	}

	if _, ok := Lookup("99Z"); ok {
		t.Fatal("unknown code should not resolve")
	}
}

func TestCompare(t *testing.T) {
	spec, _ := Lookup("18B") // American Pale Ale

	calcs := domain.Calculations{
		OG: 1.052, FG: 1.012, ABVPct: 5.2, IBU: 38, SRM: 22,
		HasYeast: true,
	}

	got := Compare(spec, calcs)
	if len(got) != 5 {
		t.Fatalf("expected 5 comparisons, got %d", len(got))
	}

	want := map[string]Verdict{
		"OG":  InRange,
		"FG":  InRange,
		"ABV": InRange,
		"IBU": InRange,
		"SRM": Above, // 22 SRM is far too dark for a pale ale
	}
	for _, mc := range got {
		if mc.Verdict != want[mc.Metric] {
			t.Fatalf("%s: got %s, want %s (value %v)", mc.Metric, mc.Verdict, want[mc.Metric], mc.Value)
		}
	}
}

func TestCompareWithoutYeast(t *testing.T) {
	spec, _ := Lookup("18B")
	calcs := domain.Calculations{OG: 1.052, FG: 1.052, IBU: 38, SRM: 7, HasYeast: false}

	for _, mc := range Compare(spec, calcs) {
		switch mc.Metric {
		case "FG", "ABV":
			if mc.Verdict != NoData {
				t.Fatalf("%s without yeast should be no-data, got %s", mc.Metric, mc.Verdict)
			}
		case "OG":
			if mc.Verdict != InRange {
				t.Fatalf("OG should still compare, got %s", mc.Verdict)
			}
		}
	}
}

func TestCompareBelow(t *testing.T) {
	spec, _ := Lookup("22A") // Double IPA
	calcs := domain.Calculations{OG: 1.045, FG: 1.010, ABVPct: 4.6, IBU: 30, SRM: 5, HasYeast: true}

	for _, mc := range Compare(spec, calcs) {
		if mc.Metric == "IBU" && mc.Verdict != Below {
			t.Fatalf("30 IBU should be below a double IPA, got %s", mc.Verdict)
		}
	}
}

func TestCodes(t *testing.T) {
	codes := Codes()
	if len(codes) < 20 {
		t.Fatalf("expected at least 20 styles, got %d", len(codes))
	}
	seen := map[string]bool{}
	for _, c := range codes {
		if seen[c] {
			t.Fatalf("duplicate code %s", c)
		}
		seen[c] = true
	}
}
