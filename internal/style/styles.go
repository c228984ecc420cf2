// Package style provides the static BJCP range table and the comparison of
// calculated recipe metrics against a style's published ranges.
package style

// Range is a min/max window for one metric.
type Range struct {
	Min float64
	Max float64
}

// Spec is one BJCP style entry. A nil range means the guideline publishes
// no number for that metric.
type Spec struct {
	Code string
	Name string
	OG   *Range
	FG   *Range
	ABV  *Range
	IBU  *Range
	SRM  *Range
}

func rng(min, max float64) *Range { return &Range{Min: min, Max: max} }

// specs is the built-in excerpt of the BJCP 2021 guidelines, keyed by code.
var specs = map[string]Spec{
	"1A":  {Code: "1A", Name: "American Light Lager", OG: rng(1.028, 1.040), FG: rng(0.998, 1.008), ABV: rng(2.8, 4.2), IBU: rng(8, 12), SRM: rng(2, 3)},
	"1B":  {Code: "1B", Name: "American Lager", OG: rng(1.040, 1.050), FG: rng(1.004, 1.010), ABV: rng(4.2, 5.3), IBU: rng(8, 18), SRM: rng(2, 3.5)},
	"3B":  {Code: "3B", Name: "Czech Premium Pale Lager", OG: rng(1.044, 1.060), FG: rng(1.013, 1.017), ABV: rng(4.2, 5.8), IBU: rng(30, 45), SRM: rng(3.5, 6)},
	"4A":  {Code: "4A", Name: "Munich Helles", OG: rng(1.044, 1.048), FG: rng(1.006, 1.012), ABV: rng(4.7, 5.4), IBU: rng(16, 22), SRM: rng(3, 5)},
	"6C":  {Code: "6C", Name: "Dunkles Bock", OG: rng(1.064, 1.072), FG: rng(1.013, 1.019), ABV: rng(6.3, 7.2), IBU: rng(20, 27), SRM: rng(14, 22)},
	"8A":  {Code: "8A", Name: "Munich Dunkel", OG: rng(1.048, 1.056), FG: rng(1.010, 1.016), ABV: rng(4.5, 5.6), IBU: rng(18, 28), SRM: rng(14, 28)},
	"10A": {Code: "10A", Name: "Weissbier", OG: rng(1.044, 1.053), FG: rng(1.008, 1.014), ABV: rng(4.3, 5.6), IBU: rng(8, 15), SRM: rng(2, 6)},
	"11A": {Code: "11A", Name: "Ordinary Bitter", OG: rng(1.030, 1.039), FG: rng(1.007, 1.011), ABV: rng(3.2, 3.8), IBU: rng(25, 35), SRM: rng(8, 14)},
	"12C": {Code: "12C", Name: "English IPA", OG: rng(1.050, 1.075), FG: rng(1.010, 1.018), ABV: rng(5.0, 7.5), IBU: rng(40, 60), SRM: rng(6, 14)},
	"13B": {Code: "13B", Name: "British Brown Ale", OG: rng(1.040, 1.052), FG: rng(1.008, 1.013), ABV: rng(4.2, 5.9), IBU: rng(20, 30), SRM: rng(12, 22)},
	"14C": {Code: "14C", Name: "Scottish Export", OG: rng(1.040, 1.060), FG: rng(1.010, 1.016), ABV: rng(3.9, 6.0), IBU: rng(15, 30), SRM: rng(13, 22)},
	"15A": {Code: "15A", Name: "Irish Red Ale", OG: rng(1.036, 1.046), FG: rng(1.010, 1.014), ABV: rng(3.8, 5.0), IBU: rng(18, 28), SRM: rng(9, 14)},
	"15B": {Code: "15B", Name: "Irish Stout", OG: rng(1.036, 1.044), FG: rng(1.007, 1.011), ABV: rng(4.0, 4.5), IBU: rng(25, 45), SRM: rng(25, 40)},
	"16A": {Code: "16A", Name: "Sweet Stout", OG: rng(1.044, 1.060), FG: rng(1.012, 1.024), ABV: rng(4.0, 6.0), IBU: rng(20, 40), SRM: rng(30, 40)},
	"17A": {Code: "17A", Name: "British Strong Ale", OG: rng(1.055, 1.080), FG: rng(1.015, 1.022), ABV: rng(5.5, 8.0), IBU: rng(30, 60), SRM: rng(8, 22)},
	"18B": {Code: "18B", Name: "American Pale Ale", OG: rng(1.045, 1.060), FG: rng(1.010, 1.015), ABV: rng(4.5, 6.2), IBU: rng(30, 50), SRM: rng(5, 10)},
	"19A": {Code: "19A", Name: "American Amber Ale", OG: rng(1.045, 1.060), FG: rng(1.010, 1.015), ABV: rng(4.5, 6.2), IBU: rng(25, 40), SRM: rng(10, 17)},
	"20A": {Code: "20A", Name: "American Porter", OG: rng(1.050, 1.070), FG: rng(1.012, 1.018), ABV: rng(4.8, 6.5), IBU: rng(25, 50), SRM: rng(22, 40)},
	"20B": {Code: "20B", Name: "American Stout", OG: rng(1.050, 1.075), FG: rng(1.010, 1.022), ABV: rng(5.0, 7.0), IBU: rng(35, 75), SRM: rng(30, 40)},
	"21A": {Code: "21A", Name: "American IPA", OG: rng(1.056, 1.070), FG: rng(1.008, 1.014), ABV: rng(5.5, 7.5), IBU: rng(40, 70), SRM: rng(6, 14)},
	"22A": {Code: "22A", Name: "Double IPA", OG: rng(1.065, 1.085), FG: rng(1.008, 1.018), ABV: rng(7.5, 10.0), IBU: rng(60, 100), SRM: rng(6, 14)},
	"23A": {Code: "23A", Name: "Berliner Weisse", OG: rng(1.028, 1.032), FG: rng(1.003, 1.006), ABV: rng(2.8, 3.8), IBU: rng(3, 8), SRM: rng(2, 3)},
	"25B": {Code: "25B", Name: "Saison", OG: rng(1.048, 1.065), FG: rng(1.002, 1.008), ABV: rng(5.0, 7.0), IBU: rng(20, 35), SRM: rng(5, 14)},
	"26B": {Code: "26B", Name: "Belgian Dubbel", OG: rng(1.062, 1.075), FG: rng(1.008, 1.018), ABV: rng(6.0, 7.6), IBU: rng(15, 25), SRM: rng(10, 17)},
	"26C": {Code: "26C", Name: "Belgian Tripel", OG: rng(1.075, 1.085), FG: rng(1.008, 1.014), ABV: rng(7.5, 9.5), IBU: rng(20, 40), SRM: rng(4.5, 7)},
}

// Lookup resolves a style code against the built-in table. Absent codes
// yield ok=false: "no ranges available", not an error.
func Lookup(code string) (Spec, bool) {
	s, ok := specs[code]
	return s, ok
}

// Codes returns all known style codes, unordered.
func Codes() []string {
	out := make([]string, 0, len(specs))
	for code := range specs {
		out = append(out, code)
	}
	return out
}
