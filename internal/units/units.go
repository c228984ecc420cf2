// Package units provides the scalar conversions and brewing formulas the
// calculators are built on. Every function is pure and total: invalid or
// zero inputs degrade to a documented zero-effect result, never an error.
package units

// Conversion constants. Base units are kilograms, liters, Celsius;
// the brewing formulas below work in pounds/gallons internally because
// PPG and the published IBU/SRM equations are defined in those units.
const (
	LbPerKg  = 2.2046226218
	GalPerL  = 0.2641720524
	OzPerG   = 0.0352739619
	QtPerGal = 4.0
)

// KgToLb converts kilograms to pounds.
func KgToLb(kg float64) float64 { return kg * LbPerKg }

// LbToKg converts pounds to kilograms.
func LbToKg(lb float64) float64 { return lb / LbPerKg }

// LToGal converts liters to US gallons.
func LToGal(l float64) float64 { return l * GalPerL }

// GalToL converts US gallons to liters.
func GalToL(gal float64) float64 { return gal / GalPerL }

// CToF converts Celsius to Fahrenheit.
func CToF(c float64) float64 { return c*9/5 + 32 }

// FToC converts Fahrenheit to Celsius.
func FToC(f float64) float64 { return (f - 32) * 5 / 9 }

// PointsFromSG converts a specific gravity like 1.050 to gravity points (50).
func PointsFromSG(sg float64) float64 { return (sg - 1) * 1000 }

// SGFromPoints converts gravity points back to a specific gravity.
func SGFromPoints(points float64) float64 { return 1 + points/1000 }

// EBCToSRM converts EBC color to SRM using the fixed divisor the BJCP
// range tables assume.
func EBCToSRM(ebc float64) float64 { return ebc / 1.97 }

// SRMToEBC converts SRM color to EBC.
func SRMToEBC(srm float64) float64 { return srm * 1.97 }
