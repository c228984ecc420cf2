package style

import "github.com/brewsmith/brewsmith/internal/domain"

// Verdict places a value relative to a style range.
type Verdict int

const (
	// NoData means the style publishes no range for this metric, or the
	// recipe carries no usable value for it. Render as "no data", never
	// as a zero that looks like a measurement.
	NoData Verdict = iota
	Below
	InRange
	Above
)

// String returns a human-readable verdict.
func (v Verdict) String() string {
	switch v {
	case Below:
		return "below"
	case InRange:
		return "in range"
	case Above:
		return "above"
	default:
		return "no data"
	}
}

// MetricComparison is one metric checked against a style range.
type MetricComparison struct {
	Metric  string
	Value   float64
	Min     float64
	Max     float64
	Verdict Verdict
}

// Compare checks the calculated metrics against a style's ranges, one
// comparison per metric in a stable order. FG and ABV are meaningless
// without a yeast; they compare as NoData in that case.
func Compare(spec Spec, calcs domain.Calculations) []MetricComparison {
	out := make([]MetricComparison, 0, 5)
	out = append(out, compareOne("OG", calcs.OG, spec.OG, true))
	out = append(out, compareOne("FG", calcs.FG, spec.FG, calcs.HasYeast))
	out = append(out, compareOne("ABV", calcs.ABVPct, spec.ABV, calcs.HasYeast))
	out = append(out, compareOne("IBU", calcs.IBU, spec.IBU, true))
	out = append(out, compareOne("SRM", calcs.SRM, spec.SRM, true))
	return out
}

func compareOne(metric string, value float64, r *Range, usable bool) MetricComparison {
	mc := MetricComparison{Metric: metric, Value: value}
	if r == nil || !usable {
		return mc // NoData
	}
	mc.Min, mc.Max = r.Min, r.Max
	switch {
	case value < r.Min:
		mc.Verdict = Below
	case value > r.Max:
		mc.Verdict = Above
	default:
		mc.Verdict = InRange
	}
	return mc
}
