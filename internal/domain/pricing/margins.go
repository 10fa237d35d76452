package pricing

import "math"

// Default minimum margins used when a team has not configured its own.
const (
	DefaultProductMarginMin = 0.30
	DefaultInstallMarginMin = 0.20
	DefaultProjectMarginMin = 0.25
)

// MarginThresholds are the fractional minimum margins a team accepts.
type MarginThresholds struct {
	ProductMarginMin float64 `json:"product_margin_min"`
	InstallMarginMin float64 `json:"install_margin_min"`
	ProjectMarginMin float64 `json:"project_margin_min"`
}

// MarginThresholdsInput is a partially configured set of thresholds.
type MarginThresholdsInput struct {
	ProductMarginMin *float64 `json:"product_margin_min,omitempty" dynamodbav:"product_margin_min,omitempty"`
	InstallMarginMin *float64 `json:"install_margin_min,omitempty" dynamodbav:"install_margin_min,omitempty"`
	ProjectMarginMin *float64 `json:"project_margin_min,omitempty" dynamodbav:"project_margin_min,omitempty"`
}

// Margins are the realised margins of an estimate.
type Margins struct {
	ProductMargin float64 `json:"product_margin"`
	InstallMargin float64 `json:"install_margin"`
	ProjectMargin float64 `json:"project_margin"`
}

// MarginChecks tell whether each margin meets its threshold.
type MarginChecks struct {
	ProductMarginOK bool `json:"product_margin_ok"`
	InstallMarginOK bool `json:"install_margin_ok"`
	ProjectMarginOK bool `json:"project_margin_ok"`
}

// NormalizeMarginThresholds fills missing or non-finite thresholds with the
// defaults and clamps every threshold to [0, 1].
func NormalizeMarginThresholds(in *MarginThresholdsInput) MarginThresholds {
	if in == nil {
		in = &MarginThresholdsInput{}
	}
	return MarginThresholds{
		ProductMarginMin: threshold(in.ProductMarginMin, DefaultProductMarginMin),
		InstallMarginMin: threshold(in.InstallMarginMin, DefaultInstallMarginMin),
		ProjectMarginMin: threshold(in.ProjectMarginMin, DefaultProjectMarginMin),
	}
}

func threshold(v *float64, def float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return def
	}
	return math.Min(1, math.Max(0, *v))
}

// Input converts normalized thresholds back into a fully populated input.
func (t MarginThresholds) Input() MarginThresholdsInput {
	p, i, j := t.ProductMarginMin, t.InstallMarginMin, t.ProjectMarginMin
	return MarginThresholdsInput{ProductMarginMin: &p, InstallMarginMin: &i, ProjectMarginMin: &j}
}

// Margin is 1 - cost/revenue, or 0 when there is no revenue.
func Margin(cost, revenue float64) float64 {
	if revenue <= 0 {
		return 0
	}
	return finite(1 - cost/revenue)
}

// Check compares margins against thresholds.
func (m Margins) Check(t MarginThresholds) MarginChecks {
	return MarginChecks{
		ProductMarginOK: m.ProductMargin >= t.ProductMarginMin,
		InstallMarginOK: m.InstallMargin >= t.InstallMarginMin,
		ProjectMarginOK: m.ProjectMargin >= t.ProjectMarginMin,
	}
}
