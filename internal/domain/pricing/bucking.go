package pricing

import "math"

// PanelCount is the per-unit-type quantity summary shown in the panel grid.
type PanelCount struct {
	PanelTypeID    string  `json:"panel_type_id"`
	Label          string  `json:"label"`
	TotalQty       float64 `json:"total_qty"`
	ClerestoryQty  float64 `json:"clerestory_qty"`
	ReplacementQty float64 `json:"replacement_qty"`
}

// BuckingLine is the geometry of one bucking row in the breakdown.
type BuckingLine struct {
	ID       string  `json:"id"`
	UnitType string  `json:"unit_type"`
	Qty      float64 `json:"qty"`
	Sqft     float64 `json:"sqft"`
	LinealFt float64 `json:"lineal_ft"`
}

// LinealFeet estimates the perimeter run of a bucking row from its unit count and
// total area: |sqrt((sqft/qty)/6) * 11| * qty. Rows without a positive qty count 0.
func LinealFeet(line BuckingLineItem) float64 {
	qty := ToNumber(line.Qty)
	if qty <= 0 {
		return 0
	}
	sqft := ToNumber(line.Sqft)
	lineal := math.Abs(math.Sqrt((sqft/qty)/6)*11) * qty
	return finite(lineal)
}

func measureBucking(lines []BuckingLineItem) ([]BuckingLine, float64) {
	out := make([]BuckingLine, 0, len(lines))
	var total float64
	for _, line := range lines {
		lf := LinealFeet(line)
		out = append(out, BuckingLine{
			ID:       line.ID,
			UnitType: line.UnitType,
			Qty:      ToNumber(line.Qty),
			Sqft:     ToNumber(line.Sqft),
			LinealFt: lf,
		})
		total += lf
	}
	return out, total
}

// overrideOrRate returns the override when it is positive, otherwise lineal
// footage times rate. The result is not rounded; only the contract total is.
func overrideOrRate(calc Calculator, overrideKey, rateKey string, linealFt float64) (price float64, overridden bool) {
	if override := ToNumber(calc[overrideKey]); override > 0 {
		return override, true
	}
	return toDecimal(linealFt).Mul(toDecimal(ToNumber(calc[rateKey]))).InexactFloat64(), false
}

// BuildPanelCounts sums qty, clerestory and replacement quantities per panel type.
// Every known panel type is reported, in catalog order, even with zero counts;
// rows whose unit type is not in the catalog are ignored.
func BuildPanelCounts(lines []BuckingLineItem, panelTypes []PanelType) []PanelCount {
	counts := make([]PanelCount, len(panelTypes))
	index := make(map[string]int, len(panelTypes))
	for i, pt := range panelTypes {
		counts[i] = PanelCount{PanelTypeID: pt.ID, Label: pt.Label}
		if _, dup := index[pt.ID]; !dup {
			index[pt.ID] = i
		}
	}

	for _, line := range lines {
		i, ok := index[line.UnitType]
		if !ok {
			continue
		}
		counts[i].TotalQty += ToNumber(line.Qty)
		counts[i].ClerestoryQty += ToNumber(line.ClerestoryQty)
		counts[i].ReplacementQty += ToNumber(line.ReplacementQty)
	}
	return counts
}
