package pricing

import "strings"

// ChangeOrderTotals is the priced change-order line.
type ChangeOrderTotals struct {
	VendorTotal float64 `json:"vendor_total"`
	LaborTotal  float64 `json:"labor_total"`
	Total       float64 `json:"total"`
}

// IsChangeOrderProjectType reports whether a project type selects change-order
// pricing ("Change Order", "change-order", "CHANGE_ORDER" ...).
func IsChangeOrderProjectType(projectType string) bool {
	normalized := strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, strings.ToLower(projectType))
	return strings.Contains(strings.Join(strings.Fields(normalized), " "), "change order")
}

// ComputeChangeOrderTotals prices vendor and labor independently, each rounded up.
func ComputeChangeOrderTotals(co ChangeOrderDraft) ChangeOrderTotals {
	vendor := RoundUp(ToNumber(co.VendorCost) * (1 + ToNumber(co.VendorMarkup)))
	labor := RoundUp(ToNumber(co.LaborCost) * (1 + ToNumber(co.LaborMarkup)))
	return ChangeOrderTotals{
		VendorTotal: vendor,
		LaborTotal:  labor,
		Total:       toDecimal(vendor).Add(toDecimal(labor)).InexactFloat64(),
	}
}
