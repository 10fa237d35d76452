package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductLine is the priced view of one product in the breakdown.
type ProductLine struct {
	ID        string  `json:"id"`
	VendorID  string  `json:"vendorId"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"base_price"`
	Markup    float64 `json:"markup"`
	LineTotal float64 `json:"line_total"`
}

// ResolveProductBasePrice is the cost of a product before markup. With EUR
// pricing enabled it is recomputed from the worksheet, never read from Price.
func ResolveProductBasePrice(item ProductItem) float64 {
	if item.EuroPricingEnabled {
		if item.EuroPricing == nil {
			return 0
		}
		return ComputeEuroPricingTotals(*item.EuroPricing).USDSubtotal
	}
	return ToNumber(item.Price)
}

// ResolveProductMarkup returns the line markup, falling back to the calculator
// default when the line leaves it blank.
func ResolveProductMarkup(item ProductItem, calc Calculator) float64 {
	if trimmed(item.Markup) {
		return ToNumber(item.Markup)
	}
	return ToNumber(calc[CalcProductMarkupDefault])
}

// ProductLineTotal is base price times (1 + markup), rounded up to the cent.
func ProductLineTotal(item ProductItem, calc Calculator) float64 {
	return RoundUp(ResolveProductBasePrice(item) * (1 + ResolveProductMarkup(item, calc)))
}

// priceProducts rounds every line on its own and sums the rounded lines.
func priceProducts(items []ProductItem, calc Calculator) (lines []ProductLine, revenue, cost float64) {
	lines = make([]ProductLine, 0, len(items))
	sum := decimal.Zero
	for _, item := range items {
		base := ResolveProductBasePrice(item)
		markup := ResolveProductMarkup(item, calc)
		total := RoundUp(base * (1 + markup))
		lines = append(lines, ProductLine{
			ID:        item.ID,
			VendorID:  item.VendorID,
			Name:      item.Name,
			BasePrice: base,
			Markup:    markup,
			LineTotal: total,
		})
		sum = sum.Add(toDecimal(total))
		cost += base
	}
	return lines, sum.InexactFloat64(), cost
}

// PrimaryVendorID is the vendor whose install prices apply: the first product
// that names one.
func PrimaryVendorID(items []ProductItem) string {
	for _, item := range items {
		if id := strings.TrimSpace(item.VendorID); id != "" {
			return id
		}
	}
	return ""
}

// ResolveVendorIDs fills missing vendor ids by matching product names against
// the vendor catalog, case-insensitively. Older drafts only stored the name.
func ResolveVendorIDs(items []ProductItem, vendors []Vendor) []ProductItem {
	byName := make(map[string]string, len(vendors))
	for _, v := range vendors {
		key := strings.ToLower(strings.TrimSpace(v.Name))
		if key == "" {
			continue
		}
		if _, taken := byName[key]; !taken {
			byName[key] = v.ID
		}
	}

	out := make([]ProductItem, len(items))
	for i, item := range items {
		out[i] = copyProduct(item)
		if strings.TrimSpace(item.VendorID) != "" {
			continue
		}
		if id, ok := byName[strings.ToLower(strings.TrimSpace(item.Name))]; ok {
			out[i].VendorID = id
		}
	}
	return out
}
