package pricing

// InstallBreakdown explains how the installation price was reached.
type InstallBreakdown struct {
	VendorID   string  `json:"vendor_id"`
	UnitCost   float64 `json:"unit_cost"`
	Markup     float64 `json:"markup"`
	Rentals    float64 `json:"rentals"`
	Computed   float64 `json:"computed"`
	Overridden bool    `json:"overridden"`
	Price      float64 `json:"price"`
}

// InstallUnitPrice is the per-unit install price of a panel type. A positive
// vendor-specific price wins over the team default.
func InstallUnitPrice(pt PanelType, vendorID string) float64 {
	if vendorID != "" {
		if p, ok := pt.VendorPrices[vendorID]; ok && finite(p) > 0 {
			return p
		}
	}
	return finite(pt.Price)
}

// priceInstallation expects counts in the same order as panelTypes, as
// BuildPanelCounts returns them.
func priceInstallation(counts []PanelCount, panelTypes []PanelType, vendorID string, calc Calculator) InstallBreakdown {
	var unitCost float64
	for i, pt := range panelTypes {
		if i >= len(counts) {
			break
		}
		unitCost += InstallUnitPrice(pt, vendorID) * counts[i].TotalQty
	}

	markup := ToNumber(calc[CalcInstallMarkup])
	rentals := ToNumber(calc[CalcRentals])
	b := InstallBreakdown{
		VendorID: vendorID,
		UnitCost: unitCost,
		Markup:   markup,
		Rentals:  rentals,
		Computed: RoundUp(unitCost*(1+markup) + rentals),
	}
	b.Price = b.Computed
	if override := ToNumber(calc[CalcOverrideInstallTotal]); override > 0 {
		b.Overridden = true
		b.Price = RoundUp(override)
	}
	return b
}
