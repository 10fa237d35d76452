package pricing

// DefaultFluff is the spread added to the live EUR→USD rate.
const DefaultFluff = "0.07"

// Fixed worksheet section ids. Labels of these sections are not editable.
const (
	SectionBaseUnit = "base_unit_cost"
	SectionOptions  = "options_upgrades"
	SectionGlass    = "glass"
	SectionHardware = "hardware"
	SectionFreight  = "crating_freight"
)

var fixedSections = []EuroPricingSection{
	{ID: SectionBaseUnit, Label: "Base unit cost"},
	{ID: SectionOptions, Label: "Options & upgrades"},
	{ID: SectionGlass, Label: "Glass"},
	{ID: SectionHardware, Label: "Hardware"},
	{ID: SectionFreight, Label: "Crating & freight"},
}

// LiveRate is what the exchange-rate provider hands back.
type LiveRate struct {
	Rate float64 `json:"rate"`
	AsOf string  `json:"asOf"`
}

// EuroPricingTotals is the EUR worksheet subtotal and its USD conversion, both at
// full precision.
type EuroPricingTotals struct {
	EURSubtotal float64 `json:"eurSubtotal"`
	USDSubtotal float64 `json:"usdSubtotal"`
}

// NewEuroPricing returns a worksheet with the default fluff and the fixed sections.
func NewEuroPricing() *EuroPricing {
	sections := make([]EuroPricingSection, len(fixedSections))
	copy(sections, fixedSections)
	return &EuroPricing{
		Fluff:    DefaultFluff,
		Sections: sections,
	}
}

// ComputeEuroPricingTotals sums every section in EUR and converts with the applied rate.
func ComputeEuroPricingTotals(p EuroPricing) EuroPricingTotals {
	var eur float64
	for _, s := range p.Sections {
		eur += ToNumber(s.Amount)
	}
	return EuroPricingTotals{
		EURSubtotal: eur,
		USDSubtotal: eur * ToNumber(p.AppliedRate),
	}
}

// DerivedEuroPrice is the product price derived from the worksheet. An unpriced
// worksheet yields "" so it stays distinguishable from a zero price.
func DerivedEuroPrice(p EuroPricing) string {
	totals := ComputeEuroPricingTotals(p)
	if totals.EURSubtotal <= 0 {
		return ""
	}
	return FormatFixed2(totals.USDSubtotal)
}

// ApplyLiveRate stores a freshly fetched rate and resets the applied rate to
// live rate plus fluff.
func ApplyLiveRate(p EuroPricing, rate LiveRate) EuroPricing {
	out := copyEuroPricing(p)
	live := toDecimal(rate.Rate).Round(4)
	out.LiveRate = FormatRate(live.InexactFloat64())
	out.AppliedRate = FormatRate(live.Add(toDecimal(ToNumber(out.Fluff))).InexactFloat64())
	out.LastUpdatedOn = rate.AsOf
	return out
}

// AddMiscSection appends an empty, user-labelled misc line with the given id.
func AddMiscSection(p EuroPricing, id string) EuroPricing {
	out := copyEuroPricing(p)
	out.Sections = append(out.Sections, EuroPricingSection{ID: id, IsMisc: true})
	return out
}

// RemoveMiscSection drops a misc line. Fixed sections cannot be removed.
func RemoveMiscSection(p EuroPricing, id string) EuroPricing {
	out := copyEuroPricing(p)
	kept := out.Sections[:0]
	for _, s := range out.Sections {
		if s.IsMisc && s.ID == id {
			continue
		}
		kept = append(kept, s)
	}
	out.Sections = kept
	return out
}

// normalizeEuroSections restores fixed sections (canonical labels, canonical
// order) and keeps misc lines after them. Lines with an unknown fixed id are
// kept as misc so their amount still counts.
func normalizeEuroSections(sections []EuroPricingSection) []EuroPricingSection {
	fixed := make(map[string]bool, len(fixedSections))
	for _, f := range fixedSections {
		fixed[f.ID] = true
	}
	byID := make(map[string]EuroPricingSection, len(sections))
	for _, s := range sections {
		if !s.IsMisc && fixed[s.ID] {
			byID[s.ID] = s
		}
	}

	out := make([]EuroPricingSection, 0, len(sections)+len(fixedSections))
	for _, f := range fixedSections {
		line := f
		if existing, ok := byID[f.ID]; ok {
			line.Amount = existing.Amount
		}
		out = append(out, line)
	}
	for _, s := range sections {
		switch {
		case s.IsMisc:
			out = append(out, s)
		case !fixed[s.ID]:
			s.IsMisc = true
			out = append(out, s)
		}
	}
	return out
}

func copyEuroPricing(p EuroPricing) EuroPricing {
	out := p
	out.Sections = make([]EuroPricingSection, len(p.Sections))
	copy(out.Sections, p.Sections)
	return out
}
