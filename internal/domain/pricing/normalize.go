package pricing

// NormalizeDraft returns a deep copy of the draft with every derived field
// recomputed. Run it after each mutation so stored drafts always satisfy the
// product invariants.
func NormalizeDraft(d EstimateDraft) EstimateDraft {
	out := EstimateDraft{
		Info:       make(Info, len(d.Info)),
		Products:   make([]ProductItem, len(d.Products)),
		Bucking:    make([]BuckingLineItem, len(d.Bucking)),
		Calculator: make(Calculator, len(d.Calculator)),
	}
	for k, v := range d.Info {
		out.Info[k] = v
	}
	for k, v := range d.Calculator {
		out.Calculator[k] = v
	}
	for i, p := range d.Products {
		out.Products[i] = NormalizeProduct(p)
	}
	copy(out.Bucking, d.Bucking)
	if d.ChangeOrder != nil {
		co := *d.ChangeOrder
		out.ChangeOrder = &co
	}
	return out
}

// NormalizeProduct enforces the product invariants on a copy:
//   - without a split finish the exterior color mirrors the interior color
//   - with EUR pricing enabled the worksheet exists, its fixed sections are
//     intact and price is derived from it
func NormalizeProduct(p ProductItem) ProductItem {
	out := copyProduct(p)
	if !out.SplitFinish {
		out.ExteriorFrameColor = out.InteriorFrameColor
	}
	if out.EuroPricingEnabled {
		if out.EuroPricing == nil {
			out.EuroPricing = NewEuroPricing()
		}
		if !trimmed(out.EuroPricing.Fluff) {
			out.EuroPricing.Fluff = DefaultFluff
		}
		out.EuroPricing.Sections = normalizeEuroSections(out.EuroPricing.Sections)
		out.Price = DerivedEuroPrice(*out.EuroPricing)
	}
	return out
}

func copyProduct(p ProductItem) ProductItem {
	out := p
	if p.EuroPricing != nil {
		ep := copyEuroPricing(*p.EuroPricing)
		out.EuroPricing = &ep
	}
	return out
}
