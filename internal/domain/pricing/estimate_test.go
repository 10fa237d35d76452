package pricing

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func sampleDraft() EstimateDraft {
	return EstimateDraft{
		Info: Info{
			InfoPreparedFor:  "Jordan Avery",
			InfoProjectName:  "Lakeside Residence",
			InfoProjectType:  "New Construction",
			InfoProposalDate: "2025-03-04",
			InfoPlanSetDate:  "1/15/2025",
			InfoPreparedBy:   "JA",
		},
		Products: []ProductItem{
			{ID: "p-1", VendorID: "v-1", Name: "Schüco", Price: "1000"},
			{ID: "p-2", Name: "Local", Price: "333.33", Markup: "0.25"},
		},
		Bucking: []BuckingLineItem{
			{ID: "b-1", UnitType: "pt-1", Qty: "10", Sqft: "60"},
			{ID: "b-2", UnitType: "pt-2", Qty: "4", Sqft: "96", ClerestoryQty: "1", ReplacementQty: "2"},
		},
		Calculator: Calculator{
			CalcProductMarkupDefault: "0.5",
			CalcBuckingRate:          "5",
			CalcWaterproofingRate:    "2.5",
			CalcInstallMarkup:        "0.2",
			CalcRentals:              "400",
		},
	}
}

func samplePanelTypes() []PanelType {
	return []PanelType{
		{ID: "pt-1", Label: "Window", Price: 150, VendorPrices: map[string]float64{"v-1": 175}},
		{ID: "pt-2", Label: "Door", Price: 200},
		{ID: "pt-3", Label: "Slider", Price: 99},
	}
}

func TestComputeEstimate_Standard(t *testing.T) {
	got := ComputeEstimate(sampleDraft(), samplePanelTypes(), nil)

	wantTotals := Totals{
		ProductPrice:       1916.67,
		BuckingPrice:       990,
		WaterproofingPrice: 495,
		InstallationPrice:  3460,
		TotalLinealFt:      198,
		TotalContractPrice: 6861.67,
	}
	if got.Totals != wantTotals {
		t.Fatalf("unexpected totals:\n got %+v\nwant %+v", got.Totals, wantTotals)
	}

	if got.Schedule == nil {
		t.Fatalf("expected a schedule")
	}
	if got.Schedule.FinalPayment != 1874.16 {
		t.Fatalf("expected final payment 1874.16, got %v", got.Schedule.FinalPayment)
	}

	if got.Breakdown.Mode != ModeStandard || len(got.Breakdown.Products) != 2 || len(got.Breakdown.Bucking) != 2 {
		t.Fatalf("unexpected breakdown: %+v", got.Breakdown)
	}
	if got.Breakdown.Installation.VendorID != "v-1" || got.Breakdown.Installation.UnitCost != 2550 {
		t.Fatalf("expected vendor-specific install pricing, got %+v", got.Breakdown.Installation)
	}

	if len(got.PanelCounts) != 3 || got.PanelCounts[2].TotalQty != 0 {
		t.Fatalf("unexpected panel counts: %+v", got.PanelCounts)
	}

	if math.Abs(got.Margins.ProductMargin-(1-1333.33/1916.67)) > 1e-9 {
		t.Fatalf("unexpected product margin %v", got.Margins.ProductMargin)
	}
	want := MarginChecks{ProductMarginOK: true, InstallMarginOK: false, ProjectMarginOK: false}
	if got.MarginChecks != want {
		t.Fatalf("expected checks %+v, got %+v", want, got.MarginChecks)
	}
	if got.MarginThresholds.ProductMarginMin != DefaultProductMarginMin {
		t.Fatalf("expected default thresholds, got %+v", got.MarginThresholds)
	}
}

func TestComputeEstimate_Overrides(t *testing.T) {
	draft := sampleDraft()
	draft.Calculator[CalcOverrideBuckingCost] = "500"
	draft.Calculator[CalcOverrideWaterproofingCost] = "250"
	draft.Calculator[CalcOverrideInstallTotal] = "4000"

	got := ComputeEstimate(draft, samplePanelTypes(), nil)
	if got.Totals.BuckingPrice != 500 || got.Totals.WaterproofingPrice != 250 {
		t.Fatalf("expected overrides to replace rates, got %+v", got.Totals)
	}
	if got.Totals.InstallationPrice != 4000 || !got.Breakdown.Installation.Overridden {
		t.Fatalf("expected install override, got %+v", got.Breakdown.Installation)
	}
	if got.Breakdown.Installation.Computed != 3460 {
		t.Fatalf("expected computed install price kept for reference, got %v", got.Breakdown.Installation.Computed)
	}
	if got.Totals.TotalContractPrice != 1916.67+500+250+4000 {
		t.Fatalf("unexpected total %v", got.Totals.TotalContractPrice)
	}
	if !got.Schedule.Total().Equal(toDecimal(got.Totals.TotalContractPrice)) {
		t.Fatalf("schedule does not reconcile: %s", got.Schedule.Total())
	}
}

func TestComputeEstimate_EmptyDraft(t *testing.T) {
	got := ComputeEstimate(EstimateDraft{}, nil, nil)

	if got.Totals.TotalContractPrice != 0 {
		t.Fatalf("expected zero total, got %v", got.Totals.TotalContractPrice)
	}
	if got.Margins.ProductMargin != 0 || math.IsNaN(got.Margins.ProjectMargin) {
		t.Fatalf("expected finite zero margins, got %+v", got.Margins)
	}
	if got.MarginChecks.ProductMarginOK {
		t.Fatalf("zero revenue must not pass the product margin check")
	}
	if got.PanelCounts == nil || len(got.PanelCounts) != 0 {
		t.Fatalf("expected empty panel counts, got %+v", got.PanelCounts)
	}
}

func TestComputeEstimate_UnknownUnitTypeAddsNoInstallCost(t *testing.T) {
	draft := EstimateDraft{
		Bucking:    []BuckingLineItem{{UnitType: "ghost", Qty: "10", Sqft: "60"}},
		Calculator: Calculator{CalcBuckingRate: "1"},
	}
	got := ComputeEstimate(draft, samplePanelTypes(), nil)
	if got.Totals.InstallationPrice != 0 {
		t.Fatalf("expected no install cost, got %v", got.Totals.InstallationPrice)
	}
	if got.Totals.BuckingPrice != 110 {
		t.Fatalf("expected lineal footage still priced, got %v", got.Totals.BuckingPrice)
	}
}

func TestComputeEstimate_RoundsOnlyContractTotal(t *testing.T) {
	draft := EstimateDraft{
		Bucking: []BuckingLineItem{{ID: "b-1", Qty: "10", Sqft: "60"}},
		Calculator: Calculator{
			CalcBuckingRate:       "1.2345",
			CalcWaterproofingRate: "1.2345",
		},
	}
	got := ComputeEstimate(draft, nil, nil)

	if got.Totals.BuckingPrice != 135.795 || got.Totals.WaterproofingPrice != 135.795 {
		t.Fatalf("expected unrounded components, got bucking=%v waterproofing=%v",
			got.Totals.BuckingPrice, got.Totals.WaterproofingPrice)
	}
	if got.Totals.TotalContractPrice != 271.59 {
		t.Fatalf("expected total 271.59, got %v", got.Totals.TotalContractPrice)
	}
	if got.Schedule == nil || got.Schedule.Total().InexactFloat64() != 271.59 {
		t.Fatalf("expected schedule to add up to 271.59, got %+v", got.Schedule)
	}
}

func TestComputeEstimate_ChangeOrder(t *testing.T) {
	draft := sampleDraft()
	draft.Info[InfoProjectType] = "Change Order"
	draft.ChangeOrder = &ChangeOrderDraft{
		VendorID:     "v-1",
		VendorCost:   "1000",
		VendorMarkup: "0.2",
		LaborCost:    "500",
		LaborMarkup:  "0.1",
	}

	got := ComputeEstimate(draft, samplePanelTypes(), nil)
	if got.Totals.TotalContractPrice != 1750 {
		t.Fatalf("expected 1750, got %v", got.Totals.TotalContractPrice)
	}
	if got.Totals.VendorTotal != 1200 || got.Totals.LaborTotal != 550 {
		t.Fatalf("unexpected change order totals: %+v", got.Totals)
	}
	if got.Totals.ProductPrice != 0 || got.Totals.InstallationPrice != 0 {
		t.Fatalf("products and install must be bypassed, got %+v", got.Totals)
	}
	if got.Schedule != nil {
		t.Fatalf("change orders have no schedule")
	}
	if got.Breakdown.Mode != ModeChangeOrder {
		t.Fatalf("unexpected mode %q", got.Breakdown.Mode)
	}
	if _, ok := got.PDFValues[StageFinalPayment]; ok {
		t.Fatalf("schedule values must not be emitted for change orders")
	}
	if got.PDFValues["total_contract_price"] != "$1,750.00" {
		t.Fatalf("unexpected total pdf value %q", got.PDFValues["total_contract_price"])
	}
}

func TestComputeEstimate_ChangeOrderWithoutLine(t *testing.T) {
	got := ComputeEstimate(EstimateDraft{Info: Info{InfoProjectType: "change-order"}}, nil, nil)
	if got.Totals.TotalContractPrice != 0 || got.Schedule != nil {
		t.Fatalf("unexpected result: %+v", got.Totals)
	}
}

func TestComputeEstimate_Idempotent(t *testing.T) {
	draft := sampleDraft()
	before, _ := json.Marshal(draft)

	first, err := json.Marshal(ComputeEstimate(draft, samplePanelTypes(), nil, WithPreparedByMap(map[string]string{"JA": "Jordan Avery"})))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(ComputeEstimate(draft, samplePanelTypes(), nil, WithPreparedByMap(map[string]string{"JA": "Jordan Avery"})))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected byte-identical output")
	}

	after, _ := json.Marshal(draft)
	if !bytes.Equal(before, after) {
		t.Fatalf("draft was mutated")
	}
}

func TestComputeEstimate_UsesLiveEuroPricing(t *testing.T) {
	ep := worksheet("1.15", "1000")
	draft := EstimateDraft{
		Products:   []ProductItem{{ID: "p-1", Price: "1", EuroPricingEnabled: true, EuroPricing: &ep}},
		Calculator: Calculator{CalcProductMarkupDefault: "0"},
	}
	got := ComputeEstimate(draft, nil, nil)
	if got.Totals.ProductPrice != 1150 {
		t.Fatalf("expected product price from worksheet, got %v", got.Totals.ProductPrice)
	}
	if !reflect.DeepEqual(got.Breakdown.Products[0].BasePrice, ResolveProductBasePrice(draft.Products[0])) {
		t.Fatalf("breakdown and base price resolution disagree")
	}
}
