package pricing

import "testing"

func TestLinealFeet(t *testing.T) {
	cases := []struct {
		name string
		line BuckingLineItem
		want float64
	}{
		{name: "square unit", line: BuckingLineItem{Qty: "10", Sqft: "60"}, want: 110},
		{name: "larger units", line: BuckingLineItem{Qty: "4", Sqft: "96"}, want: 88},
		{name: "zero qty", line: BuckingLineItem{Qty: "0", Sqft: "60"}, want: 0},
		{name: "blank qty", line: BuckingLineItem{Qty: "", Sqft: "60"}, want: 0},
		{name: "blank sqft", line: BuckingLineItem{Qty: "3", Sqft: ""}, want: 0},
		{name: "negative sqft", line: BuckingLineItem{Qty: "3", Sqft: "-60"}, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LinealFeet(tc.line); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestOverrideOrRate(t *testing.T) {
	t.Run("rate based", func(t *testing.T) {
		calc := Calculator{CalcBuckingRate: "10"}
		price, overridden := overrideOrRate(calc, CalcOverrideBuckingCost, CalcBuckingRate, 100)
		if price != 1000 || overridden {
			t.Fatalf("expected 1000 from rate, got %v (overridden=%v)", price, overridden)
		}
	})

	t.Run("override replaces rate", func(t *testing.T) {
		calc := Calculator{CalcBuckingRate: "10", CalcOverrideBuckingCost: "500"}
		price, overridden := overrideOrRate(calc, CalcOverrideBuckingCost, CalcBuckingRate, 100)
		if price != 500 || !overridden {
			t.Fatalf("expected override 500, got %v (overridden=%v)", price, overridden)
		}
	})

	t.Run("zero override is ignored", func(t *testing.T) {
		calc := Calculator{CalcWaterproofingRate: "2", CalcOverrideWaterproofingCost: "0"}
		price, overridden := overrideOrRate(calc, CalcOverrideWaterproofingCost, CalcWaterproofingRate, 100)
		if price != 200 || overridden {
			t.Fatalf("expected 200 from rate, got %v (overridden=%v)", price, overridden)
		}
	})

	t.Run("fractional rate is not rounded", func(t *testing.T) {
		calc := Calculator{CalcBuckingRate: "1.2345"}
		price, _ := overrideOrRate(calc, CalcOverrideBuckingCost, CalcBuckingRate, 110)
		if price != 135.795 {
			t.Fatalf("expected 135.795, got %v", price)
		}
	})
}

func TestBuildPanelCounts(t *testing.T) {
	panelTypes := []PanelType{{ID: "pt-1", Label: "Window"}, {ID: "pt-2", Label: "Door"}, {ID: "pt-3", Label: "Slider"}}
	lines := []BuckingLineItem{
		{UnitType: "pt-1", Qty: "10"},
		{UnitType: "pt-2", Qty: "4", ClerestoryQty: "1", ReplacementQty: "2"},
		{UnitType: "pt-1", Qty: "2", ClerestoryQty: "1"},
		{UnitType: "missing", Qty: "50"},
	}

	counts := BuildPanelCounts(lines, panelTypes)
	if len(counts) != 3 {
		t.Fatalf("expected one entry per panel type, got %d", len(counts))
	}
	if counts[0].PanelTypeID != "pt-1" || counts[0].TotalQty != 12 || counts[0].ClerestoryQty != 1 {
		t.Fatalf("unexpected pt-1 counts: %+v", counts[0])
	}
	if counts[1].TotalQty != 4 || counts[1].ClerestoryQty != 1 || counts[1].ReplacementQty != 2 {
		t.Fatalf("unexpected pt-2 counts: %+v", counts[1])
	}
	if counts[2].Label != "Slider" || counts[2].TotalQty != 0 {
		t.Fatalf("expected zeroed pt-3 entry, got %+v", counts[2])
	}
}
