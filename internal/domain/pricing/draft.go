// Package pricing is the estimate calculation engine.
//
// Every exported function is a pure function of its arguments: nothing here does
// I/O, keeps state or mutates its inputs, so callers may run it concurrently and
// re-run it after every draft edit. Malformed numbers degrade to zero instead of
// failing the computation.
package pricing

// Info holds free-form project metadata (prepared_for, project_name, project_type,
// proposal_date, ...). Keys are driven by the form configuration.
type Info map[string]string

// Well-known info keys read by the engine.
const (
	InfoPreparedFor  = "prepared_for"
	InfoProjectName  = "project_name"
	InfoProjectType  = "project_type"
	InfoProposalDate = "proposal_date"
	InfoPlanSetDate  = "plan_set_date"
	InfoCityStateZip = "city_state_zip"
	InfoPreparedBy   = "prepared_by"
)

// Calculator is the flat set of numeric-as-string calculator settings.
type Calculator map[string]string

// Calculator keys.
const (
	CalcProductMarkupDefault      = "product_markup_default"
	CalcBuckingRate               = "bucking_rate"
	CalcWaterproofingRate         = "waterproofing_rate"
	CalcInstallMarkup             = "install_markup"
	CalcRentals                   = "rentals"
	CalcOverrideBuckingCost       = "override_bucking_cost"
	CalcOverrideWaterproofingCost = "override_waterproofing_cost"
	CalcOverrideInstallTotal      = "override_install_total"
)

// DefaultCalculator returns the settings a new draft starts from.
func DefaultCalculator() Calculator {
	return Calculator{
		CalcProductMarkupDefault:      "0.5",
		CalcBuckingRate:               "",
		CalcWaterproofingRate:         "",
		CalcInstallMarkup:             "0.3",
		CalcRentals:                   "",
		CalcOverrideBuckingCost:       "",
		CalcOverrideWaterproofingCost: "",
		CalcOverrideInstallTotal:      "",
	}
}

// EuroPricingSection is one line of a product's EUR cost worksheet.
type EuroPricingSection struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Amount string `json:"amount"`
	IsMisc bool   `json:"isMisc"`
}

// EuroPricing is the per-product EUR cost worksheet.
type EuroPricing struct {
	LiveRate      string               `json:"liveRate"`
	Fluff         string               `json:"fluff"`
	AppliedRate   string               `json:"appliedRate"`
	Sections      []EuroPricingSection `json:"sections"`
	LastUpdatedOn string               `json:"lastUpdatedOn,omitempty"`
}

// ProductItem is one priced vendor/window line.
type ProductItem struct {
	ID       string `json:"id"`
	VendorID string `json:"vendorId"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Markup   string `json:"markup"`

	SplitFinish                bool   `json:"split_finish"`
	InteriorFrameColor         string `json:"interior_frame_color"`
	ExteriorFrameColor         string `json:"exterior_frame_color"`
	GlassType                  string `json:"glass_type"`
	GlassMakeup                string `json:"glass_makeup"`
	DoorHardwareColor          string `json:"door_hardware_color"`
	DoorHingeColor             string `json:"door_hinge_color"`
	WindowHardwareColor        string `json:"window_hardware_color"`
	StainlessOperatingHardware bool   `json:"stainless_operating_hardware"`
	HasScreens                 bool   `json:"has_screens"`

	EuroPricingEnabled bool         `json:"euroPricingEnabled"`
	EuroPricing        *EuroPricing `json:"euroPricing,omitempty"`
}

// BuckingLineItem is one bucking/waterproofing row. UnitType references a PanelType id.
type BuckingLineItem struct {
	ID             string `json:"id"`
	UnitType       string `json:"unit_type"`
	Qty            string `json:"qty"`
	Sqft           string `json:"sqft"`
	ReplacementQty string `json:"replacement_qty"`
	ClerestoryQty  string `json:"clerestory_qty"`
}

// ChangeOrderDraft is the reduced single-line pricing mode used for change orders.
type ChangeOrderDraft struct {
	VendorID     string `json:"vendorId"`
	VendorName   string `json:"vendorName"`
	VendorCost   string `json:"vendorCost"`
	VendorMarkup string `json:"vendorMarkup"`
	LaborCost    string `json:"laborCost"`
	LaborMarkup  string `json:"laborMarkup"`
}

// EstimateDraft is the caller-owned root input of the engine.
type EstimateDraft struct {
	Info        Info              `json:"info"`
	Products    []ProductItem     `json:"products"`
	Bucking     []BuckingLineItem `json:"bucking"`
	Calculator  Calculator        `json:"calculator"`
	ChangeOrder *ChangeOrderDraft `json:"changeOrder,omitempty"`
}

// PanelType is a team catalog unit type. Price is the team default per-unit install
// price; VendorPrices overrides it for specific vendors.
type PanelType struct {
	ID           string             `json:"id"`
	Label        string             `json:"label"`
	Price        float64            `json:"price"`
	VendorPrices map[string]float64 `json:"vendor_prices,omitempty"`
}

// Vendor is a team catalog vendor.
type Vendor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
