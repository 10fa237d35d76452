package pricing

import "github.com/shopspring/decimal"

// Pricing modes reported in the breakdown.
const (
	ModeStandard    = "standard"
	ModeChangeOrder = "change_order"
)

// Totals are the contract-level amounts.
type Totals struct {
	ProductPrice       float64 `json:"product_price"`
	BuckingPrice       float64 `json:"bucking_price"`
	WaterproofingPrice float64 `json:"waterproofing_price"`
	InstallationPrice  float64 `json:"installation_price"`
	TotalLinealFt      float64 `json:"total_lineal_ft"`
	VendorTotal        float64 `json:"vendor_total"`
	LaborTotal         float64 `json:"labor_total"`
	TotalContractPrice float64 `json:"total_contract_price"`
}

// Breakdown keeps the intermediate values behind the totals.
type Breakdown struct {
	Mode                    string             `json:"mode"`
	Products                []ProductLine      `json:"products"`
	ProductCost             float64            `json:"product_cost"`
	Bucking                 []BuckingLine      `json:"bucking"`
	BuckingRate             float64            `json:"bucking_rate"`
	WaterproofingRate       float64            `json:"waterproofing_rate"`
	BuckingOverridden       bool               `json:"bucking_overridden"`
	WaterproofingOverridden bool               `json:"waterproofing_overridden"`
	Installation            InstallBreakdown   `json:"installation"`
	ChangeOrder             *ChangeOrderTotals `json:"change_order,omitempty"`
	ProjectCost             float64            `json:"project_cost"`
}

// ComputedEstimate is everything derived from a draft. Field names are part of
// the persisted payload and of the proposal document contract.
type ComputedEstimate struct {
	Totals           Totals            `json:"totals"`
	Schedule         *Schedule         `json:"schedule"`
	Breakdown        Breakdown         `json:"breakdown"`
	PanelCounts      []PanelCount      `json:"panelCounts"`
	Margins          Margins           `json:"margins"`
	MarginChecks     MarginChecks      `json:"marginChecks"`
	MarginThresholds MarginThresholds  `json:"marginThresholds"`
	PDFValues        map[string]string `json:"pdfValues"`
}

// Option tunes the document values produced alongside the numbers.
type Option func(*options)

type options struct {
	preparedByMap map[string]string
	missingValue  string
}

// WithPreparedByMap maps prepared_by initials to the full name printed on proposals.
func WithPreparedByMap(m map[string]string) Option {
	return func(o *options) { o.preparedByMap = m }
}

// WithMissingValue sets the placeholder used for blank document fields.
func WithMissingValue(v string) Option {
	return func(o *options) { o.missingValue = v }
}

// ComputeEstimate derives totals, payment schedule, panel counts, margins and
// document values from a draft. A change-order project type bypasses products,
// bucking and installation and produces no schedule.
func ComputeEstimate(draft EstimateDraft, panelTypes []PanelType, thresholds *MarginThresholdsInput, opts ...Option) ComputedEstimate {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	panelCounts := BuildPanelCounts(draft.Bucking, panelTypes)

	var out ComputedEstimate
	if IsChangeOrderProjectType(draft.Info[InfoProjectType]) {
		out = computeChangeOrder(draft.ChangeOrder)
	} else {
		out = computeStandard(draft, panelTypes, panelCounts)
	}

	out.PanelCounts = panelCounts
	out.MarginThresholds = NormalizeMarginThresholds(thresholds)
	out.MarginChecks = out.Margins.Check(out.MarginThresholds)
	out.PDFValues = buildPDFValues(draft.Info, out, o)
	return out
}

func computeStandard(draft EstimateDraft, panelTypes []PanelType, panelCounts []PanelCount) ComputedEstimate {
	calc := draft.Calculator

	productLines, productPrice, productCost := priceProducts(draft.Products, calc)
	buckingLines, linealFt := measureBucking(draft.Bucking)
	buckingPrice, buckingOverridden := overrideOrRate(calc, CalcOverrideBuckingCost, CalcBuckingRate, linealFt)
	waterproofingPrice, waterproofingOverridden := overrideOrRate(calc, CalcOverrideWaterproofingCost, CalcWaterproofingRate, linealFt)
	install := priceInstallation(panelCounts, panelTypes, PrimaryVendorID(draft.Products), calc)

	total := decimal.Sum(
		toDecimal(productPrice),
		toDecimal(buckingPrice),
		toDecimal(waterproofingPrice),
		toDecimal(install.Price),
	).RoundCeil(2).InexactFloat64()

	schedule := BuildSchedule(total, productPrice, install.Price)

	installCost := install.UnitCost + install.Rentals
	projectCost := productCost + installCost + buckingPrice + waterproofingPrice

	return ComputedEstimate{
		Totals: Totals{
			ProductPrice:       productPrice,
			BuckingPrice:       buckingPrice,
			WaterproofingPrice: waterproofingPrice,
			InstallationPrice:  install.Price,
			TotalLinealFt:      linealFt,
			TotalContractPrice: total,
		},
		Schedule: &schedule,
		Breakdown: Breakdown{
			Mode:                    ModeStandard,
			Products:                productLines,
			ProductCost:             productCost,
			Bucking:                 buckingLines,
			BuckingRate:             ToNumber(calc[CalcBuckingRate]),
			WaterproofingRate:       ToNumber(calc[CalcWaterproofingRate]),
			BuckingOverridden:       buckingOverridden,
			WaterproofingOverridden: waterproofingOverridden,
			Installation:            install,
			ProjectCost:             projectCost,
		},
		Margins: Margins{
			ProductMargin: Margin(productCost, productPrice),
			InstallMargin: Margin(installCost, install.Price),
			ProjectMargin: Margin(projectCost, total),
		},
	}
}

func computeChangeOrder(co *ChangeOrderDraft) ComputedEstimate {
	if co == nil {
		co = &ChangeOrderDraft{}
	}
	totals := ComputeChangeOrderTotals(*co)
	vendorCost := ToNumber(co.VendorCost)
	laborCost := ToNumber(co.LaborCost)

	return ComputedEstimate{
		Totals: Totals{
			VendorTotal:        totals.VendorTotal,
			LaborTotal:         totals.LaborTotal,
			TotalContractPrice: totals.Total,
		},
		Breakdown: Breakdown{
			Mode:        ModeChangeOrder,
			Products:    []ProductLine{},
			ProductCost: vendorCost,
			Bucking:     []BuckingLine{},
			ChangeOrder: &totals,
			ProjectCost: vendorCost + laborCost,
		},
		Margins: Margins{
			ProductMargin: Margin(vendorCost, totals.VendorTotal),
			InstallMargin: Margin(laborCost, totals.LaborTotal),
			ProjectMargin: Margin(vendorCost+laborCost, totals.Total),
		},
	}
}
