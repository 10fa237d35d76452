package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Document-only keys.
const (
	PDFPlanSetDateLine = "plan_set_date_line"
	PDFTotalLinealFt   = "total_lineal_ft"
)

var dateLayouts = []string{"2006-01-02", "1/2/2006", "1/2/06", time.RFC3339}

func buildPDFValues(info Info, c ComputedEstimate, o options) map[string]string {
	missing := o.missingValue
	values := make(map[string]string, len(info)+20)

	for k, v := range info {
		values[k] = FormatText(v, missing)
	}
	for _, k := range []string{InfoPreparedFor, InfoProjectName, InfoProjectType, InfoCityStateZip} {
		if _, ok := values[k]; !ok {
			values[k] = missing
		}
	}

	values[InfoProposalDate] = FormatDateCover(info[InfoProposalDate], missing)
	planSet := FormatDatePlan(info[InfoPlanSetDate], missing)
	values[InfoPlanSetDate] = planSet
	if planSet != "" && planSet != missing {
		values[PDFPlanSetDateLine] = "Estimate based on plan set dated: " + planSet
	} else {
		values[PDFPlanSetDateLine] = missing
	}
	values[InfoPreparedBy] = FormatInitials(info[InfoPreparedBy], o.preparedByMap, missing)

	t := c.Totals
	values["total_contract_price"] = FormatCurrency(t.TotalContractPrice)
	if c.Breakdown.Mode == ModeChangeOrder {
		values["vendor_total"] = FormatCurrency(t.VendorTotal)
		values["labor_total"] = FormatCurrency(t.LaborTotal)
		return values
	}

	values["product_price"] = FormatCurrency(t.ProductPrice)
	values["bucking_price"] = FormatCurrency(t.BuckingPrice)
	values["waterproofing_price"] = FormatCurrency(t.WaterproofingPrice)
	values["installation_price"] = FormatCurrency(t.InstallationPrice)
	values[PDFTotalLinealFt] = decimal.NewFromFloat(t.TotalLinealFt).StringFixed(2)
	if c.Schedule != nil {
		for _, st := range c.Schedule.Stages() {
			values[st.Key] = FormatCurrency(st.Amount)
		}
	}
	return values
}

// FormatCurrency renders "$1,234.56", rounding half away from zero to the cent.
func FormatCurrency(amount float64) string {
	d := decimal.NewFromFloat(finite(amount)).Round(2)
	formatted := humanize.FormatFloat("#,###.##", d.Abs().InexactFloat64())
	if d.IsNegative() {
		return "-$" + formatted
	}
	return "$" + formatted
}

// FormatText trims a value, substituting missing for blanks.
func FormatText(value, missing string) string {
	if text := strings.TrimSpace(value); text != "" {
		return text
	}
	return missing
}

// FormatDateCover renders the cover-page date style, e.g. "MARCH 04, 2025".
func FormatDateCover(value, missing string) string {
	t, ok := parseDate(value)
	if !ok {
		return missing
	}
	return fmt.Sprintf("%s %02d, %d", strings.ToUpper(t.Month().String()), t.Day(), t.Year())
}

// FormatDatePlan renders the body date style, e.g. "March 4, 2025".
func FormatDatePlan(value, missing string) string {
	t, ok := parseDate(value)
	if !ok {
		return missing
	}
	return t.Format("January 2, 2006")
}

// FormatInitials expands prepared-by initials through the team map, keeping
// unknown initials as typed.
func FormatInitials(value string, preparedBy map[string]string, missing string) string {
	initials := strings.TrimSpace(value)
	if initials == "" {
		return missing
	}
	if name, ok := preparedBy[initials]; ok {
		return name
	}
	return initials
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
