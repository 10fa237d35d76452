package pricing

import "github.com/shopspring/decimal"

// Schedule stage keys, also used as pdfValues keys and payment stage names.
const (
	StageMobilizationDeposit = "mobilization_deposit"
	StageMaterialDraw1       = "material_draw_1"
	StageMaterialDraw2       = "material_draw_2"
	StageMaterialDraw3       = "material_draw_3"
	StageInstallationDraw1   = "installation_draw_1"
	StageInstallationDraw2   = "installation_draw_2"
	StageFinalPayment        = "final_payment"
)

var (
	mobilizationShare = decimal.RequireFromString("0.10")
	materialShares    = [3]decimal.Decimal{
		decimal.RequireFromString("0.30"),
		decimal.RequireFromString("0.25"),
		decimal.RequireFromString("0.25"),
	}
	installationShares = [2]decimal.Decimal{
		decimal.RequireFromString("0.40"),
		decimal.RequireFromString("0.40"),
	}
)

// Schedule is the staged payment plan of a contract.
type Schedule struct {
	MobilizationDeposit float64 `json:"mobilization_deposit"`
	MaterialDraw1       float64 `json:"material_draw_1"`
	MaterialDraw2       float64 `json:"material_draw_2"`
	MaterialDraw3       float64 `json:"material_draw_3"`
	InstallationDraw1   float64 `json:"installation_draw_1"`
	InstallationDraw2   float64 `json:"installation_draw_2"`
	FinalPayment        float64 `json:"final_payment"`
}

// ScheduleStage is one payable stage.
type ScheduleStage struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// BuildSchedule splits the contract total into its stages. The deposit is a share
// of the total, material draws are shares of the product price and installation
// draws shares of the installation price, each rounded to the cent. The final
// payment is whatever remains, so the stages always add up to total exactly.
func BuildSchedule(total, productPrice, installationPrice float64) Schedule {
	t := roundCents(toDecimal(total))
	p := toDecimal(productPrice)
	i := toDecimal(installationPrice)

	// A stage never takes more than what is left of the total.
	allocated := decimal.Zero
	take := func(amount decimal.Decimal) decimal.Decimal {
		amount = roundCents(amount)
		if left := t.Sub(allocated); amount.GreaterThan(left) {
			amount = decimal.Max(left, decimal.Zero)
		}
		allocated = allocated.Add(amount)
		return amount
	}

	deposit := take(t.Mul(mobilizationShare))
	m1 := take(p.Mul(materialShares[0]))
	m2 := take(p.Mul(materialShares[1]))
	m3 := take(p.Mul(materialShares[2]))
	i1 := take(i.Mul(installationShares[0]))
	i2 := take(i.Mul(installationShares[1]))
	final := t.Sub(allocated)

	return Schedule{
		MobilizationDeposit: deposit.InexactFloat64(),
		MaterialDraw1:       m1.InexactFloat64(),
		MaterialDraw2:       m2.InexactFloat64(),
		MaterialDraw3:       m3.InexactFloat64(),
		InstallationDraw1:   i1.InexactFloat64(),
		InstallationDraw2:   i2.InexactFloat64(),
		FinalPayment:        final.InexactFloat64(),
	}
}

// Stages lists the schedule in payment order.
func (s Schedule) Stages() []ScheduleStage {
	return []ScheduleStage{
		{Key: StageMobilizationDeposit, Label: "Mobilization deposit", Amount: s.MobilizationDeposit},
		{Key: StageMaterialDraw1, Label: "Material draw 1", Amount: s.MaterialDraw1},
		{Key: StageMaterialDraw2, Label: "Material draw 2", Amount: s.MaterialDraw2},
		{Key: StageMaterialDraw3, Label: "Material draw 3", Amount: s.MaterialDraw3},
		{Key: StageInstallationDraw1, Label: "Installation draw 1", Amount: s.InstallationDraw1},
		{Key: StageInstallationDraw2, Label: "Installation draw 2", Amount: s.InstallationDraw2},
		{Key: StageFinalPayment, Label: "Final payment", Amount: s.FinalPayment},
	}
}

// Stage looks a stage up by key.
func (s Schedule) Stage(key string) (ScheduleStage, bool) {
	for _, st := range s.Stages() {
		if st.Key == key {
			return st, true
		}
	}
	return ScheduleStage{}, false
}

// Total adds the stages back up in decimal, to the cent.
func (s Schedule) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, st := range s.Stages() {
		sum = sum.Add(roundCents(toDecimal(st.Amount)))
	}
	return sum
}
