package response

import (
	"time"

	"cstone_estimating/internal/domain/entities"
	"cstone_estimating/internal/domain/pricing"
)

type BillingPaymentResponse struct {
	PaymentID     string    `json:"payment_id"`
	EstimateID    string    `json:"estimate_id"`
	Stage         string    `json:"stage"`
	Amount        float64   `json:"amount"`
	AmountDisplay string    `json:"amount_display"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromBillingPayment(p entities.BillingPayment) BillingPaymentResponse {
	return BillingPaymentResponse{
		PaymentID:     p.ID,
		EstimateID:    p.EstimateID,
		Stage:         p.Stage,
		Amount:        p.Amount,
		AmountDisplay: pricing.FormatCurrency(p.Amount),
		Date:          p.Date,
		Status:        string(p.Status),
		MPPayloadRaw:  string(p.MPPayloadRaw),
		MPPayload:     p.MPPayload,
	}
}

func FromBillingPayments(list []entities.BillingPayment) []BillingPaymentResponse {
	out := make([]BillingPaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromBillingPayment(p))
	}
	return out
}
