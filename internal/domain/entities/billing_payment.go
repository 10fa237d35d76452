package entities

import (
	"encoding/json"
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// PaymentStatusFromProvider maps a Mercado Pago payment status.
func PaymentStatusFromProvider(status string) PaymentStatus {
	switch status {
	case "approved", "authorized":
		return PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return PaymentStatusDenied
	default:
		return PaymentStatusPending
	}
}

// BillingPayment is one collected schedule stage of an approved estimate.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (estimate_id-index): estimate_id
//
// MPPayloadRaw keeps the provider response for audit; MPPayload is its parsed form.
type BillingPayment struct {
	ID           string                 `json:"id"`
	EstimateID   string                 `json:"estimate_id"`
	Stage        string                 `json:"stage"`
	Amount       float64                `json:"amount"`
	Date         time.Time              `json:"date"`
	Status       PaymentStatus          `json:"status"`
	MPPayloadRaw json.RawMessage        `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}
