package request

import (
	"bytes"
	"encoding/json"
	"errors"
)

var (
	ErrPaymentBodyNotJSON  = errors.New("request body is not valid json")
	ErrEmptyWrappedPayload  = errors.New("mp_payload cannot be empty")
)

// BillingPaymentCreateRequest wraps the Mercado Pago payload of a stage payment.
//
// The body may also be the raw Mercado Pago payload itself.
type BillingPaymentCreateRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}

// ParseMPPayload extracts the Mercado Pago payload from a request body. An empty
// body yields an empty object.
func ParseMPPayload(raw []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(trimmed) {
		return nil, ErrPaymentBodyNotJSON
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err == nil {
		if _, ok := envelope["mp_payload"]; ok {
			var req BillingPaymentCreateRequest
			if err := json.Unmarshal(trimmed, &req); err != nil {
				return nil, err
			}
			wrapped := bytes.TrimSpace(req.MPPayload)
			if len(wrapped) == 0 || string(wrapped) == "null" {
				return nil, ErrEmptyWrappedPayload
			}
			return json.RawMessage(wrapped), nil
		}
	}
	return json.RawMessage(trimmed), nil
}
