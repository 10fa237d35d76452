package entities

import (
	"time"

	"cstone_estimating/internal/domain/pricing"
)

// EstimateStatus represents the lifecycle of an estimate.
//
//   - draft: editable, recomputed on every save
//   - approved: accepted by the client, stage payments may be collected
//   - rejected / cancelled: terminal
type EstimateStatus string

const (
	EstimateStatusDraft     EstimateStatus = "draft"
	EstimateStatusApproved  EstimateStatus = "approved"
	EstimateStatusRejected  EstimateStatus = "rejected"
	EstimateStatusCancelled EstimateStatus = "cancelled"
)

// CanTransitionTo reports whether the lifecycle allows moving to next.
// Approved estimates may still be cancelled.
func (s EstimateStatus) CanTransitionTo(next EstimateStatus) bool {
	switch s {
	case EstimateStatusDraft:
		return next == EstimateStatusApproved || next == EstimateStatusRejected || next == EstimateStatusCancelled
	case EstimateStatusApproved:
		return next == EstimateStatusCancelled
	default:
		return false
	}
}

// Estimate is a team's proposal persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (team_id-index): team_id
//
// Payload is the versioned document (legacy values bag or structured draft).
// Computed is only set for structured payloads; legacy estimates bypass the engine
// and carry their total in the values bag.
type Estimate struct {
	ID                 string                    `json:"id"`
	TeamID             string                    `json:"team_id"`
	Title              string                    `json:"title"`
	Payload            pricing.Payload           `json:"payload"`
	Computed           *pricing.ComputedEstimate `json:"computed,omitempty"`
	TotalContractPrice float64                   `json:"total_contract_price"`
	Status             EstimateStatus            `json:"status"`
	CreatedAt          time.Time                 `json:"created_at"`
	UpdatedAt          time.Time                 `json:"updated_at"`
}

// Structured returns the structured payload, if that is what the estimate holds.
func (e Estimate) Structured() (pricing.StructuredEstimate, bool) {
	s, ok := e.Payload.(pricing.StructuredEstimate)
	return s, ok
}

// PayloadVersion is 0 when no payload is attached.
func (e Estimate) PayloadVersion() int {
	if e.Payload == nil {
		return 0
	}
	return e.Payload.PayloadVersion()
}
