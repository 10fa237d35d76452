package response

import (
	"encoding/json"
	"time"

	"cstone_estimating/internal/domain/entities"
	"cstone_estimating/internal/domain/pricing"
)

type EstimateResponse struct {
	ID                        string                    `json:"id"`
	TeamID                    string                    `json:"team_id"`
	Title                     string                    `json:"title"`
	Status                    string                    `json:"status"`
	PayloadVersion            int                       `json:"payload_version"`
	Payload                   json.RawMessage           `json:"payload,omitempty"`
	Computed                  *pricing.ComputedEstimate `json:"computed,omitempty"`
	TotalContractPrice        float64                   `json:"total_contract_price"`
	TotalContractPriceDisplay string                    `json:"total_contract_price_display"`
	CreatedAt                 time.Time                 `json:"created_at"`
	UpdatedAt                 time.Time                 `json:"updated_at"`
}

// FromEstimate maps the full estimate, payload included.
func FromEstimate(e entities.Estimate) EstimateResponse {
	res := FromEstimateSummary(e)
	if e.Payload != nil {
		if raw, err := pricing.EncodePayload(e.Payload); err == nil {
			res.Payload = raw
		}
	}
	res.Computed = e.Computed
	return res
}

// FromEstimateSummary leaves out the payload and the computed snapshot.
func FromEstimateSummary(e entities.Estimate) EstimateResponse {
	return EstimateResponse{
		ID:                        e.ID,
		TeamID:                    e.TeamID,
		Title:                     e.Title,
		Status:                    string(e.Status),
		PayloadVersion:            e.PayloadVersion(),
		TotalContractPrice:        e.TotalContractPrice,
		TotalContractPriceDisplay: pricing.FormatCurrency(e.TotalContractPrice),
		CreatedAt:                 e.CreatedAt,
		UpdatedAt:                 e.UpdatedAt,
	}
}

func FromEstimates(list []entities.Estimate) []EstimateResponse {
	out := make([]EstimateResponse, 0, len(list))
	for _, e := range list {
		out = append(out, FromEstimateSummary(e))
	}
	return out
}

type PDFValuesResponse struct {
	EstimateID string            `json:"estimate_id"`
	Values     map[string]string `json:"values"`
}

type CatalogResponse struct {
	TeamID           string                   `json:"team_id"`
	PanelTypes       []pricing.PanelType      `json:"panel_types"`
	Vendors          []pricing.Vendor         `json:"vendors"`
	ProjectTypes     []string                 `json:"project_types"`
	MarginThresholds pricing.MarginThresholds `json:"margin_thresholds"`
	PreparedBy       map[string]string        `json:"prepared_by"`
	UpdatedAt        *time.Time               `json:"updated_at,omitempty"`
}

func FromCatalog(c entities.TeamCatalog) CatalogResponse {
	res := CatalogResponse{
		TeamID:           c.TeamID,
		PanelTypes:       c.PanelTypes,
		Vendors:          c.Vendors,
		ProjectTypes:     c.ProjectTypes,
		MarginThresholds: c.MarginThresholds,
		PreparedBy:       c.PreparedBy,
	}
	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		res.UpdatedAt = &updatedAt
	}
	return res
}
