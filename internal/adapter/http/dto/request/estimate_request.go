package request

import (
	"encoding/json"

	"cstone_estimating/internal/domain/pricing"
	"cstone_estimating/internal/usecase"
)

// PreviewEstimateRequest prices a draft against the team catalog without saving it.
type PreviewEstimateRequest struct {
	TeamID string                `json:"team_id" binding:"required"`
	Draft  pricing.EstimateDraft `json:"draft"`
}

// CreateEstimateRequest carries a versioned estimate document. Untagged
// documents are accepted: a calculator marks them structured, otherwise legacy.
type CreateEstimateRequest struct {
	TeamID  string          `json:"team_id" binding:"required"`
	Payload json.RawMessage `json:"payload" binding:"required"`
}

type UpdateEstimateRequest struct {
	Draft pricing.EstimateDraft `json:"draft"`
}

type CatalogRequest struct {
	PanelTypes       []pricing.PanelType            `json:"panel_types"`
	Vendors          []pricing.Vendor               `json:"vendors"`
	ProjectTypes     []string                       `json:"project_types"`
	MarginThresholds *pricing.MarginThresholdsInput `json:"margin_thresholds"`
	PreparedBy       map[string]string              `json:"prepared_by"`
}

func (r CatalogRequest) ToInput() usecase.CatalogInput {
	return usecase.CatalogInput{
		PanelTypes:       r.PanelTypes,
		Vendors:          r.Vendors,
		ProjectTypes:     r.ProjectTypes,
		MarginThresholds: r.MarginThresholds,
		PreparedBy:       r.PreparedBy,
	}
}

