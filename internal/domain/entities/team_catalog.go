package entities

import (
	"time"

	"cstone_estimating/internal/domain/pricing"
)

// TeamCatalog is the per-team reference data the engine prices against.
//
// Storage model (DynamoDB):
//   - PK: team_id
type TeamCatalog struct {
	TeamID           string                   `json:"team_id"`
	PanelTypes       []pricing.PanelType      `json:"panel_types"`
	Vendors          []pricing.Vendor         `json:"vendors"`
	ProjectTypes     []string                 `json:"project_types"`
	MarginThresholds pricing.MarginThresholds `json:"margin_thresholds"`
	PreparedBy       map[string]string        `json:"prepared_by"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// Thresholds returns the catalog thresholds in the engine's input shape. A
// catalog that was never saved yields nil so engine defaults apply.
func (c TeamCatalog) Thresholds() *pricing.MarginThresholdsInput {
	if c.TeamID == "" {
		return nil
	}
	in := c.MarginThresholds.Input()
	return &in
}
