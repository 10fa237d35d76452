package response

import (
	"testing"
	"time"

	"cstone_estimating/internal/domain/entities"
	"cstone_estimating/internal/domain/pricing"
)

func TestFromEstimate(t *testing.T) {
	now := time.Now().UTC()
	draft := pricing.EstimateDraft{Info: pricing.Info{pricing.InfoProjectName: "Lakeside"}}
	computed := pricing.ComputeEstimate(draft, nil, nil)
	e := entities.Estimate{
		ID:                 "est-1",
		TeamID:             "team-1",
		Title:              "Lakeside",
		Payload:            pricing.NewStructuredEstimate(draft, computed),
		Computed:           &computed,
		TotalContractPrice: 6861.67,
		Status:             entities.EstimateStatusDraft,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	res := FromEstimate(e)
	if res.ID != "est-1" || res.TeamID != "team-1" || res.Status != "draft" || res.PayloadVersion != 2 {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if res.TotalContractPriceDisplay != "$6,861.67" {
		t.Fatalf("unexpected display total %q", res.TotalContractPriceDisplay)
	}
	if len(res.Payload) == 0 || res.Computed == nil {
		t.Fatalf("expected payload and computed, got %+v", res)
	}

	summary := FromEstimates([]entities.Estimate{e})
	if len(summary) != 1 || summary[0].Payload != nil || summary[0].Computed != nil {
		t.Fatalf("summaries must not carry the payload: %+v", summary)
	}
}

func TestFromCatalog(t *testing.T) {
	res := FromCatalog(entities.TeamCatalog{TeamID: "team-1"})
	if res.UpdatedAt != nil {
		t.Fatalf("never-saved catalog must not report an update time")
	}

	now := time.Now().UTC()
	res = FromCatalog(entities.TeamCatalog{TeamID: "team-1", UpdatedAt: now})
	if res.UpdatedAt == nil || !res.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected updated_at %v", res.UpdatedAt)
	}
}
