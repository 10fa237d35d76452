package interfaces

import (
	"context"

	"cstone_estimating/internal/domain/entities"
)

//go:generate mockgen -source=estimate_repository_interface.go -destination=mocks/mock_estimate_repository_interface.go -package=mock_interfaces

// IEstimateRepository abstracts DynamoDB persistence for Estimate.
//
// Not-found and failed preconditions are reported as an empty Estimate (ID == "").
type IEstimateRepository interface {
	Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	ListByTeamID(ctx context.Context, teamID string) ([]entities.Estimate, error)
	// UpdateDraft replaces payload, computed amounts and title while the estimate is still a draft.
	UpdateDraft(ctx context.Context, e entities.Estimate) (entities.Estimate, error)
	// UpdateStatus moves an estimate from status `from` to `to`.
	UpdateStatus(ctx context.Context, id string, from, to entities.EstimateStatus) (entities.Estimate, error)
}
