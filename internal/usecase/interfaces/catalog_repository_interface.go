package interfaces

import (
	"context"

	"cstone_estimating/internal/domain/entities"
)

//go:generate mockgen -source=catalog_repository_interface.go -destination=mocks/mock_catalog_repository_interface.go -package=mock_interfaces

// ICatalogRepository stores one TeamCatalog per team.
type ICatalogRepository interface {
	GetByTeamID(ctx context.Context, teamID string) (entities.TeamCatalog, error)
	Save(ctx context.Context, c entities.TeamCatalog) (entities.TeamCatalog, error)
}
