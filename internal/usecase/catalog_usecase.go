package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"cstone_estimating/internal/domain/entities"
	"cstone_estimating/internal/domain/pricing"
	"cstone_estimating/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=catalog_usecase.go -destination=../adapter/http/handlers/mocks/mock_catalog_usecase.go -package=mocks

var ErrInvalidCatalog = errors.New("invalid team catalog")

// CatalogInput is a catalog as submitted by a team admin.
type CatalogInput struct {
	PanelTypes       []pricing.PanelType            `json:"panel_types"`
	Vendors          []pricing.Vendor               `json:"vendors"`
	ProjectTypes     []string                       `json:"project_types"`
	MarginThresholds *pricing.MarginThresholdsInput `json:"margin_thresholds"`
	PreparedBy       map[string]string              `json:"prepared_by"`
}

type ICatalogUseCase interface {
	Get(ctx context.Context, teamID string) (entities.TeamCatalog, error)
	Save(ctx context.Context, teamID string, in CatalogInput) (entities.TeamCatalog, error)
}

type CatalogUseCase struct {
	repo   interfaces.ICatalogRepository
	logger *zap.Logger
}

var _ ICatalogUseCase = (*CatalogUseCase)(nil)

func NewCatalogUseCase(repo interfaces.ICatalogRepository, logger *zap.Logger) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, logger: logger}
}

// Get returns the team catalog, or an empty one with default thresholds when the
// team never saved one.
func (u *CatalogUseCase) Get(ctx context.Context, teamID string) (entities.TeamCatalog, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return entities.TeamCatalog{}, ErrInvalidTeamID
	}

	c, err := u.repo.GetByTeamID(ctx, teamID)
	if err != nil {
		return entities.TeamCatalog{}, err
	}
	if c.TeamID == "" {
		return entities.TeamCatalog{
			TeamID:           teamID,
			PanelTypes:       []pricing.PanelType{},
			Vendors:          []pricing.Vendor{},
			ProjectTypes:     []string{},
			MarginThresholds: pricing.NormalizeMarginThresholds(nil),
			PreparedBy:       map[string]string{},
		}, nil
	}
	return c, nil
}

func (u *CatalogUseCase) Save(ctx context.Context, teamID string, in CatalogInput) (entities.TeamCatalog, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return entities.TeamCatalog{}, ErrInvalidTeamID
	}

	panelTypes, err := normalizePanelTypes(in.PanelTypes)
	if err != nil {
		return entities.TeamCatalog{}, err
	}
	vendors, err := normalizeVendors(in.Vendors)
	if err != nil {
		return entities.TeamCatalog{}, err
	}

	c := entities.TeamCatalog{
		TeamID:           teamID,
		PanelTypes:       panelTypes,
		Vendors:          vendors,
		ProjectTypes:     uniqueTrimmed(in.ProjectTypes),
		MarginThresholds: pricing.NormalizeMarginThresholds(in.MarginThresholds),
		PreparedBy:       normalizePreparedBy(in.PreparedBy),
		UpdatedAt:        time.Now().UTC(),
	}

	saved, err := u.repo.Save(ctx, c)
	if err != nil {
		u.logger.Error("[catalog][usecase] save failed", zap.String("team_id", teamID), zap.Error(err))
		return entities.TeamCatalog{}, err
	}
	u.logger.Info("[catalog][usecase] saved",
		zap.String("team_id", teamID),
		zap.Int("panel_types", len(saved.PanelTypes)),
		zap.Int("vendors", len(saved.Vendors)),
	)
	return saved, nil
}

func normalizePanelTypes(in []pricing.PanelType) ([]pricing.PanelType, error) {
	out := make([]pricing.PanelType, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, pt := range in {
		pt.ID = strings.TrimSpace(pt.ID)
		pt.Label = strings.TrimSpace(pt.Label)
		if pt.ID == "" {
			pt.ID = uuid.NewString()
		}
		if pt.Label == "" {
			return nil, fmt.Errorf("%w: unit type %s has no label", ErrInvalidCatalog, pt.ID)
		}
		if seen[pt.ID] {
			return nil, fmt.Errorf("%w: duplicate unit type id %s", ErrInvalidCatalog, pt.ID)
		}
		if !validPrice(pt.Price) {
			return nil, fmt.Errorf("%w: unit type %s has an invalid price", ErrInvalidCatalog, pt.ID)
		}
		prices := make(map[string]float64, len(pt.VendorPrices))
		for vendorID, price := range pt.VendorPrices {
			vendorID = strings.TrimSpace(vendorID)
			if vendorID == "" {
				continue
			}
			if !validPrice(price) {
				return nil, fmt.Errorf("%w: unit type %s has an invalid price for vendor %s", ErrInvalidCatalog, pt.ID, vendorID)
			}
			prices[vendorID] = price
		}
		pt.VendorPrices = prices
		seen[pt.ID] = true
		out = append(out, pt)
	}
	return out, nil
}

func normalizeVendors(in []pricing.Vendor) ([]pricing.Vendor, error) {
	out := make([]pricing.Vendor, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, v := range in {
		v.ID = strings.TrimSpace(v.ID)
		v.Name = strings.TrimSpace(v.Name)
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
		if v.Name == "" {
			return nil, fmt.Errorf("%w: vendor %s has no name", ErrInvalidCatalog, v.ID)
		}
		if seen[v.ID] {
			return nil, fmt.Errorf("%w: duplicate vendor id %s", ErrInvalidCatalog, v.ID)
		}
		seen[v.ID] = true
		out = append(out, v)
	}
	return out, nil
}

func normalizePreparedBy(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for initials, name := range in {
		initials = strings.TrimSpace(initials)
		name = strings.TrimSpace(name)
		if initials == "" || name == "" {
			continue
		}
		out[initials] = name
	}
	return out
}

func uniqueTrimmed(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[strings.ToLower(s)] {
			continue
		}
		seen[strings.ToLower(s)] = true
		out = append(out, s)
	}
	return out
}

func validPrice(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
