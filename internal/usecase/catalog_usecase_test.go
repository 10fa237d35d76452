package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"cstone_estimating/internal/domain/entities"
	"cstone_estimating/internal/domain/pricing"
	mock_interfaces "cstone_estimating/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestCatalogUseCase_Get(t *testing.T) {
	t.Run("invalid team", func(t *testing.T) {
		uc := NewCatalogUseCase(nil, zap.NewNop())
		if _, err := uc.Get(context.Background(), " "); !errors.Is(err, ErrInvalidTeamID) {
			t.Fatalf("expected ErrInvalidTeamID, got %v", err)
		}
	})

	t.Run("never saved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockICatalogRepository(ctrl)
		uc := NewCatalogUseCase(repo, zap.NewNop())
		repo.EXPECT().GetByTeamID(gomock.Any(), "team-1").Return(entities.TeamCatalog{}, nil)

		c, err := uc.Get(context.Background(), "team-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.TeamID != "team-1" || c.PanelTypes == nil || c.MarginThresholds.ProductMarginMin != pricing.DefaultProductMarginMin {
			t.Fatalf("unexpected empty catalog: %+v", c)
		}
	})

	t.Run("stored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockICatalogRepository(ctrl)
		uc := NewCatalogUseCase(repo, zap.NewNop())
		repo.EXPECT().GetByTeamID(gomock.Any(), "team-1").Return(teamCatalog(), nil)

		c, err := uc.Get(context.Background(), "team-1")
		if err != nil || len(c.PanelTypes) != 2 {
			t.Fatalf("unexpected catalog %+v (%v)", c, err)
		}
	})
}

func TestCatalogUseCase_Save(t *testing.T) {
	t.Run("normalizes before saving", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockICatalogRepository(ctrl)
		uc := NewCatalogUseCase(repo, zap.NewNop())

		nan := math.NaN()
		high := 1.4
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.TeamCatalog) (entities.TeamCatalog, error) {
				if c.TeamID != "team-1" || c.UpdatedAt.IsZero() {
					t.Fatalf("unexpected catalog: %+v", c)
				}
				if c.PanelTypes[0].ID == "" || c.PanelTypes[0].Label != "Window" {
					t.Fatalf("expected generated id and trimmed label, got %+v", c.PanelTypes[0])
				}
				if _, ok := c.PanelTypes[0].VendorPrices[""]; ok {
					t.Fatalf("blank vendor price keys must be dropped")
				}
				if c.Vendors[0].ID == "" {
					t.Fatalf("expected generated vendor id")
				}
				if len(c.ProjectTypes) != 2 {
					t.Fatalf("expected deduplicated project types, got %v", c.ProjectTypes)
				}
				want := pricing.MarginThresholds{ProductMarginMin: 1, InstallMarginMin: pricing.DefaultInstallMarginMin, ProjectMarginMin: pricing.DefaultProjectMarginMin}
				if c.MarginThresholds != want {
					t.Fatalf("expected normalized thresholds %+v, got %+v", want, c.MarginThresholds)
				}
				if len(c.PreparedBy) != 1 || c.PreparedBy["JA"] != "Jordan Avery" {
					t.Fatalf("unexpected prepared by %+v", c.PreparedBy)
				}
				return c, nil
			},
		)

		_, err := uc.Save(context.Background(), "team-1", CatalogInput{
			PanelTypes:       []pricing.PanelType{{Label: " Window ", Price: 150, VendorPrices: map[string]float64{"v-1": 175, " ": 1}}},
			Vendors:          []pricing.Vendor{{Name: "Schüco"}},
			ProjectTypes:     []string{"New Construction", "new construction", "Change Order", " "},
			MarginThresholds: &pricing.MarginThresholdsInput{ProductMarginMin: &high, InstallMarginMin: &nan},
			PreparedBy:       map[string]string{" JA ": "Jordan Avery", "XX": " "},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	cases := []struct {
		name string
		in   CatalogInput
	}{
		{name: "unit type without label", in: CatalogInput{PanelTypes: []pricing.PanelType{{ID: "pt-1"}}}},
		{name: "duplicate unit type", in: CatalogInput{PanelTypes: []pricing.PanelType{{ID: "pt-1", Label: "A"}, {ID: "pt-1", Label: "B"}}}},
		{name: "negative price", in: CatalogInput{PanelTypes: []pricing.PanelType{{ID: "pt-1", Label: "A", Price: -1}}}},
		{name: "negative vendor price", in: CatalogInput{PanelTypes: []pricing.PanelType{{ID: "pt-1", Label: "A", VendorPrices: map[string]float64{"v-1": -5}}}}},
		{name: "vendor without name", in: CatalogInput{Vendors: []pricing.Vendor{{ID: "v-1"}}}},
		{name: "duplicate vendor", in: CatalogInput{Vendors: []pricing.Vendor{{ID: "v-1", Name: "A"}, {ID: "v-1", Name: "B"}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewCatalogUseCase(nil, zap.NewNop())
			if _, err := uc.Save(context.Background(), "team-1", tc.in); !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockICatalogRepository(ctrl)
		uc := NewCatalogUseCase(repo, zap.NewNop())
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(entities.TeamCatalog{}, errors.New("db"))

		if _, err := uc.Save(context.Background(), "team-1", CatalogInput{}); err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}
