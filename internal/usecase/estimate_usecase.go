package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cstone_estimating/internal/domain/entities"
	"cstone_estimating/internal/domain/pricing"
	"cstone_estimating/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=estimate_usecase.go -destination=../adapter/http/handlers/mocks/mock_estimate_usecase.go -package=mocks

var (
	ErrEstimateNotFound        = errors.New("estimate not found")
	ErrInvalidEstimateID       = errors.New("invalid estimate id")
	ErrInvalidTeamID           = errors.New("invalid team id")
	ErrInvalidEstimatePayload  = errors.New("invalid estimate payload")
	ErrLegacyEstimate          = errors.New("legacy estimates are read-only")
	ErrEstimateNotEditable     = errors.New("estimate is no longer a draft")
	ErrInvalidStatusTransition = errors.New("invalid estimate status transition")
	ErrEstimateConflict        = errors.New("estimate changed concurrently")
	ErrProductNotFound         = errors.New("product not found")
	ErrEuroPricingDisabled     = errors.New("euro pricing is not enabled for this product")
	ErrExchangeRateUnavailable = errors.New("exchange rate unavailable")
)

// EstimatePreview is a normalized draft with its computation, nothing persisted.
type EstimatePreview struct {
	Draft    pricing.EstimateDraft    `json:"draft"`
	Computed pricing.ComputedEstimate `json:"computed"`
}

// IEstimateUseCase exposes the estimate lifecycle:
//   - Preview recomputes an unsaved draft against the team catalog
//   - Create / UpdateDraft persist a draft together with its computation
//   - Approve / Reject / Cancel drive the status lifecycle
//   - RefreshEuroRate pulls the live EUR rate into one product's worksheet
type IEstimateUseCase interface {
	Preview(ctx context.Context, teamID string, draft pricing.EstimateDraft) (EstimatePreview, error)
	Create(ctx context.Context, teamID string, payload json.RawMessage) (entities.Estimate, error)
	UpdateDraft(ctx context.Context, id string, draft pricing.EstimateDraft) (entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	ListByTeamID(ctx context.Context, teamID string) ([]entities.Estimate, error)
	PDFValues(ctx context.Context, id string) (map[string]string, error)
	Approve(ctx context.Context, id string) (entities.Estimate, error)
	Reject(ctx context.Context, id string) (entities.Estimate, error)
	Cancel(ctx context.Context, id string) (entities.Estimate, error)
	RefreshEuroRate(ctx context.Context, id, productID string) (entities.Estimate, error)
}

type EstimateUseCase struct {
	repo         interfaces.IEstimateRepository
	catalogs     interfaces.ICatalogRepository
	rates        interfaces.IExchangeRateProvider
	missingValue string
	logger       *zap.Logger
	now          func() time.Time
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(
	repo interfaces.IEstimateRepository,
	catalogs interfaces.ICatalogRepository,
	rates interfaces.IExchangeRateProvider,
	missingValue string,
	logger *zap.Logger,
) *EstimateUseCase {
	return &EstimateUseCase{
		repo:         repo,
		catalogs:     catalogs,
		rates:        rates,
		missingValue: missingValue,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (u *EstimateUseCase) Preview(ctx context.Context, teamID string, draft pricing.EstimateDraft) (EstimatePreview, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return EstimatePreview{}, ErrInvalidTeamID
	}

	normalized, computed, err := u.compute(ctx, teamID, draft)
	if err != nil {
		return EstimatePreview{}, err
	}
	return EstimatePreview{Draft: normalized, Computed: computed}, nil
}

func (u *EstimateUseCase) Create(ctx context.Context, teamID string, payload json.RawMessage) (entities.Estimate, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return entities.Estimate{}, ErrInvalidTeamID
	}

	decoded, err := pricing.DecodePayload(payload)
	if err != nil {
		u.logger.Info("[estimate][usecase] payload rejected", zap.String("team_id", teamID), zap.Error(err))
		return entities.Estimate{}, fmt.Errorf("%w: %w", ErrInvalidEstimatePayload, err)
	}

	now := u.now()
	e := entities.Estimate{
		ID:        uuid.NewString(),
		TeamID:    teamID,
		Status:    entities.EstimateStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch p := decoded.(type) {
	case pricing.LegacyEstimate:
		e.Payload = p
		e.Title = strings.TrimSpace(p.Values[pricing.InfoProjectName])
		e.TotalContractPrice = p.TotalContractPrice()
	case pricing.StructuredEstimate:
		draft, computed, err := u.compute(ctx, teamID, p.EstimateDraft)
		if err != nil {
			return entities.Estimate{}, err
		}
		applyComputation(&e, draft, computed)
	}

	created, err := u.repo.Create(ctx, e)
	if err != nil {
		u.logger.Error("[estimate][usecase] create failed", zap.String("team_id", teamID), zap.Error(err))
		return entities.Estimate{}, err
	}
	u.logger.Info("[estimate][usecase] created",
		zap.String("estimate_id", created.ID),
		zap.String("team_id", teamID),
		zap.Int("payload_version", created.PayloadVersion()),
		zap.Float64("total_contract_price", created.TotalContractPrice),
	)
	return created, nil
}

func (u *EstimateUseCase) UpdateDraft(ctx context.Context, id string, draft pricing.EstimateDraft) (entities.Estimate, error) {
	existing, err := u.editable(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	return u.saveDraft(ctx, existing, draft)
}

func (u *EstimateUseCase) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}

	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return e, nil
}

func (u *EstimateUseCase) ListByTeamID(ctx context.Context, teamID string) ([]entities.Estimate, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, ErrInvalidTeamID
	}
	return u.repo.ListByTeamID(ctx, teamID)
}

// PDFValues returns the document hand-off values. Structured estimates use the
// computation saved with them; legacy estimates already are a values bag.
func (u *EstimateUseCase) PDFValues(ctx context.Context, id string) (map[string]string, error) {
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch p := e.Payload.(type) {
	case pricing.LegacyEstimate:
		values := make(map[string]string, len(p.Values))
		for k, v := range p.Values {
			values[k] = v
		}
		return values, nil
	case pricing.StructuredEstimate:
		if e.Computed != nil {
			return e.Computed.PDFValues, nil
		}
		_, computed, err := u.compute(ctx, e.TeamID, p.EstimateDraft)
		if err != nil {
			return nil, err
		}
		return computed.PDFValues, nil
	default:
		return nil, ErrInvalidEstimatePayload
	}
}

func (u *EstimateUseCase) Approve(ctx context.Context, id string) (entities.Estimate, error) {
	return u.transition(ctx, id, entities.EstimateStatusApproved)
}

func (u *EstimateUseCase) Reject(ctx context.Context, id string) (entities.Estimate, error) {
	return u.transition(ctx, id, entities.EstimateStatusRejected)
}

func (u *EstimateUseCase) Cancel(ctx context.Context, id string) (entities.Estimate, error) {
	return u.transition(ctx, id, entities.EstimateStatusCancelled)
}

func (u *EstimateUseCase) RefreshEuroRate(ctx context.Context, id, productID string) (entities.Estimate, error) {
	existing, err := u.editable(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	structured, _ := existing.Structured()

	draft := pricing.NormalizeDraft(structured.EstimateDraft)
	idx := -1
	productID = strings.TrimSpace(productID)
	for i, p := range draft.Products {
		if p.ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entities.Estimate{}, ErrProductNotFound
	}
	product := draft.Products[idx]
	if !product.EuroPricingEnabled || product.EuroPricing == nil {
		return entities.Estimate{}, ErrEuroPricingDisabled
	}

	rate, err := u.rates.EURToUSD(ctx)
	if err != nil {
		u.logger.Warn("[estimate][usecase] live rate fetch failed", zap.String("estimate_id", existing.ID), zap.Error(err))
		return entities.Estimate{}, fmt.Errorf("%w: %w", ErrExchangeRateUnavailable, err)
	}

	worksheet := pricing.ApplyLiveRate(*product.EuroPricing, rate)
	product.EuroPricing = &worksheet
	draft.Products[idx] = product

	u.logger.Info("[estimate][usecase] live rate applied",
		zap.String("estimate_id", existing.ID),
		zap.String("product_id", productID),
		zap.String("live_rate", worksheet.LiveRate),
		zap.String("applied_rate", worksheet.AppliedRate),
	)
	return u.saveDraft(ctx, existing, draft)
}

// compute normalizes the draft and prices it against the team catalog. A team
// without a catalog prices against empty reference data.
func (u *EstimateUseCase) compute(ctx context.Context, teamID string, draft pricing.EstimateDraft) (pricing.EstimateDraft, pricing.ComputedEstimate, error) {
	catalog, err := u.catalogs.GetByTeamID(ctx, teamID)
	if err != nil {
		return pricing.EstimateDraft{}, pricing.ComputedEstimate{}, err
	}

	normalized := pricing.NormalizeDraft(draft)
	normalized.Products = pricing.ResolveVendorIDs(normalized.Products, catalog.Vendors)

	computed := pricing.ComputeEstimate(normalized, catalog.PanelTypes, catalog.Thresholds(),
		pricing.WithPreparedByMap(catalog.PreparedBy),
		pricing.WithMissingValue(u.missingValue),
	)
	return normalized, computed, nil
}

func (u *EstimateUseCase) editable(ctx context.Context, id string) (entities.Estimate, error) {
	existing, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if _, ok := existing.Structured(); !ok {
		return entities.Estimate{}, ErrLegacyEstimate
	}
	if existing.Status != entities.EstimateStatusDraft {
		return entities.Estimate{}, ErrEstimateNotEditable
	}
	return existing, nil
}

func (u *EstimateUseCase) saveDraft(ctx context.Context, existing entities.Estimate, draft pricing.EstimateDraft) (entities.Estimate, error) {
	normalized, computed, err := u.compute(ctx, existing.TeamID, draft)
	if err != nil {
		return entities.Estimate{}, err
	}

	next := existing
	applyComputation(&next, normalized, computed)
	next.UpdatedAt = u.now()

	updated, err := u.repo.UpdateDraft(ctx, next)
	if err != nil {
		u.logger.Error("[estimate][usecase] update failed", zap.String("estimate_id", existing.ID), zap.Error(err))
		return entities.Estimate{}, err
	}
	if updated.ID == "" {
		return entities.Estimate{}, ErrEstimateNotEditable
	}
	return updated, nil
}

func (u *EstimateUseCase) transition(ctx context.Context, id string, to entities.EstimateStatus) (entities.Estimate, error) {
	existing, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if !existing.Status.CanTransitionTo(to) {
		return entities.Estimate{}, ErrInvalidStatusTransition
	}

	updated, err := u.repo.UpdateStatus(ctx, existing.ID, existing.Status, to)
	if err != nil {
		return entities.Estimate{}, err
	}
	if updated.ID == "" {
		return entities.Estimate{}, ErrEstimateConflict
	}
	u.logger.Info("[estimate][usecase] status changed",
		zap.String("estimate_id", updated.ID),
		zap.String("from", string(existing.Status)),
		zap.String("to", string(updated.Status)),
	)
	return updated, nil
}

func applyComputation(e *entities.Estimate, draft pricing.EstimateDraft, computed pricing.ComputedEstimate) {
	e.Payload = pricing.NewStructuredEstimate(draft, computed)
	e.Computed = &computed
	e.Title = strings.TrimSpace(draft.Info[pricing.InfoProjectName])
	e.TotalContractPrice = computed.Totals.TotalContractPrice
}
