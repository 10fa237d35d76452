package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cstone_estimating/internal/config"
	"cstone_estimating/internal/domain/entities"
	"cstone_estimating/internal/domain/pricing"
	"cstone_estimating/internal/usecase/interfaces"

	"go.uber.org/zap"
)

//go:generate mockgen -source=billing_payment_usecase.go -destination=../adapter/http/handlers/mocks/mock_billing_payment_usecase.go -package=mocks

// StageContractTotal collects the whole contract in one payment. It is the only
// stage of change orders, which have no schedule.
const StageContractTotal = "contract_total"

var (
	ErrBillingPaymentNotFound         = errors.New("billing payment not found")
	ErrInvalidPaymentID               = errors.New("invalid payment id")
	ErrInvalidPaymentEstimateID       = errors.New("invalid estimate_id")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrEstimateNotApproved            = errors.New("estimate not approved")
	ErrInvalidStage                   = errors.New("invalid payment stage")
	ErrStageAmountNotPayable          = errors.New("stage amount is not payable")
	ErrStageAlreadyPaid               = errors.New("stage already paid")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// IBillingPaymentUseCase collects the schedule stages of approved estimates.
type IBillingPaymentUseCase interface {
	CreateStagePayment(ctx context.Context, estimateID, stage string, mpPayload json.RawMessage) (entities.BillingPayment, error)
	GetByID(ctx context.Context, id string) (entities.BillingPayment, error)
	ListByEstimateID(ctx context.Context, estimateID string) ([]entities.BillingPayment, error)
}

type BillingPaymentUseCase struct {
	repo         interfaces.IBillingPaymentRepository
	estimateRepo interfaces.IEstimateRepository
	gateway      interfaces.IPaymentGateway
	mp           config.MercadoPagoConfig
	logger       *zap.Logger
}

var _ IBillingPaymentUseCase = (*BillingPaymentUseCase)(nil)

func NewBillingPaymentUseCase(
	repo interfaces.IBillingPaymentRepository,
	estimateRepo interfaces.IEstimateRepository,
	gateway interfaces.IPaymentGateway,
	mp config.MercadoPagoConfig,
	logger *zap.Logger,
) *BillingPaymentUseCase {
	return &BillingPaymentUseCase{repo: repo, estimateRepo: estimateRepo, gateway: gateway, mp: mp, logger: logger}
}

func (u *BillingPaymentUseCase) CreateStagePayment(ctx context.Context, estimateID, stage string, mpPayload json.RawMessage) (entities.BillingPayment, error) {
	estimateID = strings.TrimSpace(estimateID)
	stage = strings.TrimSpace(stage)
	log := u.logger.With(zap.String("estimate_id", estimateID), zap.String("stage", stage))
	log.Info("[payment][usecase] create start", zap.Int("payload_len", len(mpPayload)))

	if estimateID == "" {
		return entities.BillingPayment{}, ErrInvalidPaymentEstimateID
	}
	if len(mpPayload) == 0 {
		mpPayload = json.RawMessage("{}")
	}
	if !json.Valid(mpPayload) {
		log.Info("[payment][usecase] invalid payload (not-json)")
		return entities.BillingPayment{}, ErrInvalidMPPayload
	}
	if u.gateway == nil {
		log.Warn("[payment][usecase] gateway not configured")
		return entities.BillingPayment{}, ErrPaymentGatewayNotConfigured
	}

	est, err := u.estimateRepo.GetByID(ctx, estimateID)
	if err != nil {
		log.Error("[payment][usecase] failed loading estimate", zap.Error(err))
		return entities.BillingPayment{}, err
	}
	if est.ID == "" {
		return entities.BillingPayment{}, ErrEstimateNotFound
	}
	if est.Status != entities.EstimateStatusApproved {
		log.Info("[payment][usecase] estimate not approved", zap.String("status", string(est.Status)))
		return entities.BillingPayment{}, ErrEstimateNotApproved
	}

	amount, err := StageAmount(est, stage)
	if err != nil {
		return entities.BillingPayment{}, err
	}

	existing, err := u.repo.ListByEstimateID(ctx, estimateID)
	if err != nil {
		return entities.BillingPayment{}, err
	}
	for _, p := range existing {
		if p.Stage == stage && p.Status == entities.PaymentStatusApproved {
			return entities.BillingPayment{}, ErrStageAlreadyPaid
		}
	}

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		log.Info("[payment][usecase] payload is not an object")
		return entities.BillingPayment{}, ErrInvalidMPPayload
	}
	if !u.mp.Mock {
		if !hasNonEmptyString(reqMap, "payment_method_id") {
			log.Info("[payment][usecase] missing payment_method_id")
			return entities.BillingPayment{}, ErrInvalidMPPayload
		}
		u.normalizeSandboxPayerFromUserID(reqMap)
		u.ensurePayerDefaults(reqMap)
		if !hasPayer(reqMap) {
			log.Info("[payment][usecase] missing/invalid payer")
			return entities.BillingPayment{}, ErrInvalidMPPayload
		}
	}

	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = estimateID + ":" + stage
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("%s - %s", estimateTitle(est), stageLabel(stage))
	}
	// The amount always comes from the saved estimate, never from the client.
	reqMap["transaction_amount"] = amount
	enriched, err := json.Marshal(reqMap)
	if err != nil {
		return entities.BillingPayment{}, err
	}

	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, enriched)
	if err != nil {
		log.Warn("[payment][usecase] payment gateway failed", zap.Error(err))
		return entities.BillingPayment{}, classifyGatewayError(err)
	}
	log.Info("[payment][usecase] payment gateway success",
		zap.String("provider_payment_id", providerPaymentID),
		zap.String("provider_status", providerStatus),
	)

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Warn("[payment][usecase] provider response unmarshal failed", zap.Error(err))
	}

	p := entities.BillingPayment{
		ID:           providerPaymentID,
		EstimateID:   estimateID,
		Stage:        stage,
		Amount:       amount,
		Date:         time.Now().UTC(),
		Status:       entities.PaymentStatusFromProvider(providerStatus),
		MPPayloadRaw: providerResp,
		MPPayload:    parsed,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Error("[payment][usecase] payment repository create failed", zap.String("payment_id", p.ID), zap.Error(err))
		return entities.BillingPayment{}, err
	}
	log.Info("[payment][usecase] create success", zap.String("payment_id", created.ID), zap.String("status", string(created.Status)))
	return created, nil
}

func (u *BillingPaymentUseCase) GetByID(ctx context.Context, id string) (entities.BillingPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.BillingPayment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.BillingPayment{}, err
	}
	if p.ID == "" {
		return entities.BillingPayment{}, ErrBillingPaymentNotFound
	}
	return p, nil
}

func (u *BillingPaymentUseCase) ListByEstimateID(ctx context.Context, estimateID string) ([]entities.BillingPayment, error) {
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return nil, ErrInvalidPaymentEstimateID
	}
	return u.repo.ListByEstimateID(ctx, estimateID)
}

// StageAmount resolves what a stage collects. Structured estimates use their
// saved schedule, or the contract total when they have none (change orders).
// Legacy estimates read the stage from their values bag.
func StageAmount(e entities.Estimate, stage string) (float64, error) {
	amount, ok := 0.0, false

	switch p := e.Payload.(type) {
	case pricing.StructuredEstimate:
		schedule, totals := p.Schedule, p.Totals
		if e.Computed != nil {
			schedule, totals = e.Computed.Schedule, &e.Computed.Totals
		}
		switch {
		case stage == StageContractTotal && schedule == nil && totals != nil:
			amount, ok = totals.TotalContractPrice, true
		case schedule != nil:
			var st pricing.ScheduleStage
			st, ok = schedule.Stage(stage)
			amount = st.Amount
		}
	case pricing.LegacyEstimate:
		if stage == StageContractTotal {
			amount, ok = e.TotalContractPrice, true
		} else if _, known := (pricing.Schedule{}).Stage(stage); known {
			var raw string
			raw, ok = p.Values[stage]
			amount = pricing.ToNumber(raw)
		}
	}

	if !ok {
		return 0, ErrInvalidStage
	}
	if amount <= 0 {
		return 0, ErrStageAmountNotPayable
	}
	return amount, nil
}

func estimateTitle(e entities.Estimate) string {
	if e.Title != "" {
		return e.Title
	}
	return "Estimate " + e.ID
}

func stageLabel(stage string) string {
	if st, ok := (pricing.Schedule{}).Stage(stage); ok {
		return st.Label
	}
	return "Contract total"
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	v, ok := m["payer"]
	if !ok {
		return false
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func (u *BillingPaymentUseCase) ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}

	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}

	// Sandbox accepts either payer.id or payer.email; fill email only when both are missing.
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") {
		if u.mp.TestPayerEmail != "" {
			payer["email"] = u.mp.TestPayerEmail
		} else if u.mp.SandboxToken() {
			payer["email"] = "test_user_br@testuser.com"
		}
	}
}

// normalizeSandboxPayerFromUserID swaps the configured sandbox test user id for
// its email, which is what the sandbox expects.
func (u *BillingPaymentUseCase) normalizeSandboxPayerFromUserID(m map[string]any) {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return
	}
	if !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if !u.mp.SandboxToken() || u.mp.TestPayerUserID == "" || u.mp.TestPayerEmail == "" {
		return
	}

	rawID := strings.TrimSpace(fmt.Sprintf("%v", payer["id"]))
	if rawID != u.mp.TestPayerUserID {
		return
	}

	payer["email"] = u.mp.TestPayerEmail
	delete(payer, "id")
	u.logger.Debug("[payment][usecase] mapped sandbox payer user_id to payer.email")
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	default:
		return err
	}
}
