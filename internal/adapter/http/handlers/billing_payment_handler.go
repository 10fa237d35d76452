package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	request "cstone_estimating/internal/adapter/http/dto/request"
	response "cstone_estimating/internal/adapter/http/dto/response"
	"cstone_estimating/internal/usecase"
	"cstone_estimating/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BillingPaymentHandler handles HTTP requests for stage payments.
type BillingPaymentHandler struct {
	usecase  usecase.IBillingPaymentUseCase
	mockMode bool
	logger   *zap.Logger
}

// NewBillingPaymentHandler builds the handler. In mock mode an unreadable body
// falls back to an empty payload instead of being rejected.
func NewBillingPaymentHandler(uc usecase.IBillingPaymentUseCase, mockMode bool, logger *zap.Logger) *BillingPaymentHandler {
	return &BillingPaymentHandler{usecase: uc, mockMode: mockMode, logger: logger}
}

// CreateStagePayment godoc
// @Summary  Collect one schedule stage of an approved estimate
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    estimate_id  path      string                               true   "Estimate id"
// @Param    stage        path      string                               true   "Stage key, or contract_total for change orders"
// @Param    body         body      request.BillingPaymentCreateRequest  false  "Mercado Pago payload"
// @Success  201          {object}  response.BillingPaymentResponse
// @Failure  400          {object}  pkg.HTTPError
// @Failure  409          {object}  pkg.HTTPError
// @Router   /payments/{estimate_id}/{stage} [post]
func (h *BillingPaymentHandler) CreateStagePayment(c *gin.Context) {
	estimateID, stage := c.Param("estimate_id"), c.Param("stage")
	log := h.logger.With(zap.String("estimate_id", estimateID), zap.String("stage", stage))
	log.Info("[payment][handler] create start")

	mpPayload, err := readMPPayload(c)
	if err != nil {
		if !h.mockMode {
			log.Info("[payment][handler] invalid payload", zap.Error(err))
			writeError(c, errInvalidRequest)
			return
		}
		log.Info("[payment][handler] payload invalid in mock mode; fallback to empty payload", zap.Error(err))
		mpPayload = json.RawMessage("{}")
	}

	created, err := h.usecase.CreateStagePayment(c.Request.Context(), estimateID, stage, mpPayload)
	if err != nil {
		appErr := mapBillingPaymentError(err)
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			log.Error("[payment][handler] create failed", zap.Error(err))
		} else {
			log.Info("[payment][handler] create rejected", zap.String("code", appErr.Code), zap.Error(err))
		}
		writeError(c, appErr)
		return
	}
	log.Info("[payment][handler] create success", zap.String("payment_id", created.ID), zap.String("status", string(created.Status)))

	c.JSON(http.StatusCreated, response.FromBillingPayment(created))
}

// ListPayments godoc
// @Summary  List the payment attempts of an estimate
// @Tags     payments
// @Produce  json
// @Param    estimate_id  path      string  true  "Estimate id"
// @Success  200          {array}   response.BillingPaymentResponse
// @Router   /payments/{estimate_id} [get]
func (h *BillingPaymentHandler) ListPayments(c *gin.Context) {
	payments, err := h.usecase.ListByEstimateID(c.Request.Context(), c.Param("estimate_id"))
	if err != nil {
		writeError(c, mapBillingPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBillingPayments(payments))
}

// GetPayment godoc
// @Summary  Get one payment by its provider id
// @Tags     payments
// @Produce  json
// @Param    payment_id  path      string  true  "Payment id"
// @Success  200         {object}  response.BillingPaymentResponse
// @Failure  404         {object}  pkg.HTTPError
// @Router   /payment-receipts/{payment_id} [get]
func (h *BillingPaymentHandler) GetPayment(c *gin.Context) {
	p, err := h.usecase.GetByID(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		writeError(c, mapBillingPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBillingPayment(p))
}

func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	return request.ParseMPPayload(raw)
}

func mapBillingPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentEstimateID), errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrInvalidStage):
		return pkg.NewDomainErrorSimple("INVALID_STAGE", "Stage does not exist for this estimate", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrStageAmountNotPayable):
		return pkg.NewDomainErrorSimple("STAGE_NOT_PAYABLE", "Stage has no amount to collect", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_NOT_CONFIGURED", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEstimateNotApproved):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_APPROVED", "Estimate not approved", http.StatusConflict)
	case errors.Is(err, usecase.ErrStageAlreadyPaid):
		return pkg.NewDomainErrorSimple("STAGE_ALREADY_PAID", "Stage already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrBillingPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
