package handlers

import (
	"context"
	"errors"
	"net/http"

	request "cstone_estimating/internal/adapter/http/dto/request"
	response "cstone_estimating/internal/adapter/http/dto/response"
	"cstone_estimating/internal/domain/entities"
	"cstone_estimating/internal/domain/pricing"
	"cstone_estimating/internal/usecase"
	"cstone_estimating/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Invalid estimate payload", http.StatusBadRequest)
	errInvalidRequest         = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

// EstimateHandler handles HTTP requests for estimates.
type EstimateHandler struct {
	usecase usecase.IEstimateUseCase
	logger  *zap.Logger
}

func NewEstimateHandler(uc usecase.IEstimateUseCase, logger *zap.Logger) *EstimateHandler {
	return &EstimateHandler{usecase: uc, logger: logger}
}

// PreviewEstimate godoc
// @Summary  Price a draft without saving it
// @Tags     estimates
// @Accept   json
// @Produce  json
// @Param    body  body      request.PreviewEstimateRequest  true  "Team and draft"
// @Success  200   {object}  usecase.EstimatePreview
// @Failure  400   {object}  pkg.HTTPError
// @Router   /estimates/preview [post]
func (h *EstimateHandler) PreviewEstimate(c *gin.Context) {
	var payload request.PreviewEstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidEstimatePayload)
		return
	}

	preview, err := h.usecase.Preview(c.Request.Context(), payload.TeamID, payload.Draft)
	if err != nil {
		h.fail(c, "preview", err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// CreateEstimate godoc
// @Summary  Save a new estimate (structured or legacy document)
// @Tags     estimates
// @Accept   json
// @Produce  json
// @Param    body  body      request.CreateEstimateRequest  true  "Team and versioned payload"
// @Success  201   {object}  response.EstimateResponse
// @Failure  400   {object}  pkg.HTTPError
// @Failure  422   {object}  pkg.HTTPError
// @Router   /estimates [post]
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	var payload request.CreateEstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidEstimatePayload)
		return
	}

	estimate, err := h.usecase.Create(c.Request.Context(), payload.TeamID, payload.Payload)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromEstimate(estimate))
}

// GetEstimate godoc
// @Summary  Get an estimate
// @Tags     estimates
// @Produce  json
// @Param    id   path      string  true  "Estimate id"
// @Success  200  {object}  response.EstimateResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /estimates/{id} [get]
func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	estimate, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get", err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// UpdateEstimate godoc
// @Summary  Replace the draft of an estimate and recompute it
// @Tags     estimates
// @Accept   json
// @Produce  json
// @Param    id    path      string                         true  "Estimate id"
// @Param    body  body      request.UpdateEstimateRequest  true  "Draft"
// @Success  200   {object}  response.EstimateResponse
// @Failure  409   {object}  pkg.HTTPError
// @Router   /estimates/{id} [put]
func (h *EstimateHandler) UpdateEstimate(c *gin.Context) {
	var payload request.UpdateEstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidEstimatePayload)
		return
	}

	estimate, err := h.usecase.UpdateDraft(c.Request.Context(), c.Param("id"), payload.Draft)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// ListTeamEstimates godoc
// @Summary  List the estimates of a team
// @Tags     estimates
// @Produce  json
// @Param    team_id  path      string  true  "Team id"
// @Success  200      {array}   response.EstimateResponse
// @Router   /teams/{team_id}/estimates [get]
func (h *EstimateHandler) ListTeamEstimates(c *gin.Context) {
	list, err := h.usecase.ListByTeamID(c.Request.Context(), c.Param("team_id"))
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimates(list))
}

// GetPDFValues godoc
// @Summary  Flat string values for the proposal template
// @Tags     estimates
// @Produce  json
// @Param    id   path      string  true  "Estimate id"
// @Success  200  {object}  response.PDFValuesResponse
// @Router   /estimates/{id}/pdf-values [get]
func (h *EstimateHandler) GetPDFValues(c *gin.Context) {
	id := c.Param("id")
	values, err := h.usecase.PDFValues(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "pdf-values", err)
		return
	}
	c.JSON(http.StatusOK, response.PDFValuesResponse{EstimateID: id, Values: values})
}

// RefreshEuroRate godoc
// @Summary  Apply the live EUR→USD rate to a product worksheet
// @Tags     estimates
// @Produce  json
// @Param    id          path      string  true  "Estimate id"
// @Param    product_id  path      string  true  "Product id"
// @Success  200         {object}  response.EstimateResponse
// @Failure  503         {object}  pkg.HTTPError
// @Router   /estimates/{id}/products/{product_id}/euro-rate [post]
func (h *EstimateHandler) RefreshEuroRate(c *gin.Context) {
	estimate, err := h.usecase.RefreshEuroRate(c.Request.Context(), c.Param("id"), c.Param("product_id"))
	if err != nil {
		h.fail(c, "euro-rate", err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// ApproveEstimate godoc
// @Summary  Approve a draft estimate
// @Tags     estimates
// @Produce  json
// @Param    id   path      string  true  "Estimate id"
// @Success  200  {object}  response.EstimateResponse
// @Failure  409  {object}  pkg.HTTPError
// @Router   /estimates/{id}/approve [patch]
func (h *EstimateHandler) ApproveEstimate(c *gin.Context) {
	h.patchEstimateStatus(c, "approve", h.usecase.Approve)
}

// RejectEstimate godoc
// @Summary  Reject a draft estimate
// @Tags     estimates
// @Produce  json
// @Param    id   path      string  true  "Estimate id"
// @Success  200  {object}  response.EstimateResponse
// @Router   /estimates/{id}/reject [patch]
func (h *EstimateHandler) RejectEstimate(c *gin.Context) {
	h.patchEstimateStatus(c, "reject", h.usecase.Reject)
}

// CancelEstimate godoc
// @Summary  Cancel a draft or approved estimate
// @Tags     estimates
// @Produce  json
// @Param    id   path      string  true  "Estimate id"
// @Success  200  {object}  response.EstimateResponse
// @Router   /estimates/{id}/cancel [patch]
func (h *EstimateHandler) CancelEstimate(c *gin.Context) {
	h.patchEstimateStatus(c, "cancel", h.usecase.Cancel)
}

func (h *EstimateHandler) patchEstimateStatus(
	c *gin.Context,
	action string,
	updater func(ctx context.Context, id string) (entities.Estimate, error),
) {
	estimate, err := updater(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, action, err)
		return
	}
	h.logger.Info("[estimate][handler] status changed",
		zap.String("estimate_id", estimate.ID),
		zap.String("action", action),
		zap.String("status", string(estimate.Status)),
	)
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

func (h *EstimateHandler) fail(c *gin.Context, action string, err error) {
	appErr := mapEstimateError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error("[estimate][handler] "+action+" failed", zap.Error(err))
	} else {
		h.logger.Info("[estimate][handler] "+action+" rejected", zap.String("code", appErr.Code), zap.Error(err))
	}
	writeError(c, appErr)
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapEstimateError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidTeamID), errors.Is(err, usecase.ErrInvalidEstimateID):
		return errInvalidRequest
	case errors.Is(err, pricing.ErrUnsupportedPayloadVersion):
		return pkg.NewDomainErrorSimple("UNSUPPORTED_PAYLOAD_VERSION", "Unsupported estimate payload version", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrInvalidEstimatePayload), errors.Is(err, pricing.ErrInvalidPayload):
		return errInvalidEstimatePayload
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProductNotFound):
		return pkg.NewDomainErrorSimple("PRODUCT_NOT_FOUND", "Product not found in estimate", http.StatusNotFound)
	case errors.Is(err, usecase.ErrLegacyEstimate):
		return pkg.NewDomainErrorSimple("LEGACY_ESTIMATE", "Legacy estimates are read-only", http.StatusConflict)
	case errors.Is(err, usecase.ErrEstimateNotEditable):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_EDITABLE", "Estimate is no longer a draft", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		return pkg.NewDomainErrorSimple("INVALID_STATUS_TRANSITION", "Estimate cannot move to this status", http.StatusConflict)
	case errors.Is(err, usecase.ErrEstimateConflict):
		return pkg.NewDomainErrorSimple("ESTIMATE_CONFLICT", "Estimate changed concurrently, reload and retry", http.StatusConflict)
	case errors.Is(err, usecase.ErrEuroPricingDisabled):
		return pkg.NewDomainErrorSimple("EURO_PRICING_DISABLED", "EUR pricing is not enabled for this product", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrExchangeRateUnavailable):
		return pkg.NewDomainError("EXCHANGE_RATE_UNAVAILABLE", "Exchange rate service unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
