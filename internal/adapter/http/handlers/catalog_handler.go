package handlers

import (
	"errors"
	"net/http"

	request "cstone_estimating/internal/adapter/http/dto/request"
	response "cstone_estimating/internal/adapter/http/dto/response"
	"cstone_estimating/internal/usecase"
	"cstone_estimating/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves the per-team unit types, vendors and pricing settings.
type CatalogHandler struct {
	usecase usecase.ICatalogUseCase
	logger  *zap.Logger
}

func NewCatalogHandler(uc usecase.ICatalogUseCase, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{usecase: uc, logger: logger}
}

// GetCatalog godoc
// @Summary  Get the team catalog
// @Tags     catalogs
// @Produce  json
// @Param    team_id  path      string  true  "Team id"
// @Success  200      {object}  response.CatalogResponse
// @Router   /teams/{team_id}/catalog [get]
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	catalog, err := h.usecase.Get(c.Request.Context(), c.Param("team_id"))
	if err != nil {
		h.fail(c, "get", err)
		return
	}
	c.JSON(http.StatusOK, response.FromCatalog(catalog))
}

// SaveCatalog godoc
// @Summary  Replace the team catalog
// @Tags     catalogs
// @Accept   json
// @Produce  json
// @Param    team_id  path      string                  true  "Team id"
// @Param    body     body      request.CatalogRequest  true  "Catalog"
// @Success  200      {object}  response.CatalogResponse
// @Failure  400      {object}  pkg.HTTPError
// @Router   /teams/{team_id}/catalog [put]
func (h *CatalogHandler) SaveCatalog(c *gin.Context) {
	var payload request.CatalogRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	catalog, err := h.usecase.Save(c.Request.Context(), c.Param("team_id"), payload.ToInput())
	if err != nil {
		h.fail(c, "save", err)
		return
	}
	c.JSON(http.StatusOK, response.FromCatalog(catalog))
}

func (h *CatalogHandler) fail(c *gin.Context, action string, err error) {
	appErr := mapCatalogError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error("[catalog][handler] "+action+" failed", zap.Error(err))
	}
	writeError(c, appErr)
}

func mapCatalogError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidTeamID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrInvalidCatalog):
		return pkg.NewDomainError("INVALID_CATALOG", err.Error(), err, http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
