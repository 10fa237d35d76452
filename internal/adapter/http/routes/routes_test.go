package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cstone_estimating/internal/adapter/http/handlers"
	"cstone_estimating/internal/adapter/http/handlers/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRouter(t *testing.T, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	return NewRouter(Handlers{
		Estimate: handlers.NewEstimateHandler(mocks.NewMockIEstimateUseCase(ctrl), logger),
		Catalog:  handlers.NewCatalogHandler(mocks.NewMockICatalogUseCase(ctrl), logger),
		Payment:  handlers.NewBillingPaymentHandler(mocks.NewMockIBillingPaymentUseCase(ctrl), false, logger),
	}, logger)
}

func TestNewRouter_RegistersRoutes(t *testing.T) {
	router := newTestRouter(t, zap.NewNop())

	registered := map[string]bool{}
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	want := []string{
		"GET /v1/ping",
		"POST /v1/estimates/preview",
		"POST /v1/estimates",
		"GET /v1/estimates/:id",
		"PUT /v1/estimates/:id",
		"GET /v1/estimates/:id/pdf-values",
		"POST /v1/estimates/:id/products/:product_id/euro-rate",
		"PATCH /v1/estimates/:id/approve",
		"PATCH /v1/estimates/:id/reject",
		"PATCH /v1/estimates/:id/cancel",
		"GET /v1/teams/:team_id/estimates",
		"GET /v1/teams/:team_id/catalog",
		"PUT /v1/teams/:team_id/catalog",
		"POST /v1/payments/:estimate_id/:stage",
		"GET /v1/payments/:estimate_id",
		"GET /v1/payment-receipts/:payment_id",
		"GET /swagger/*any",
	}
	for _, route := range want {
		if !registered[route] {
			t.Errorf("route %s not registered", route)
		}
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	router := newTestRouter(t, zap.New(core))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	entries := logs.FilterMessage("[http] request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one request log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["route"] != "/v1/ping" || fields["status"] != int64(200) {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	router := gin.New()
	router.Use(requestLogger(logger), recovery(logger))
	router.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if logs.FilterMessage("[http] recovered from panic").Len() != 1 {
		t.Fatalf("expected panic to be logged")
	}
	if logs.FilterLevelExact(zapcore.ErrorLevel).FilterMessage("[http] request").Len() != 1 {
		t.Fatalf("expected request logged as error")
	}
}
