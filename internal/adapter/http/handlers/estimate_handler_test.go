package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"cstone_estimating/internal/adapter/http/handlers/mocks"
	"cstone_estimating/internal/domain/entities"
	"cstone_estimating/internal/domain/pricing"
	"cstone_estimating/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not a json object: %s", w.Body.String())
	}
	return body
}

func newEstimateRouter(t *testing.T) (*gin.Engine, *mocks.MockIEstimateUseCase) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIEstimateUseCase(ctrl)
	h := NewEstimateHandler(uc, zap.NewNop())

	r := gin.New()
	r.POST("/v1/estimates/preview", h.PreviewEstimate)
	r.POST("/v1/estimates", h.CreateEstimate)
	r.GET("/v1/estimates/:id", h.GetEstimate)
	r.PUT("/v1/estimates/:id", h.UpdateEstimate)
	r.GET("/v1/estimates/:id/pdf-values", h.GetPDFValues)
	r.POST("/v1/estimates/:id/products/:product_id/euro-rate", h.RefreshEuroRate)
	r.PATCH("/v1/estimates/:id/approve", h.ApproveEstimate)
	r.PATCH("/v1/estimates/:id/reject", h.RejectEstimate)
	r.PATCH("/v1/estimates/:id/cancel", h.CancelEstimate)
	r.GET("/v1/teams/:team_id/estimates", h.ListTeamEstimates)
	return r, uc
}

func TestEstimateHandler_PreviewEstimate(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		r, _ := newEstimateRouter(t)
		if w := serve(r, http.MethodPost, "/v1/estimates/preview", "{"); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing team", func(t *testing.T) {
		r, _ := newEstimateRouter(t)
		if w := serve(r, http.MethodPost, "/v1/estimates/preview", `{"draft":{}}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newEstimateRouter(t)
		uc.EXPECT().Preview(gomock.Any(), "team-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, d pricing.EstimateDraft) (usecase.EstimatePreview, error) {
				if d.Info[pricing.InfoProjectName] != "Lakeside" {
					t.Fatalf("draft not bound: %+v", d.Info)
				}
				return usecase.EstimatePreview{Draft: d, Computed: pricing.ComputedEstimate{Totals: pricing.Totals{TotalContractPrice: 100}}}, nil
			},
		)

		w := serve(r, http.MethodPost, "/v1/estimates/preview", `{"team_id":"team-1","draft":{"info":{"project_name":"Lakeside"}}}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		body := decodeBody(t, w)
		totals := body["computed"].(map[string]any)["totals"].(map[string]any)
		if totals["total_contract_price"] != 100.0 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestEstimateHandler_CreateEstimate(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		r, _ := newEstimateRouter(t)
		if w := serve(r, http.MethodPost, "/v1/estimates", "{"); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		r, uc := newEstimateRouter(t)
		err := fmt.Errorf("%w: %w", usecase.ErrInvalidEstimatePayload, pricing.ErrUnsupportedPayloadVersion)
		uc.EXPECT().Create(gomock.Any(), "team-1", gomock.Any()).Return(entities.Estimate{}, err)

		w := serve(r, http.MethodPost, "/v1/estimates", `{"team_id":"team-1","payload":{"version":3}}`)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		if decodeBody(t, w)["code"] != "UNSUPPORTED_PAYLOAD_VERSION" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("invalid payload", func(t *testing.T) {
		r, uc := newEstimateRouter(t)
		err := fmt.Errorf("%w: %w", usecase.ErrInvalidEstimatePayload, pricing.ErrInvalidPayload)
		uc.EXPECT().Create(gomock.Any(), "team-1", gomock.Any()).Return(entities.Estimate{}, err)

		w := serve(r, http.MethodPost, "/v1/estimates", `{"team_id":"team-1","payload":[]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newEstimateRouter(t)
		uc.EXPECT().Create(gomock.Any(), "team-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, payload json.RawMessage) (entities.Estimate, error) {
				if !json.Valid(payload) {
					t.Fatalf("payload must be passed through raw")
				}
				return entities.Estimate{
					ID:                 "est-1",
					TeamID:             "team-1",
					Payload:            pricing.LegacyEstimate{Values: map[string]string{"total_contract_price": "12500"}},
					TotalContractPrice: 12500,
					Status:             entities.EstimateStatusDraft,
				}, nil
			},
		)

		w := serve(r, http.MethodPost, "/v1/estimates", `{"team_id":"team-1","payload":{"total_contract_price":"12500"}}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["id"] != "est-1" || body["payload_version"] != 1.0 || body["total_contract_price_display"] != "$12,500.00" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestEstimateHandler_Reads(t *testing.T) {
	t.Run("get not found", func(t *testing.T) {
		r, uc := newEstimateRouter(t)
		uc.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{}, usecase.ErrEstimateNotFound)
		if w := serve(r, http.MethodGet, "/v1/estimates/est-1", ""); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("list", func(t *testing.T) {
		r, uc := newEstimateRouter(t)
		uc.EXPECT().ListByTeamID(gomock.Any(), "team-1").Return([]entities.Estimate{{ID: "a"}, {ID: "b"}}, nil)

		w := serve(r, http.MethodGet, "/v1/teams/team-1/estimates", "")
		var body []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || len(body) != 2 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("pdf values", func(t *testing.T) {
		r, uc := newEstimateRouter(t)
		uc.EXPECT().PDFValues(gomock.Any(), "est-1").Return(map[string]string{"total_contract_price": "$6,861.67"}, nil)

		w := serve(r, http.MethodGet, "/v1/estimates/est-1/pdf-values", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		values := decodeBody(t, w)["values"].(map[string]any)
		if values["total_contract_price"] != "$6,861.67" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestEstimateHandler_UpdateEstimate(t *testing.T) {
	t.Run("legacy", func(t *testing.T) {
		r, uc := newEstimateRouter(t)
		uc.EXPECT().UpdateDraft(gomock.Any(), "est-1", gomock.Any()).Return(entities.Estimate{}, usecase.ErrLegacyEstimate)
		if w := serve(r, http.MethodPut, "/v1/estimates/est-1", `{"draft":{}}`); w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newEstimateRouter(t)
		uc.EXPECT().UpdateDraft(gomock.Any(), "est-1", gomock.Any()).Return(entities.Estimate{ID: "est-1", Status: entities.EstimateStatusDraft}, nil)
		if w := serve(r, http.MethodPut, "/v1/estimates/est-1", `{"draft":{}}`); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestEstimateHandler_RefreshEuroRate(t *testing.T) {
	r, uc := newEstimateRouter(t)
	uc.EXPECT().RefreshEuroRate(gomock.Any(), "est-1", "p-1").Return(entities.Estimate{}, fmt.Errorf("%w: %w", usecase.ErrExchangeRateUnavailable, errors.New("timeout")))

	w := serve(r, http.MethodPost, "/v1/estimates/est-1/products/p-1/euro-rate", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestEstimateHandler_StatusTransitions(t *testing.T) {
	t.Run("approve", func(t *testing.T) {
		r, uc := newEstimateRouter(t)
		uc.EXPECT().Approve(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.EstimateStatusApproved}, nil)

		w := serve(r, http.MethodPatch, "/v1/estimates/est-1/approve", "")
		if w.Code != http.StatusOK || decodeBody(t, w)["status"] != "approved" {
			t.Fatalf("unexpected response %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("reject invalid transition", func(t *testing.T) {
		r, uc := newEstimateRouter(t)
		uc.EXPECT().Reject(gomock.Any(), "est-1").Return(entities.Estimate{}, usecase.ErrInvalidStatusTransition)
		if w := serve(r, http.MethodPatch, "/v1/estimates/est-1/reject", ""); w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("cancel internal error", func(t *testing.T) {
		r, uc := newEstimateRouter(t)
		uc.EXPECT().Cancel(gomock.Any(), "est-1").Return(entities.Estimate{}, errors.New("db"))
		if w := serve(r, http.MethodPatch, "/v1/estimates/est-1/cancel", ""); w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestMapEstimateError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{usecase.ErrInvalidTeamID, http.StatusBadRequest},
		{usecase.ErrInvalidEstimateID, http.StatusBadRequest},
		{usecase.ErrInvalidEstimatePayload, http.StatusBadRequest},
		{pricing.ErrUnsupportedPayloadVersion, http.StatusUnprocessableEntity},
		{usecase.ErrEstimateNotFound, http.StatusNotFound},
		{usecase.ErrProductNotFound, http.StatusNotFound},
		{usecase.ErrLegacyEstimate, http.StatusConflict},
		{usecase.ErrEstimateNotEditable, http.StatusConflict},
		{usecase.ErrInvalidStatusTransition, http.StatusConflict},
		{usecase.ErrEstimateConflict, http.StatusConflict},
		{usecase.ErrEuroPricingDisabled, http.StatusUnprocessableEntity},
		{usecase.ErrExchangeRateUnavailable, http.StatusServiceUnavailable},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		got := mapEstimateError(tc.err)
		if got.HTTPStatus != tc.code {
			t.Fatalf("for err %v expected %d got %d", tc.err, tc.code, got.HTTPStatus)
		}
	}
}
