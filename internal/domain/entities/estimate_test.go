package entities

import (
	"testing"

	"cstone_estimating/internal/domain/pricing"
)

func TestEstimateStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to EstimateStatus
		want     bool
	}{
		{EstimateStatusDraft, EstimateStatusApproved, true},
		{EstimateStatusDraft, EstimateStatusRejected, true},
		{EstimateStatusDraft, EstimateStatusCancelled, true},
		{EstimateStatusApproved, EstimateStatusCancelled, true},
		{EstimateStatusApproved, EstimateStatusRejected, false},
		{EstimateStatusRejected, EstimateStatusApproved, false},
		{EstimateStatusCancelled, EstimateStatusDraft, false},
		{EstimateStatusDraft, EstimateStatusDraft, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestEstimate_Payload(t *testing.T) {
	var empty Estimate
	if empty.PayloadVersion() != 0 {
		t.Fatalf("expected version 0 without payload")
	}
	if _, ok := empty.Structured(); ok {
		t.Fatalf("expected no structured payload")
	}

	legacy := Estimate{Payload: pricing.LegacyEstimate{}}
	if legacy.PayloadVersion() != pricing.PayloadVersionLegacy {
		t.Fatalf("unexpected version %d", legacy.PayloadVersion())
	}

	structured := Estimate{Payload: pricing.StructuredEstimate{Version: pricing.PayloadVersionStructured}}
	if _, ok := structured.Structured(); !ok {
		t.Fatalf("expected structured payload")
	}
}

func TestTeamCatalog_Thresholds(t *testing.T) {
	if (TeamCatalog{}).Thresholds() != nil {
		t.Fatalf("expected nil thresholds for an unsaved catalog")
	}
	c := TeamCatalog{TeamID: "t-1", MarginThresholds: pricing.MarginThresholds{ProductMarginMin: 0.4}}
	in := c.Thresholds()
	if in == nil || *in.ProductMarginMin != 0.4 {
		t.Fatalf("unexpected thresholds %+v", in)
	}
}

func TestPaymentStatusFromProvider(t *testing.T) {
	cases := map[string]PaymentStatus{
		"approved":   PaymentStatusApproved,
		"rejected":   PaymentStatusDenied,
		"in_process": PaymentStatusPending,
		"":           PaymentStatusPending,
	}
	for in, want := range cases {
		if got := PaymentStatusFromProvider(in); got != want {
			t.Fatalf("%q: expected %s, got %s", in, want, got)
		}
	}
}
