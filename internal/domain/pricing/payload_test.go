package pricing

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodePayload(t *testing.T) {
	t.Run("explicit legacy", func(t *testing.T) {
		p, err := DecodePayload([]byte(`{"version":1,"values":{"project_name":"Old","total_contract_price":"1200.50"}}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		legacy, ok := p.(LegacyEstimate)
		if !ok {
			t.Fatalf("expected legacy payload, got %T", p)
		}
		if legacy.Values["project_name"] != "Old" || legacy.TotalContractPrice() != 1200.5 {
			t.Fatalf("unexpected values: %+v", legacy.Values)
		}
	})

	t.Run("untagged flat values are legacy", func(t *testing.T) {
		p, err := DecodePayload([]byte(`{"project_name":"Flat","total_contract_price":990,"notes":null}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		legacy := p.(LegacyEstimate)
		if legacy.Values["total_contract_price"] != "990" || legacy.Values["notes"] != "" {
			t.Fatalf("unexpected values: %+v", legacy.Values)
		}
	})

	t.Run("untagged with calculator is structured", func(t *testing.T) {
		p, err := DecodePayload([]byte(`{"info":{"project_name":"New"},"products":[],"bucking":[],"calculator":{"bucking_rate":"5"}}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s, ok := p.(StructuredEstimate)
		if !ok {
			t.Fatalf("expected structured payload, got %T", p)
		}
		if s.Version != PayloadVersionStructured || s.Calculator[CalcBuckingRate] != "5" {
			t.Fatalf("unexpected payload: %+v", s)
		}
	})

	t.Run("explicit structured without maps", func(t *testing.T) {
		p, err := DecodePayload([]byte(`{"version":2}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s := p.(StructuredEstimate)
		if s.Info == nil || s.Calculator == nil {
			t.Fatalf("expected empty maps, got %+v", s)
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		_, err := DecodePayload([]byte(`{"version":3}`))
		if !errors.Is(err, ErrUnsupportedPayloadVersion) {
			t.Fatalf("expected ErrUnsupportedPayloadVersion, got %v", err)
		}
	})

	t.Run("invalid documents", func(t *testing.T) {
		for _, raw := range []string{`not json`, `null`, `[1,2]`, `{"version":"two"}`} {
			if _, err := DecodePayload([]byte(raw)); !errors.Is(err, ErrInvalidPayload) {
				t.Fatalf("%s: expected ErrInvalidPayload, got %v", raw, err)
			}
		}
	})
}

func TestEncodePayload_RoundTrip(t *testing.T) {
	draft := NormalizeDraft(sampleDraft())
	computed := ComputeEstimate(draft, samplePanelTypes(), nil)

	raw, err := EncodePayload(NewStructuredEstimate(draft, computed))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var tagged struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &tagged); err != nil || tagged.Version != PayloadVersionStructured {
		t.Fatalf("expected version tag 2, got %d (%v)", tagged.Version, err)
	}

	decoded, err := DecodePayload(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	s := decoded.(StructuredEstimate)
	if s.Totals == nil || s.Totals.TotalContractPrice != computed.Totals.TotalContractPrice {
		t.Fatalf("totals lost in round trip: %+v", s.Totals)
	}
	if got := ComputeEstimate(s.EstimateDraft, samplePanelTypes(), nil); got.Totals != computed.Totals {
		t.Fatalf("recomputed totals differ: %+v vs %+v", got.Totals, computed.Totals)
	}

	legacyRaw, err := EncodePayload(LegacyEstimate{})
	if err != nil {
		t.Fatalf("encode legacy: %v", err)
	}
	if string(legacyRaw) != `{"version":1,"values":{}}` {
		t.Fatalf("unexpected legacy encoding %s", legacyRaw)
	}

	if _, err := EncodePayload(nil); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload for nil, got %v", err)
	}
}
