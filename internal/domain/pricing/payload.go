package pricing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Payload versions.
const (
	PayloadVersionLegacy     = 1
	PayloadVersionStructured = 2
)

var (
	ErrInvalidPayload            = errors.New("invalid estimate payload")
	ErrUnsupportedPayloadVersion = errors.New("unsupported estimate payload version")
)

// Payload is a stored estimate: either a LegacyEstimate or a StructuredEstimate.
// The version is resolved once by DecodePayload; code downstream switches on the
// concrete type.
type Payload interface {
	PayloadVersion() int
	isPayload()
}

// LegacyEstimate is the version 1 flat values bag. It never goes through the engine.
type LegacyEstimate struct {
	Values map[string]string
}

func (LegacyEstimate) PayloadVersion() int { return PayloadVersionLegacy }
func (LegacyEstimate) isPayload()          {}

// TotalContractPrice reads the contract total recorded in the values bag.
func (l LegacyEstimate) TotalContractPrice() float64 {
	return ToNumber(l.Values["total_contract_price"])
}

// MarshalJSON writes the explicit version tag next to the values.
func (l LegacyEstimate) MarshalJSON() ([]byte, error) {
	values := l.Values
	if values == nil {
		values = map[string]string{}
	}
	return json.Marshal(struct {
		Version int               `json:"version"`
		Values  map[string]string `json:"values"`
	}{Version: PayloadVersionLegacy, Values: values})
}

// StructuredEstimate is the version 2 draft together with its computed amounts.
type StructuredEstimate struct {
	Version int `json:"version"`
	EstimateDraft
	Totals    *Totals    `json:"totals,omitempty"`
	Schedule  *Schedule  `json:"schedule,omitempty"`
	Breakdown *Breakdown `json:"breakdown,omitempty"`
}

func (StructuredEstimate) PayloadVersion() int { return PayloadVersionStructured }
func (StructuredEstimate) isPayload()          {}

// NewStructuredEstimate packs a draft and its computation for storage.
func NewStructuredEstimate(draft EstimateDraft, computed ComputedEstimate) StructuredEstimate {
	totals := computed.Totals
	breakdown := computed.Breakdown
	return StructuredEstimate{
		Version:       PayloadVersionStructured,
		EstimateDraft: draft,
		Totals:        &totals,
		Schedule:      computed.Schedule,
		Breakdown:     &breakdown,
	}
}

// EncodePayload serializes a payload with its version tag.
func EncodePayload(p Payload) ([]byte, error) {
	switch v := p.(type) {
	case LegacyEstimate:
		return json.Marshal(v)
	case StructuredEstimate:
		v.Version = PayloadVersionStructured
		return json.Marshal(v)
	case nil:
		return nil, fmt.Errorf("%w: nil payload", ErrInvalidPayload)
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidPayload, p)
	}
}

// DecodePayload reads a stored or submitted estimate. An explicit version wins;
// untagged payloads are structured when they carry a calculator and legacy otherwise.
func DecodePayload(raw []byte) (Payload, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if probe == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidPayload)
	}

	version := 0
	if rawVersion, ok := probe["version"]; ok && !isNull(rawVersion) {
		if err := json.Unmarshal(rawVersion, &version); err != nil {
			return nil, fmt.Errorf("%w: version: %v", ErrInvalidPayload, err)
		}
	}
	if version == 0 {
		version = PayloadVersionLegacy
		if _, ok := probe["calculator"]; ok {
			version = PayloadVersionStructured
		}
	}

	switch version {
	case PayloadVersionLegacy:
		return decodeLegacy(probe)
	case PayloadVersionStructured:
		var s StructuredEstimate
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		s.Version = PayloadVersionStructured
		if s.Info == nil {
			s.Info = Info{}
		}
		if s.Calculator == nil {
			s.Calculator = Calculator{}
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedPayloadVersion, version)
	}
}

func decodeLegacy(probe map[string]json.RawMessage) (LegacyEstimate, error) {
	fields := probe
	flat := true
	if rawValues, ok := probe["values"]; ok && !isNull(rawValues) {
		fields = nil
		flat = false
		if err := json.Unmarshal(rawValues, &fields); err != nil {
			return LegacyEstimate{}, fmt.Errorf("%w: values: %v", ErrInvalidPayload, err)
		}
	}

	values := make(map[string]string, len(fields))
	for k, v := range fields {
		if flat && k == "version" {
			continue
		}
		values[k] = legacyText(v)
	}
	return LegacyEstimate{Values: values}, nil
}

func legacyText(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
