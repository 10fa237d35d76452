package pricing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// noiseDecimals is the precision kept before a cent-level ceiling so that binary
// artifacts such as 1265.0000000000002 do not bump a total by a cent.
const noiseDecimals = 9

// ToNumber coerces user input into a float. Dollar signs, thousands separators
// and whitespace are stripped; empty or otherwise invalid input yields 0.
func ToNumber(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case string:
		return parseNumeric(v)
	case json.Number:
		return parseNumeric(string(v))
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case decimal.Decimal:
		return finite(v.InexactFloat64())
	default:
		return 0
	}
}

func parseNumeric(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '$' || r == ',':
		case unicode.IsSpace(r):
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// RoundUp rounds a currency amount up to the next cent. Negative input is not
// clamped.
func RoundUp(value float64) float64 {
	return toDecimal(value).RoundCeil(2).InexactFloat64()
}

// FormatFixed2 formats an amount with two decimals for storage in a string field.
func FormatFixed2(value float64) string {
	return decimal.NewFromFloat(finite(value)).StringFixed(2)
}

// FormatRate formats an exchange rate with four decimals.
func FormatRate(value float64) string {
	return decimal.NewFromFloat(finite(value)).StringFixed(4)
}

func toDecimal(value float64) decimal.Decimal {
	return decimal.NewFromFloat(finite(value)).Round(noiseDecimals)
}

func roundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func trimmed(s string) bool {
	return strings.TrimSpace(s) != ""
}
