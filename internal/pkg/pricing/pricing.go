// internal/pkg/pricing/pricing.go
package pricing

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Price is the canonical numeric money value. Upstream catalog payloads are not
// uniform about how they serialize money (number, numeric string, null), so
// Price tolerates all of them on unmarshal and degrades to zero on malformed
// input instead of failing the whole document.
type Price float64

// UnmarshalJSON accepts a JSON number, a numeric string, or null.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		*p = 0
		return nil
	}
	f, _ := d.Float64()
	*p = Price(f)
	return nil
}

// MarshalJSON always emits a plain JSON number.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(p))
}

// Display renders the price for end users.
func (p Price) Display() string {
	return Display(float64(p))
}

// ToNumeric normalizes any runtime price representation to a float64.
// nil and unparseable inputs become 0; it never panics.
func ToNumeric(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case Price:
		return float64(t)
	case *Price:
		if t == nil {
			return 0
		}
		return float64(*t)
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case json.Number:
		return parseDecimal(t.String())
	case string:
		return parseDecimal(t)
	case fmt.Stringer:
		return parseDecimal(t.String())
	default:
		return 0
	}
}

// ToDisplay normalizes any runtime price representation to its display string:
// exactly two decimal digits with a comma separator, no thousands grouping.
func ToDisplay(v any) string {
	return Display(ToNumeric(v))
}

// Display formats a numeric value as "1234,56".
func Display(f float64) string {
	return strings.Replace(decimal.NewFromFloat(f).StringFixed(2), ".", ",", 1)
}

// Round2 rounds a computed amount to two decimal places. Totals that cross a
// persistence or wire boundary go through this so float accumulation noise
// never reaches a payload.
func Round2(f float64) float64 {
	r, _ := decimal.NewFromFloat(f).Round(2).Float64()
	return r
}

func parseDecimal(s string) float64 {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}
