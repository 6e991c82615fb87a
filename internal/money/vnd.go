package money

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// VND is an amount in whole đồng. The backend sends amounts either as JSON
// numbers or as decimal strings ("50000.00"); both decode into VND.
type VND int64

func (v *VND) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*v = 0
		return nil
	}
	*v = Parse(string(bytes.Trim(b, `"`)))
	return nil
}

func (v VND) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(v), 10)), nil
}

// Parse converts a decimal string into VND, rounding half away from zero.
// Anything unparsable is zero.
func Parse(s string) VND {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return VND(d.Round(0).IntPart())
}

// Mul multiplies a unit price by a quantity.
func (v VND) Mul(qty int) VND {
	return v * VND(qty)
}

// String renders the amount the way the storefront displays it: dot
// thousands separators followed by ₫, e.g. 130.000₫.
func (v VND) String() string {
	n := int64(v)
	neg := n < 0
	if neg {
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	sb.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		sb.WriteByte('.')
		sb.WriteString(digits[i : i+3])
	}
	sb.WriteString("₫")
	return sb.String()
}
