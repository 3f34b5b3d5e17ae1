package coupon

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9_-]{2,32}$`)

var hundred = decimal.NewFromInt(100)

// Code is always stored and compared upper-cased.
type Code struct {
	value string
}

func NewCode(raw string) (Code, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if !codePattern.MatchString(v) {
		return Code{}, ErrInvalidCode
	}
	return Code{value: v}, nil
}

func (c Code) String() string { return c.value }

func (c Code) IsZero() bool { return c.value == "" }

type Percent struct {
	value decimal.Decimal
}

func NewPercent(d decimal.Decimal) (Percent, error) {
	if d.IsNegative() || d.GreaterThan(hundred) {
		return Percent{}, ErrInvalidPercent
	}
	return Percent{value: d}, nil
}

func (p Percent) Decimal() decimal.Decimal { return p.value }

// Multiplier returns 1 - p/100.
func (p Percent) Multiplier() decimal.Decimal {
	return decimal.NewFromInt(1).Sub(p.value.Div(hundred))
}
