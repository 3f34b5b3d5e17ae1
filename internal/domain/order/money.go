package order

import (
	"github.com/shopspring/decimal"
)

var ErrNegativeMoney = errInvalid("money must not be negative")

// Money is a non-negative amount in the single settlement currency.
type Money struct {
	amount decimal.Decimal
}

func NewMoney(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, ErrNegativeMoney
	}
	return Money{amount: d}, nil
}

func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return NewMoney(d)
}

func ZeroMoney() Money { return Money{amount: decimal.Zero} }

func (m Money) Add(o Money) Money { return Money{amount: m.amount.Add(o.amount)} }

func (m Money) Times(qty int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(qty)))}
}

func (m Money) Scale(f decimal.Decimal) Money { return Money{amount: m.amount.Mul(f)} }

// Round2 rounds half away from zero to cents.
func (m Money) Round2() Money { return Money{amount: m.amount.Round(2)} }

// MinorUnits is the amount in cents as sent to the payment processor.
func (m Money) MinorUnits() int64 {
	return m.amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func (m Money) Decimal() decimal.Decimal { return m.amount }
func (m Money) IsZero() bool             { return m.amount.IsZero() }
func (m Money) Equal(o Money) bool       { return m.amount.Equal(o.amount) }
func (m Money) String() string           { return m.amount.StringFixed(2) }
