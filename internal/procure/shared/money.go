// Package shared holds value types reused by every procurement resource client.
package shared

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultCurrency is the operating currency of the backend.
const DefaultCurrency = "OMR"

// Amount is a decimal that encodes as a bare JSON number and decodes from
// either a number or a numeric string.
type Amount struct {
	decimal.Decimal
}

// NewAmount parses a decimal string such as "125.500".
func NewAmount(value string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return Amount{}, err
	}
	return Amount{Decimal: d}, nil
}

// MustAmount is NewAmount for literals.
func MustAmount(value string) Amount {
	a, err := NewAmount(value)
	if err != nil {
		panic(err)
	}
	return a
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	return a.Decimal.UnmarshalJSON(data)
}

// Money pairs an ISO 4217 currency code with an amount.
type Money struct {
	Currency string `json:"currency"`
	Amount   Amount `json:"amount"`
}

// Round rounds the amount to the currency's minor unit.
func (m Money) Round() Money {
	return Money{Currency: m.Currency, Amount: Amount{Decimal: m.Amount.Round(Scale(m.Currency))}}
}

// String renders e.g. "OMR 1,234.500".
func (m Money) String() string {
	return FormatMoney(m.Currency, m.Amount)
}

// Scale returns the number of minor-unit digits for code: 3 for OMR, KWD and
// BHD, 0 for JPY, 2 for unknown codes.
func Scale(code string) int32 {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return 2
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}

// FormatMoney formats amount with the currency's precision and thousands separators.
func FormatMoney(code string, amount Amount) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}
	fixed := amount.StringFixed(Scale(code))
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	whole, frac, hasFrac := strings.Cut(fixed, ".")
	var b strings.Builder
	b.WriteString(code)
	b.WriteByte(' ')
	b.WriteString(sign)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
