package shared

import (
	"errors"
	"fmt"
	"strconv"
)

// Money value object errors
var (
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrInvalidCurrency  = errors.New("currency must be a 3-letter code")
	ErrCurrencyMismatch = errors.New("cannot operate on different currencies")
	ErrNegativeResult   = errors.New("operation would produce a negative amount")
	ErrNegativeRate     = errors.New("rate must not be negative")
)

// Money is an immutable amount in minor currency units.
// Derived values are always newly constructed; a Money never changes.
type Money struct {
	amount   int64
	currency string
}

// NewMoney validates and builds a Money.
func NewMoney(amount int64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, ErrNegativeAmount
	}
	if len(currency) != 3 {
		return Money{}, ErrInvalidCurrency
	}
	return Money{amount: amount, currency: currency}, nil
}

// Zero returns the zero amount for a currency.
func Zero(currency string) Money {
	return Money{amount: 0, currency: currency}
}

// FromYen builds a JPY amount.
func FromYen(amount int64) (Money, error) {
	return NewMoney(amount, "JPY")
}

// MustYen builds a JPY amount and panics on invalid input.
// Intended for constants and test fixtures.
func MustYen(amount int64) Money {
	m, err := FromYen(amount)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Amount() int64    { return m.amount }
func (m Money) Currency() string { return m.currency }
func (m Money) IsZero() bool     { return m.amount == 0 }

// Add returns the sum of two same-currency amounts.
func (m Money) Add(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Subtract returns the difference of two same-currency amounts.
// A result below zero is an error; Money never holds a negative amount.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}
	result := m.amount - other.amount
	if result < 0 {
		return Money{}, ErrNegativeResult
	}
	return Money{amount: result, currency: m.currency}, nil
}

// Multiply scales the amount by a non-negative rate, truncating any
// fractional minor unit.
func (m Money) Multiply(rate float64) (Money, error) {
	if rate < 0 {
		return Money{}, ErrNegativeRate
	}
	return Money{amount: int64(float64(m.amount) * rate), currency: m.currency}, nil
}

// GreaterThan reports m > other for same-currency amounts.
func (m Money) GreaterThan(other Money) (bool, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return false, err
	}
	return m.amount > other.amount, nil
}

// GreaterThanOrEqual reports m >= other for same-currency amounts.
func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return false, err
	}
	return m.amount >= other.amount, nil
}

// LessThan reports m < other for same-currency amounts.
func (m Money) LessThan(other Money) (bool, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return false, err
	}
	return m.amount < other.amount, nil
}

// Equals reports value equality (amount and currency).
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// Format renders the amount with thousands grouping, with the ¥ symbol
// for JPY and the currency code prefix otherwise.
func (m Money) Format() string {
	if m.currency == "JPY" {
		return "¥" + groupDigits(m.amount)
	}
	return fmt.Sprintf("%s %s", m.currency, groupDigits(m.amount))
}

func (m Money) String() string { return m.Format() }

func (m Money) assertSameCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s != %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}

func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
