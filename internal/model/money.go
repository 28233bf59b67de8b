package model

import (
	"database/sql/driver"
	"encoding/json"
	"reflect"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point amount with two decimal places. It serializes to
// JSON as a bare number with exactly two decimals (60 -> 60.00).
type Money struct {
	decimal.Decimal
}

var ZeroMoney = Money{decimal.Zero}

func NewMoney(d decimal.Decimal) Money {
	return Money{d.Round(2)}
}

// MoneyFromString parses "12.5" style amounts.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ZeroMoney, err
	}
	return NewMoney(d), nil
}

// MustMoney is MoneyFromString for literals.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Plus(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// String returns the amount with two decimals and no currency sign.
func (m Money) String() string {
	return m.StringFixed(2)
}

// Dollars returns "$12.50".
func (m Money) Dollars() string {
	if m.IsNegative() {
		return "-$" + m.Neg().StringFixed(2)
	}
	return "$" + m.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

// UnmarshalJSON accepts numbers and numeric strings. Failures are reported
// as *json.UnmarshalTypeError so the decoder attaches the field name.
func (m *Money) UnmarshalJSON(data []byte) error {
	if err := m.Decimal.UnmarshalJSON(data); err != nil {
		return &json.UnmarshalTypeError{
			Value: string(data),
			Type:  reflect.TypeOf(Money{}),
		}
	}
	return nil
}

// Scan reads numeric columns. NULL scans as zero so empty aggregates never
// surface as null.
func (m *Money) Scan(value interface{}) error {
	if value == nil {
		m.Decimal = decimal.Zero
		return nil
	}
	return m.Decimal.Scan(value)
}

func (m Money) Value() (driver.Value, error) {
	return m.StringFixed(2), nil
}
