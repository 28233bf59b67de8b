package model

// Column limits from the schema. Longer text is measured in characters.
const (
	MaxNameLen    = 255
	MaxPhoneLen   = 50
	MaxEmailLen   = 255
	MaxServiceLen = 255
)

// MaxMoney is the largest amount a NUMERIC(10,2) column holds.
var MaxMoney = MustMoney("99999999.99")

// Exceeds reports whether m is above MaxMoney.
func (m Money) Exceeds() bool {
	return m.GreaterThan(MaxMoney.Decimal)
}
