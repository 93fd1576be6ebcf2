package model

import (
	"github.com/shopspring/decimal"
)

// MinorUnitsPerMajor is the number of minor units (cents) in one major unit.
const MinorUnitsPerMajor = 100

// MaxSafeAmount is the largest magnitude an amount may carry. It matches the
// largest integer a float64 represents exactly, so documents stay portable to
// JSON consumers that decode numbers as doubles.
const MaxSafeAmount int64 = 1<<53 - 1

var hundred = decimal.NewFromInt(MinorUnitsPerMajor)

// ToMinorUnits converts a major-unit amount to integer minor units, rounding
// half away from zero: 1.234 becomes 123 and -0.005 becomes -1.
func ToMinorUnits(major decimal.Decimal) int64 {
	return major.Mul(hundred).Round(0).IntPart()
}

// FromMinorUnits converts integer minor units back to a major-unit amount.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// FormatMinorUnits renders minor units as a plain two-decimal string such as
// "-12.50". Currency symbols and locale grouping are left to the caller.
func FormatMinorUnits(minor int64) string {
	return FromMinorUnits(minor).StringFixed(2)
}
