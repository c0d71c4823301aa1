package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateOnly truncates t to midnight of its calendar day in t's own location.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// InLocation re-anchors the calendar day of t into loc without shifting the day.
// Dates read from a DATE column arrive as UTC midnight and must compare against
// "today" in the evaluation location.
func InLocation(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DaysBetween returns the number of whole calendar days from a to b.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	from := DateOnly(a)
	to := InLocation(b, from.Location())
	// Round to absorb DST shifts of one hour.
	return int(to.Sub(from).Round(24*time.Hour) / (24 * time.Hour))
}

// AddMonths adds n calendar months to t.
func AddMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// CalculateInstallmentAmount calculates the amount due for one installment
// Formula: MonthlyRent * MonthsPerInstallment
func CalculateInstallmentAmount(monthlyRent decimal.Decimal, monthsPerInstallment int) decimal.Decimal {
	amount := monthlyRent.Mul(decimal.NewFromInt(int64(monthsPerInstallment)))

	// Round to 2 decimal places
	return amount.Round(2)
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
