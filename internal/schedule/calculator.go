// Package schedule counts and lays out contract installments.
package schedule

import (
	"time"

	"github.com/segyhp/rent-engine/internal/domain"
)

// CalculatePaymentsCount returns durationMonths / monthsPerInstallment using floor
// division. Non-divisible durations are truncated; gate schedule generation with
// IsValidDurationForFrequency.
func CalculatePaymentsCount(durationMonths int, frequency domain.PaymentFrequency) (int, error) {
	months, err := frequency.MonthsPerInstallment()
	if err != nil {
		return 0, err
	}
	if durationMonths <= 0 {
		return 0, nil
	}
	return durationMonths / months, nil
}

// IsValidDurationForFrequency reports whether durationMonths splits evenly into
// installments of the given frequency.
func IsValidDurationForFrequency(durationMonths int, frequency domain.PaymentFrequency) bool {
	months, err := frequency.MonthsPerInstallment()
	if err != nil || durationMonths <= 0 {
		return false
	}
	return durationMonths%months == 0
}

// CalculateEndDate returns the last covered day: start + durationMonths - 1 day.
func CalculateEndDate(start time.Time, durationMonths int) time.Time {
	return start.AddDate(0, durationMonths, -1)
}

// EnsurePaymentsCount fills in PaymentsCount and EndDate when they are absent.
func EnsurePaymentsCount(contract *domain.Contract) error {
	if contract.PaymentsCount == nil {
		count, err := CalculatePaymentsCount(contract.DurationMonths, contract.PaymentFrequency)
		if err != nil {
			return err
		}
		contract.PaymentsCount = &count
	}
	if contract.EndDate == nil && contract.StartDate != nil {
		end := CalculateEndDate(*contract.StartDate, contract.DurationMonths)
		contract.EndDate = &end
	}
	return nil
}
