package schedule

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/rent-engine/internal/domain"
	customError "github.com/segyhp/rent-engine/pkg/errors"
)

func TestCalculatePaymentsCount(t *testing.T) {
	tests := []struct {
		name      string
		duration  int
		frequency domain.PaymentFrequency
		expected  int
	}{
		{name: "monthly over a year", duration: 12, frequency: domain.FrequencyMonthly, expected: 12},
		{name: "quarterly over a year", duration: 12, frequency: domain.FrequencyQuarterly, expected: 4},
		{name: "semi-annually over a year", duration: 12, frequency: domain.FrequencySemiAnnually, expected: 2},
		{name: "annually over a year", duration: 12, frequency: domain.FrequencyAnnually, expected: 1},
		{name: "non-divisible duration truncates", duration: 7, frequency: domain.FrequencyQuarterly, expected: 2},
		{name: "shorter than one installment", duration: 5, frequency: domain.FrequencyAnnually, expected: 0},
		{name: "zero duration", duration: 0, frequency: domain.FrequencyMonthly, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := CalculatePaymentsCount(tt.duration, tt.frequency)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, count)
		})
	}
}

func TestCalculatePaymentsCount_UnknownFrequency(t *testing.T) {
	_, err := CalculatePaymentsCount(12, domain.PaymentFrequency("weekly"))
	assert.ErrorIs(t, err, customError.ErrUnrecognizedEnumValue)
}

func TestIsValidDurationForFrequency(t *testing.T) {
	assert.True(t, IsValidDurationForFrequency(12, domain.FrequencyMonthly))
	assert.True(t, IsValidDurationForFrequency(12, domain.FrequencyQuarterly))
	assert.True(t, IsValidDurationForFrequency(24, domain.FrequencyAnnually))
	assert.False(t, IsValidDurationForFrequency(7, domain.FrequencyQuarterly))
	assert.False(t, IsValidDurationForFrequency(18, domain.FrequencyAnnually))
	assert.False(t, IsValidDurationForFrequency(0, domain.FrequencyMonthly))
	assert.False(t, IsValidDurationForFrequency(12, domain.PaymentFrequency("weekly")))
}

func TestCalculateEndDate(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), CalculateEndDate(start, 12))
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), CalculateEndDate(start, 3))

	mid := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), CalculateEndDate(mid, 12))
}

func TestEnsurePaymentsCount(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	contract := &domain.Contract{
		DurationMonths:   12,
		PaymentFrequency: domain.FrequencyQuarterly,
		StartDate:        &start,
		MonthlyRent:      decimal.NewFromInt(1000),
	}

	require.NoError(t, EnsurePaymentsCount(contract))
	require.NotNil(t, contract.PaymentsCount)
	assert.Equal(t, 4, *contract.PaymentsCount)
	require.NotNil(t, contract.EndDate)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), *contract.EndDate)

	stored := 99
	contract.PaymentsCount = &stored
	require.NoError(t, EnsurePaymentsCount(contract))
	assert.Equal(t, 99, *contract.PaymentsCount)
}
