package status

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/rent-engine/internal/domain"
	customError "github.com/segyhp/rent-engine/pkg/errors"
)

func contract(kind domain.ContractKind, status domain.ContractStatus, startOffset, endOffset int) *domain.Contract {
	return &domain.Contract{
		ID:               uuid.New(),
		ContractNumber:   "C-1",
		Kind:             kind,
		Status:           status,
		StartDate:        day(startOffset),
		EndDate:          day(endOffset),
		DurationMonths:   12,
		PaymentFrequency: domain.FrequencyMonthly,
	}
}

func TestClassifyContract_Active(t *testing.T) {
	tests := []struct {
		name      string
		endOffset int
		display   domain.DisplayStatus
		color     domain.Color
		remaining int
	}{
		{name: "29 days left is expiring soon", endOffset: 29, display: domain.DisplayStatusExpiringSoon, color: domain.ColorWarning, remaining: 29},
		{name: "30 days left is expiring soon", endOffset: 30, display: domain.DisplayStatusExpiringSoon, color: domain.ColorWarning, remaining: 30},
		{name: "31 days left is active", endOffset: 31, display: domain.DisplayStatusActive, color: domain.ColorSuccess, remaining: 31},
		{name: "ends today is expiring soon", endOffset: 0, display: domain.DisplayStatusExpiringSoon, color: domain.ColorWarning, remaining: 0},
		{name: "a year left is active", endOffset: 200, display: domain.DisplayStatusActive, color: domain.ColorSuccess, remaining: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := contract(domain.ContractKindRental, domain.ContractStatusActive, -100, tt.endOffset)

			view, err := ClassifyContract(c, now, DefaultExpiringSoonDays)
			require.NoError(t, err)
			assert.Equal(t, tt.display, view.DisplayStatus)
			assert.Equal(t, tt.color, view.Color)
			assert.Equal(t, tt.remaining, view.RemainingDays)
			assert.True(t, view.IsActive)
			assert.False(t, view.HasExpired)
		})
	}
}

func TestClassifyContract_StaleActive(t *testing.T) {
	c := contract(domain.ContractKindRental, domain.ContractStatusActive, -365, -1)

	view, err := ClassifyContract(c, now, DefaultExpiringSoonDays)
	require.NoError(t, err)
	assert.True(t, view.HasExpired)
	assert.False(t, view.IsActive)
	assert.Equal(t, domain.DisplayStatusExpired, view.DisplayStatus)
	assert.Equal(t, domain.ContractStatusActive, view.StoredStatus)
	assert.Equal(t, 0, view.RemainingDays)
}

func TestClassifyContract_NotStarted(t *testing.T) {
	c := contract(domain.ContractKindRental, domain.ContractStatusActive, 10, 375)

	view, err := ClassifyContract(c, now, DefaultExpiringSoonDays)
	require.NoError(t, err)
	assert.False(t, view.IsActive)
	assert.False(t, view.HasExpired)
	assert.Equal(t, domain.DisplayStatusNotStarted, view.DisplayStatus)
	assert.Equal(t, 375, view.RemainingDays)
}

func TestClassifyContract_DerivesMissingEndDate(t *testing.T) {
	c := contract(domain.ContractKindRental, domain.ContractStatusActive, -10, 0)
	c.EndDate = nil
	c.DurationMonths = 1

	view, err := ClassifyContract(c, now, DefaultExpiringSoonDays)
	require.NoError(t, err)
	// start 2024-06-05 + 1 month - 1 day = 2024-07-04
	assert.Equal(t, 19, view.RemainingDays)
	assert.Equal(t, domain.DisplayStatusExpiringSoon, view.DisplayStatus)
}

func TestClassifyContract_NonActiveStatuses(t *testing.T) {
	tests := []struct {
		kind       domain.ContractKind
		status     domain.ContractStatus
		display    domain.DisplayStatus
		hasExpired bool
	}{
		{kind: domain.ContractKindRental, status: domain.ContractStatusDraft, display: domain.DisplayStatusDraft},
		{kind: domain.ContractKindRental, status: domain.ContractStatusExpired, display: domain.DisplayStatusExpired, hasExpired: true},
		{kind: domain.ContractKindRental, status: domain.ContractStatusTerminated, display: domain.DisplayStatusTerminated},
		{kind: domain.ContractKindRental, status: domain.ContractStatusRenewed, display: domain.DisplayStatusRenewed},
		{kind: domain.ContractKindSupply, status: domain.ContractStatusSuspended, display: domain.DisplayStatusSuspended},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			// Future start and distant end: a draft must still not count down.
			c := contract(tt.kind, tt.status, 5, 200)

			view, err := ClassifyContract(c, now, DefaultExpiringSoonDays)
			require.NoError(t, err)
			assert.Equal(t, tt.display, view.DisplayStatus)
			assert.Equal(t, 0, view.RemainingDays)
			assert.False(t, view.IsActive)
			assert.Equal(t, tt.hasExpired, view.HasExpired)
		})
	}
}

func TestClassifyContract_UnrecognizedStatus(t *testing.T) {
	tests := []struct {
		name   string
		kind   domain.ContractKind
		status domain.ContractStatus
	}{
		{name: "unknown value", kind: domain.ContractKindRental, status: "archived"},
		{name: "suspended is supply only", kind: domain.ContractKindRental, status: domain.ContractStatusSuspended},
		{name: "renewed is rental only", kind: domain.ContractKindSupply, status: domain.ContractStatusRenewed},
		{name: "unknown kind", kind: "lease", status: domain.ContractStatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ClassifyContract(contract(tt.kind, tt.status, -10, 100), now, DefaultExpiringSoonDays)
			assert.ErrorIs(t, err, customError.ErrUnrecognizedEnumValue)
		})
	}
}

func TestClassifyContract_ActiveWithoutStartDate(t *testing.T) {
	c := contract(domain.ContractKindSupply, domain.ContractStatusActive, 0, 100)
	c.StartDate = nil

	_, err := ClassifyContract(c, now, DefaultExpiringSoonDays)
	assert.ErrorIs(t, err, customError.ErrIncompleteRecord)
}

func TestDescribeContract(t *testing.T) {
	c := contract(domain.ContractKindRental, domain.ContractStatusActive, -100, 10)

	view, err := DescribeContract(c, now, DefaultExpiringSoonDays, domain.LocaleEnglish)
	require.NoError(t, err)
	assert.Equal(t, "Active, expiring soon", view.Label)
}
