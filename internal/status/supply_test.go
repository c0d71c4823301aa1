package status

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/rent-engine/internal/domain"
	customError "github.com/segyhp/rent-engine/pkg/errors"
)

func TestClassifySupply(t *testing.T) {
	tests := []struct {
		name     string
		due      int
		paid     *int
		expected domain.SupplyStatus
	}{
		{name: "due today is worth collecting", due: 0, expected: domain.SupplyStatusWorthCollecting},
		{name: "due long ago is worth collecting", due: -40, expected: domain.SupplyStatusWorthCollecting},
		{name: "due tomorrow is pending", due: 1, expected: domain.SupplyStatusPending},
		{name: "paid overrides future due date", due: 90, paid: intPtr(-1), expected: domain.SupplyStatusCollected},
		{name: "paid overrides past due date", due: -90, paid: intPtr(-60), expected: domain.SupplyStatusCollected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &domain.SupplyPayment{ID: uuid.New(), DueDate: day(tt.due)}
			if tt.paid != nil {
				p.PaidDate = day(*tt.paid)
			}

			s, err := ClassifySupply(p, now)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestClassifySupply_MissingDueDate(t *testing.T) {
	_, err := ClassifySupply(&domain.SupplyPayment{ID: uuid.New()}, now)
	assert.ErrorIs(t, err, customError.ErrIncompleteRecord)
}

func TestDescribeSupply(t *testing.T) {
	view, err := DescribeSupply(&domain.SupplyPayment{ID: uuid.New(), DueDate: day(0)}, now, "fr")
	require.NoError(t, err)
	assert.Equal(t, "Worth collecting", view.Label)
	assert.Equal(t, domain.ColorWarning, view.Color)
}
