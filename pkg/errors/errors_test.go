package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"business error", WrapContractNotFound("c-1"), ErrCodeContractNotFound},
		{"wrapped business error", fmt.Errorf("activate: %w", WrapInvalidDelayDuration(0)), ErrCodeInvalidDelayDuration},
		{"plain error", errors.New("boom"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Code(tt.err))
		})
	}
}

func TestBusinessError_Unwrap(t *testing.T) {
	err := WrapInvalidScheduleConfiguration(10, "quarterly")

	assert.True(t, errors.Is(err, ErrInvalidScheduleConfiguration))
	assert.False(t, errors.Is(err, ErrIncompleteRecord))
	assert.Contains(t, err.Error(), "INVALID_SCHEDULE_CONFIGURATION")
	assert.Contains(t, err.Error(), "10 months")
}

func TestBusinessError_ErrorWithoutCause(t *testing.T) {
	err := NewBusinessError("X", "message", nil)

	assert.Equal(t, "X: message", err.Error())
	assert.Nil(t, err.Unwrap())
}
