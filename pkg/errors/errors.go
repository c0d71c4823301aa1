package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidScheduleConfiguration = errors.New("invalid schedule configuration")
	ErrIncompleteRecord             = errors.New("incomplete record")
	ErrUnrecognizedEnumValue        = errors.New("unrecognized enum value")
	ErrContractNotFound             = errors.New("contract not found")
	ErrPaymentNotFound              = errors.New("payment not found")
	ErrPaymentAlreadyCollected      = errors.New("payment is already collected")
	ErrPaymentDeletionForbidden     = errors.New("payments cannot be deleted")
	ErrInvalidContractTransition    = errors.New("invalid contract status transition")
	ErrInvalidDelayDuration         = errors.New("delay duration must be greater than 0")
	ErrInvalidAmount                = errors.New("amount must be greater than 0")
	ErrInvalidGraceDays             = errors.New("grace days must not be negative")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidScheduleConfiguration = "INVALID_SCHEDULE_CONFIGURATION"
	ErrCodeIncompleteRecord             = "INCOMPLETE_RECORD"
	ErrCodeUnrecognizedEnumValue        = "UNRECOGNIZED_ENUM_VALUE"
	ErrCodeContractNotFound             = "CONTRACT_NOT_FOUND"
	ErrCodePaymentNotFound              = "PAYMENT_NOT_FOUND"
	ErrCodePaymentAlreadyCollected      = "PAYMENT_ALREADY_COLLECTED"
	ErrCodePaymentDeletionForbidden     = "PAYMENT_DELETION_FORBIDDEN"
	ErrCodeInvalidContractTransition    = "INVALID_CONTRACT_TRANSITION"
	ErrCodeInvalidDelayDuration         = "INVALID_DELAY_DURATION"
	ErrCodeInvalidAmount                = "INVALID_AMOUNT"
	ErrCodeInvalidGraceDays             = "INVALID_GRACE_DAYS"
	ErrCodeDatabaseError                = "DATABASE_ERROR"
	ErrCodeCacheError                   = "CACHE_ERROR"
)

// Code returns the business code carried by err, or "" when err is not a BusinessError.
func Code(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

func WrapInvalidScheduleConfiguration(durationMonths int, frequency string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidScheduleConfiguration,
		fmt.Sprintf("Duration of %d months is not divisible into %s installments", durationMonths, frequency),
		ErrInvalidScheduleConfiguration,
	)
}

func WrapIncompleteRecord(record, field string) *BusinessError {
	return NewBusinessError(
		ErrCodeIncompleteRecord,
		fmt.Sprintf("%s is missing required field %s", record, field),
		ErrIncompleteRecord,
	)
}

func WrapUnrecognizedEnumValue(enum, value string) *BusinessError {
	return NewBusinessError(
		ErrCodeUnrecognizedEnumValue,
		fmt.Sprintf("Unrecognized %s value %q", enum, value),
		ErrUnrecognizedEnumValue,
	)
}

func WrapContractNotFound(contractID string) *BusinessError {
	return NewBusinessError(
		ErrCodeContractNotFound,
		fmt.Sprintf("Contract with ID %s not found", contractID),
		ErrContractNotFound,
	)
}

func WrapPaymentNotFound(paymentID string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentNotFound,
		fmt.Sprintf("Payment with ID %s not found", paymentID),
		ErrPaymentNotFound,
	)
}

func WrapPaymentAlreadyCollected(paymentID string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentAlreadyCollected,
		fmt.Sprintf("Payment with ID %s is already collected", paymentID),
		ErrPaymentAlreadyCollected,
	)
}

func WrapPaymentDeletionForbidden(paymentID string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentDeletionForbidden,
		fmt.Sprintf("Payment with ID %s cannot be deleted", paymentID),
		ErrPaymentDeletionForbidden,
	)
}

func WrapInvalidContractTransition(from, to string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidContractTransition,
		fmt.Sprintf("Contract cannot move from %s to %s", from, to),
		ErrInvalidContractTransition,
	)
}

func WrapInvalidDelayDuration(days int) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDelayDuration,
		fmt.Sprintf("Invalid delay duration: %d days", days),
		ErrInvalidDelayDuration,
	)
}

func WrapInvalidAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidAmount,
		fmt.Sprintf("Invalid amount: %s", amount),
		ErrInvalidAmount,
	)
}

func WrapInvalidGraceDays(days int) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidGraceDays,
		fmt.Sprintf("Invalid grace days: %d", days),
		ErrInvalidGraceDays,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
