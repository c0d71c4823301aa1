package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/rent-engine/internal/domain"
)

// ContractRepository defines the interface for contract data operations.
// Writes take the executor of the caller's transaction.
type ContractRepository interface {
	// Create creates a new contract
	Create(ctx context.Context, exec sqlx.ExtContext, contract *domain.Contract) error

	// GetByID retrieves a contract by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error)

	// Update updates a contract's mutable fields while it still has status from.
	// It returns sql.ErrNoRows when the stored status has moved on.
	Update(ctx context.Context, exec sqlx.ExtContext, contract *domain.Contract, from domain.ContractStatus) error

	// UpdateStatus moves a contract from one status to another, or returns
	// sql.ErrNoRows when the stored status is no longer from
	UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id uuid.UUID, from, to domain.ContractStatus) error

	// ListActiveEndedBefore lists active contracts whose end date is before the given day
	ListActiveEndedBefore(ctx context.Context, day time.Time) ([]*domain.Contract, error)

	// List retrieves contracts, optionally restricted to one stored status
	List(ctx context.Context, status *domain.ContractStatus) ([]*domain.Contract, error)
}

// CollectionPaymentRepository defines the interface for rent collection payments.
// Payments are never hard-deleted.
type CollectionPaymentRepository interface {
	// CreateBatch inserts a contract's installments through exec
	CreateBatch(ctx context.Context, exec sqlx.ExtContext, payments []*domain.CollectionPayment) error

	// GetByID retrieves a payment by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CollectionPayment, error)

	// ListByContract retrieves a contract's payments ordered by installment
	ListByContract(ctx context.Context, contractID uuid.UUID) ([]*domain.CollectionPayment, error)

	// ListByFilter retrieves the payments selected by filter, evaluated on today
	ListByFilter(ctx context.Context, filter domain.CollectionFilter, today time.Time, graceDays int) ([]*domain.CollectionPayment, error)

	// RecordCollection sets the collection date of an uncollected payment
	RecordCollection(ctx context.Context, id uuid.UUID, collectedOn time.Time) error

	// Postpone sets the delay duration and reason of an uncollected payment
	Postpone(ctx context.Context, id uuid.UUID, days int, reason string) error

	// Delete always refuses
	Delete(ctx context.Context, id uuid.UUID) error
}

// SupplyPaymentRepository defines the interface for owner supply payments.
type SupplyPaymentRepository interface {
	// CreateBatch inserts a contract's payouts through exec
	CreateBatch(ctx context.Context, exec sqlx.ExtContext, payments []*domain.SupplyPayment) error

	// GetByID retrieves a payout by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SupplyPayment, error)

	// ListByContract retrieves a contract's payouts ordered by installment
	ListByContract(ctx context.Context, contractID uuid.UUID) ([]*domain.SupplyPayment, error)

	// ListUnpaidDueBy retrieves unpaid payouts due on or before the given day
	ListUnpaidDueBy(ctx context.Context, day time.Time) ([]*domain.SupplyPayment, error)

	// MarkPaid sets the paid date of an unpaid payout
	MarkPaid(ctx context.Context, id uuid.UUID, paidOn time.Time) error

	// Delete always refuses
	Delete(ctx context.Context, id uuid.UUID) error
}

// SettingsRepository stores application settings as key/value text.
type SettingsRepository interface {
	// Get returns the stored value, or sql.ErrNoRows when the key is unset
	Get(ctx context.Context, key string) (string, error)

	// Set upserts a value
	Set(ctx context.Context, key, value string) error
}
