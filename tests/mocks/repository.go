package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/rent-engine/internal/domain"
)

type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) Create(ctx context.Context, exec sqlx.ExtContext, contract *domain.Contract) error {
	args := m.Called(ctx, exec, contract)
	return args.Error(0)
}

func (m *MockContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractRepository) Update(ctx context.Context, exec sqlx.ExtContext, contract *domain.Contract, from domain.ContractStatus) error {
	args := m.Called(ctx, exec, contract, from)
	return args.Error(0)
}

func (m *MockContractRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id uuid.UUID, from, to domain.ContractStatus) error {
	args := m.Called(ctx, exec, id, from, to)
	return args.Error(0)
}

func (m *MockContractRepository) ListActiveEndedBefore(ctx context.Context, day time.Time) ([]*domain.Contract, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Contract), args.Error(1)
}

func (m *MockContractRepository) List(ctx context.Context, status *domain.ContractStatus) ([]*domain.Contract, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Contract), args.Error(1)
}

type MockCollectionPaymentRepository struct {
	mock.Mock
}

func (m *MockCollectionPaymentRepository) CreateBatch(ctx context.Context, exec sqlx.ExtContext, payments []*domain.CollectionPayment) error {
	args := m.Called(ctx, exec, payments)
	return args.Error(0)
}

func (m *MockCollectionPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CollectionPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionPayment), args.Error(1)
}

func (m *MockCollectionPaymentRepository) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*domain.CollectionPayment, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CollectionPayment), args.Error(1)
}

func (m *MockCollectionPaymentRepository) ListByFilter(ctx context.Context, filter domain.CollectionFilter, today time.Time, graceDays int) ([]*domain.CollectionPayment, error) {
	args := m.Called(ctx, filter, today, graceDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CollectionPayment), args.Error(1)
}

func (m *MockCollectionPaymentRepository) RecordCollection(ctx context.Context, id uuid.UUID, collectedOn time.Time) error {
	args := m.Called(ctx, id, collectedOn)
	return args.Error(0)
}

func (m *MockCollectionPaymentRepository) Postpone(ctx context.Context, id uuid.UUID, days int, reason string) error {
	args := m.Called(ctx, id, days, reason)
	return args.Error(0)
}

func (m *MockCollectionPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSupplyPaymentRepository struct {
	mock.Mock
}

func (m *MockSupplyPaymentRepository) CreateBatch(ctx context.Context, exec sqlx.ExtContext, payments []*domain.SupplyPayment) error {
	args := m.Called(ctx, exec, payments)
	return args.Error(0)
}

func (m *MockSupplyPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SupplyPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupplyPayment), args.Error(1)
}

func (m *MockSupplyPaymentRepository) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*domain.SupplyPayment, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SupplyPayment), args.Error(1)
}

func (m *MockSupplyPaymentRepository) ListUnpaidDueBy(ctx context.Context, day time.Time) ([]*domain.SupplyPayment, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SupplyPayment), args.Error(1)
}

func (m *MockSupplyPaymentRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidOn time.Time) error {
	args := m.Called(ctx, id, paidOn)
	return args.Error(0)
}

func (m *MockSupplyPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
