package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/rent-engine/internal/domain"
)

type MockGraceSettings struct {
	mock.Mock
}

func (m *MockGraceSettings) GraceDays(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockGraceSettings) SetGraceDays(ctx context.Context, days int) error {
	args := m.Called(ctx, days)
	return args.Error(0)
}

type MockLeaseService struct {
	mock.Mock
}

func (m *MockLeaseService) CreateContract(ctx context.Context, request *domain.CreateContractRequest) (*domain.Contract, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockLeaseService) GetContract(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockLeaseService) ListContracts(ctx context.Context, status *domain.ContractStatus) ([]*domain.Contract, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Contract), args.Error(1)
}

func (m *MockLeaseService) ActivateContract(ctx context.Context, id uuid.UUID) (*domain.ActivateContractResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivateContractResponse), args.Error(1)
}

func (m *MockLeaseService) TerminateContract(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockLeaseService) SuspendContract(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockLeaseService) ResumeContract(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockLeaseService) RenewContract(ctx context.Context, id uuid.UUID, request *domain.RenewContractRequest) (*domain.RenewContractResponse, error) {
	args := m.Called(ctx, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RenewContractResponse), args.Error(1)
}

func (m *MockLeaseService) GetContractStatus(ctx context.Context, id uuid.UUID, locale string) (domain.ContractView, error) {
	args := m.Called(ctx, id, locale)
	return args.Get(0).(domain.ContractView), args.Error(1)
}

func (m *MockLeaseService) ExpireContracts(ctx context.Context, asOf time.Time) (int, error) {
	args := m.Called(ctx, asOf)
	return args.Int(0), args.Error(1)
}

func (m *MockLeaseService) ListCollections(ctx context.Context, filter domain.CollectionFilter, locale string) ([]domain.CollectionPaymentView, error) {
	args := m.Called(ctx, filter, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CollectionPaymentView), args.Error(1)
}

func (m *MockLeaseService) ListContractCollections(ctx context.Context, contractID uuid.UUID, locale string) ([]domain.CollectionPaymentView, error) {
	args := m.Called(ctx, contractID, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CollectionPaymentView), args.Error(1)
}

func (m *MockLeaseService) CollectionsDigest(ctx context.Context) (*domain.CollectionDigest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionDigest), args.Error(1)
}

func (m *MockLeaseService) RecordCollection(ctx context.Context, id uuid.UUID, request *domain.RecordCollectionRequest) (*domain.CollectionPaymentView, error) {
	args := m.Called(ctx, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionPaymentView), args.Error(1)
}

func (m *MockLeaseService) PostponePayment(ctx context.Context, id uuid.UUID, request *domain.PostponePaymentRequest) (*domain.CollectionPaymentView, error) {
	args := m.Called(ctx, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionPaymentView), args.Error(1)
}

func (m *MockLeaseService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeaseService) ListSupplyPayments(ctx context.Context, contractID uuid.UUID, locale string) ([]domain.SupplyPaymentView, error) {
	args := m.Called(ctx, contractID, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupplyPaymentView), args.Error(1)
}

func (m *MockLeaseService) ListWorthCollectingSupplies(ctx context.Context, locale string) ([]domain.SupplyPaymentView, error) {
	args := m.Called(ctx, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupplyPaymentView), args.Error(1)
}

func (m *MockLeaseService) DeleteSupplyPayment(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeaseService) RecordSupplyPayment(ctx context.Context, id uuid.UUID, request *domain.RecordSupplyPaymentRequest) (*domain.SupplyPaymentView, error) {
	args := m.Called(ctx, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupplyPaymentView), args.Error(1)
}

func (m *MockLeaseService) GraceDays(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockLeaseService) SetGraceDays(ctx context.Context, days int) error {
	args := m.Called(ctx, days)
	return args.Error(0)
}
