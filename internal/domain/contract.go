package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contract represents a rental or supply contract
type Contract struct {
	ID               uuid.UUID        `json:"id" db:"id"`
	ContractNumber   string           `json:"contract_number" db:"contract_number"`
	Kind             ContractKind     `json:"kind" db:"kind"`
	PropertyID       *uuid.UUID       `json:"property_id,omitempty" db:"property_id"`
	UnitID           *uuid.UUID       `json:"unit_id,omitempty" db:"unit_id"`
	TenantID         *uuid.UUID       `json:"tenant_id,omitempty" db:"tenant_id"`
	OwnerID          *uuid.UUID       `json:"owner_id,omitempty" db:"owner_id"`
	Status           ContractStatus   `json:"contract_status" db:"contract_status"`
	StartDate        *time.Time       `json:"start_date,omitempty" db:"start_date"`
	EndDate          *time.Time       `json:"end_date,omitempty" db:"end_date"`
	DurationMonths   int              `json:"duration_months" db:"duration_months"`
	PaymentFrequency PaymentFrequency `json:"payment_frequency" db:"payment_frequency"`
	PaymentsCount    *int             `json:"payments_count,omitempty" db:"payments_count"`
	MonthlyRent      decimal.Decimal  `json:"monthly_rent" db:"monthly_rent"`
	RenewedFromID    *uuid.UUID       `json:"renewed_from_id,omitempty" db:"renewed_from_id"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}

// ContractView is the read-time lifecycle classification of a contract.
type ContractView struct {
	ContractID    uuid.UUID      `json:"contract_id"`
	StoredStatus  ContractStatus `json:"contract_status"`
	DisplayStatus DisplayStatus  `json:"display_status"`
	Label         string         `json:"label"`
	Color         Color          `json:"color"`
	RemainingDays int            `json:"remaining_days"`
	IsActive      bool           `json:"is_active"`
	HasExpired    bool           `json:"has_expired"`
}

// DTOs for requests and responses

type CreateContractRequest struct {
	ContractNumber   string          `json:"contract_number" validate:"required,max=64"`
	Kind             string          `json:"kind" validate:"required,oneof=rental supply"`
	PropertyID       *uuid.UUID      `json:"property_id"`
	UnitID           *uuid.UUID      `json:"unit_id"`
	TenantID         *uuid.UUID      `json:"tenant_id"`
	OwnerID          *uuid.UUID      `json:"owner_id"`
	StartDate        time.Time       `json:"start_date" validate:"required"`
	DurationMonths   int             `json:"duration_months" validate:"required,gt=0"`
	PaymentFrequency string          `json:"payment_frequency" validate:"required"`
	MonthlyRent      decimal.Decimal `json:"monthly_rent"`
}

type RenewContractRequest struct {
	ContractNumber string          `json:"contract_number" validate:"required,max=64"`
	DurationMonths int             `json:"duration_months" validate:"omitempty,gt=0"`
	MonthlyRent    decimal.Decimal `json:"monthly_rent"`
}

type ActivateContractResponse struct {
	Contract       *Contract            `json:"contract"`
	Schedule       []*CollectionPayment `json:"schedule,omitempty"`
	SupplySchedule []*SupplyPayment     `json:"supply_schedule,omitempty"`
}

type RenewContractResponse struct {
	Previous  *Contract `json:"previous"`
	Successor *Contract `json:"successor"`
}
