package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CollectionPayment is one rent installment collected from a tenant.
// It has no stored status; see status.ClassifyCollection.
type CollectionPayment struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	ContractID        uuid.UUID       `json:"contract_id" db:"contract_id"`
	InstallmentNumber int             `json:"installment_number" db:"installment_number"`
	Amount            decimal.Decimal `json:"amount" db:"amount"`
	DueDateStart      *time.Time      `json:"due_date_start" db:"due_date_start"`
	DueDateEnd        *time.Time      `json:"due_date_end" db:"due_date_end"`
	CollectionDate    *time.Time      `json:"collection_date,omitempty" db:"collection_date"`
	DelayDuration     *int            `json:"delay_duration,omitempty" db:"delay_duration"`
	DelayReason       *string         `json:"delay_reason,omitempty" db:"delay_reason"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// IsCollected reports whether a collection date has been recorded.
func (p *CollectionPayment) IsCollected() bool {
	return p.CollectionDate != nil
}

// IsPostponed reports whether a positive delay has been applied.
func (p *CollectionPayment) IsPostponed() bool {
	return p.DelayDuration != nil && *p.DelayDuration > 0
}

// SupplyPayment is one payout owed to a property owner.
type SupplyPayment struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	ContractID        uuid.UUID       `json:"contract_id" db:"contract_id"`
	InstallmentNumber int             `json:"installment_number" db:"installment_number"`
	Amount            decimal.Decimal `json:"amount" db:"amount"`
	DueDate           *time.Time      `json:"due_date" db:"due_date"`
	PaidDate          *time.Time      `json:"paid_date,omitempty" db:"paid_date"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
}

// CollectionFilter selects a subset of collection payments.
type CollectionFilter string

const (
	CollectionFilterAll              CollectionFilter = "all"
	CollectionFilterOpen             CollectionFilter = "open"
	CollectionFilterDueForCollection CollectionFilter = "due_for_collection"
	CollectionFilterOverdue          CollectionFilter = "overdue"
	CollectionFilterPostponed        CollectionFilter = "postponed"
	CollectionFilterUpcoming         CollectionFilter = "upcoming"
)

// ParseCollectionFilter validates a raw filter value; empty means all.
func ParseCollectionFilter(raw string) (CollectionFilter, bool) {
	switch f := CollectionFilter(raw); f {
	case "":
		return CollectionFilterAll, true
	case CollectionFilterAll, CollectionFilterOpen, CollectionFilterDueForCollection, CollectionFilterOverdue,
		CollectionFilterPostponed, CollectionFilterUpcoming:
		return f, true
	}
	return "", false
}

// CollectionPaymentView pairs a payment with its derived status.
type CollectionPaymentView struct {
	Payment *CollectionPayment `json:"payment"`
	Status  CollectionStatus   `json:"status"`
	Label   string             `json:"label"`
	Color   Color              `json:"color"`
}

// SupplyPaymentView pairs a supply payment with its derived status.
type SupplyPaymentView struct {
	Payment *SupplyPayment `json:"payment"`
	Status  SupplyStatus   `json:"status"`
	Label   string         `json:"label"`
	Color   Color          `json:"color"`
}

type RecordCollectionRequest struct {
	CollectionDate *time.Time `json:"collection_date"`
}

type PostponePaymentRequest struct {
	DelayDuration int    `json:"delay_duration" validate:"required,gt=0"`
	DelayReason   string `json:"delay_reason" validate:"max=500"`
}

type RecordSupplyPaymentRequest struct {
	PaidDate *time.Time `json:"paid_date"`
}

type GraceDaysRequest struct {
	GraceDays int `json:"grace_days" validate:"gte=0,lte=365"`
}

// CollectionDigest summarizes open collections on one day.
type CollectionDigest struct {
	Date          time.Time                `json:"date"`
	GraceDays     int                      `json:"grace_days"`
	Counts        map[CollectionStatus]int `json:"counts"`
	OverdueAmount decimal.Decimal          `json:"overdue_amount"`
	DueAmount     decimal.Decimal          `json:"due_amount"`
	Skipped       int                      `json:"skipped"`
}
