package domain

import (
	customError "github.com/segyhp/rent-engine/pkg/errors"
)

// PaymentFrequency is how often a contract's installments fall due.
type PaymentFrequency string

const (
	FrequencyMonthly      PaymentFrequency = "monthly"
	FrequencyQuarterly    PaymentFrequency = "quarterly"
	FrequencySemiAnnually PaymentFrequency = "semi_annually"
	FrequencyAnnually     PaymentFrequency = "annually"
)

// Frequencies lists every supported payment frequency.
var Frequencies = []PaymentFrequency{
	FrequencyMonthly,
	FrequencyQuarterly,
	FrequencySemiAnnually,
	FrequencyAnnually,
}

// MonthsPerInstallment returns the number of months covered by one installment.
func (f PaymentFrequency) MonthsPerInstallment() (int, error) {
	switch f {
	case FrequencyMonthly:
		return 1, nil
	case FrequencyQuarterly:
		return 3, nil
	case FrequencySemiAnnually:
		return 6, nil
	case FrequencyAnnually:
		return 12, nil
	}
	return 0, customError.WrapUnrecognizedEnumValue("payment_frequency", string(f))
}

// ParsePaymentFrequency validates a raw frequency value.
func ParsePaymentFrequency(raw string) (PaymentFrequency, error) {
	f := PaymentFrequency(raw)
	if _, err := f.MonthsPerInstallment(); err != nil {
		return "", err
	}
	return f, nil
}

// ContractKind distinguishes tenant rental contracts from owner supply contracts.
type ContractKind string

const (
	ContractKindRental ContractKind = "rental"
	ContractKindSupply ContractKind = "supply"
)

// ParseContractKind validates a raw contract kind.
func ParseContractKind(raw string) (ContractKind, error) {
	switch k := ContractKind(raw); k {
	case ContractKindRental, ContractKindSupply:
		return k, nil
	}
	return "", customError.WrapUnrecognizedEnumValue("contract_kind", raw)
}

// ContractStatus is the stored status flag of a contract.
type ContractStatus string

const (
	ContractStatusDraft      ContractStatus = "draft"
	ContractStatusActive     ContractStatus = "active"
	ContractStatusExpired    ContractStatus = "expired"
	ContractStatusTerminated ContractStatus = "terminated"
	ContractStatusRenewed    ContractStatus = "renewed"   // rental only
	ContractStatusSuspended  ContractStatus = "suspended" // supply only
)

// Allows reports whether status belongs to the status set of kind.
func (k ContractKind) Allows(status ContractStatus) bool {
	switch status {
	case ContractStatusDraft, ContractStatusActive, ContractStatusExpired, ContractStatusTerminated:
		return k == ContractKindRental || k == ContractKindSupply
	case ContractStatusRenewed:
		return k == ContractKindRental
	case ContractStatusSuspended:
		return k == ContractKindSupply
	}
	return false
}

// ParseContractStatus validates a raw status for the given contract kind.
func ParseContractStatus(kind ContractKind, raw string) (ContractStatus, error) {
	status := ContractStatus(raw)
	if !kind.Allows(status) {
		return "", customError.WrapUnrecognizedEnumValue(string(kind)+" contract_status", raw)
	}
	return status, nil
}

// CollectionStatus is the derived status of a rent collection payment.
type CollectionStatus string

const (
	CollectionStatusCollected CollectionStatus = "collected"
	CollectionStatusPostponed CollectionStatus = "postponed"
	CollectionStatusOverdue   CollectionStatus = "overdue"
	CollectionStatusDue       CollectionStatus = "due"
	CollectionStatusUpcoming  CollectionStatus = "upcoming"
)

// SupplyStatus is the derived status of an owner supply payment.
type SupplyStatus string

const (
	SupplyStatusCollected       SupplyStatus = "collected"
	SupplyStatusWorthCollecting SupplyStatus = "worth_collecting"
	SupplyStatusPending         SupplyStatus = "pending"
)

// DisplayStatus is the read-time lifecycle status of a contract.
type DisplayStatus string

const (
	DisplayStatusDraft        DisplayStatus = "draft"
	DisplayStatusNotStarted   DisplayStatus = "not_started"
	DisplayStatusActive       DisplayStatus = "active"
	DisplayStatusExpiringSoon DisplayStatus = "expiring_soon"
	DisplayStatusExpired      DisplayStatus = "expired"
	DisplayStatusTerminated   DisplayStatus = "terminated"
	DisplayStatusRenewed      DisplayStatus = "renewed"
	DisplayStatusSuspended    DisplayStatus = "suspended"
)

// Color is the severity tag consumed by badge renderers.
type Color string

const (
	ColorSuccess Color = "success"
	ColorDanger  Color = "danger"
	ColorWarning Color = "warning"
	ColorInfo    Color = "info"
	ColorGray    Color = "gray"
)
