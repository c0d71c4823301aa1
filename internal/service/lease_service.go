package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/segyhp/rent-engine/internal/config"
	"github.com/segyhp/rent-engine/internal/domain"
	"github.com/segyhp/rent-engine/internal/metrics"
	"github.com/segyhp/rent-engine/internal/repository"
	"github.com/segyhp/rent-engine/internal/schedule"
	"github.com/segyhp/rent-engine/internal/status"
	customError "github.com/segyhp/rent-engine/pkg/errors"
	"github.com/segyhp/rent-engine/pkg/utils"
)

// GraceSettings provides the live collection grace period.
type GraceSettings interface {
	GraceDays(ctx context.Context) (int, error)
	SetGraceDays(ctx context.Context, days int) error
}

type LeaseService struct {
	ContractRepo   repository.ContractRepository
	CollectionRepo repository.CollectionPaymentRepository
	SupplyRepo     repository.SupplyPaymentRepository
	tx             repository.Transactor
	settings       GraceSettings
	config         *config.Config
	metrics        *metrics.Metrics
	log            zerolog.Logger
	now            func() time.Time
}

func NewLeaseService(
	contractRepo repository.ContractRepository,
	collectionRepo repository.CollectionPaymentRepository,
	supplyRepo repository.SupplyPaymentRepository,
	tx repository.Transactor,
	settings GraceSettings,
	cfg *config.Config,
	m *metrics.Metrics,
	log zerolog.Logger,
) *LeaseService {
	loc := cfg.Location()
	return &LeaseService{
		ContractRepo:   contractRepo,
		CollectionRepo: collectionRepo,
		SupplyRepo:     supplyRepo,
		tx:             tx,
		settings:       settings,
		config:         cfg,
		metrics:        m,
		log:            log,
		now:            func() time.Time { return time.Now().In(loc) },
	}
}

// transitions lists the stored status moves a contract may make outside activation.
var transitions = map[domain.ContractStatus][]domain.ContractStatus{
	domain.ContractStatusActive: {
		domain.ContractStatusTerminated,
		domain.ContractStatusRenewed,
		domain.ContractStatusExpired,
		domain.ContractStatusSuspended,
	},
	domain.ContractStatusSuspended: {domain.ContractStatusActive},
}

func canTransition(kind domain.ContractKind, from, to domain.ContractStatus) bool {
	if !kind.Allows(from) || !kind.Allows(to) {
		return false
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// contractWriteError maps a failed guarded write. sql.ErrNoRows means the stored
// status was no longer from when the write ran.
func contractWriteError(err error, from, to domain.ContractStatus) error {
	if errors.Is(err, sql.ErrNoRows) {
		return customError.WrapInvalidContractTransition(string(from), string(to))
	}
	if customError.Code(err) != "" {
		return err
	}
	return customError.WrapDatabaseError(err)
}

// CreateContract stores a new draft contract with its payments count and end date filled in.
func (s *LeaseService) CreateContract(ctx context.Context, request *domain.CreateContractRequest) (*domain.Contract, error) {
	kind, err := domain.ParseContractKind(request.Kind)
	if err != nil {
		return nil, err
	}
	frequency, err := domain.ParsePaymentFrequency(request.PaymentFrequency)
	if err != nil {
		return nil, err
	}
	if !request.MonthlyRent.IsPositive() {
		return nil, customError.WrapInvalidAmount(request.MonthlyRent.String())
	}

	start := utils.DateOnly(request.StartDate)
	contract := &domain.Contract{
		ID:               uuid.New(),
		ContractNumber:   request.ContractNumber,
		Kind:             kind,
		PropertyID:       request.PropertyID,
		UnitID:           request.UnitID,
		TenantID:         request.TenantID,
		OwnerID:          request.OwnerID,
		Status:           domain.ContractStatusDraft,
		StartDate:        &start,
		DurationMonths:   request.DurationMonths,
		PaymentFrequency: frequency,
		MonthlyRent:      request.MonthlyRent,
	}
	if err := schedule.EnsurePaymentsCount(contract); err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(tx sqlx.ExtContext) error {
		return s.ContractRepo.Create(ctx, tx, contract)
	})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.Info().
		Str("contract_id", contract.ID.String()).
		Str("kind", string(kind)).
		Int("payments_count", *contract.PaymentsCount).
		Msg("contract created")
	return contract, nil
}

// GetContract loads a contract or returns ContractNotFound.
func (s *LeaseService) GetContract(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	contract, err := s.ContractRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapContractNotFound(id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return contract, nil
}

// ListContracts returns stored contracts, optionally restricted to one status.
func (s *LeaseService) ListContracts(ctx context.Context, contractStatus *domain.ContractStatus) ([]*domain.Contract, error) {
	contracts, err := s.ContractRepo.List(ctx, contractStatus)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return contracts, nil
}

// ActivateContract moves a draft contract to active and generates its schedule.
// Durations that do not split evenly into installments are refused.
func (s *LeaseService) ActivateContract(ctx context.Context, id uuid.UUID) (*domain.ActivateContractResponse, error) {
	contract, err := s.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}
	if contract.Status != domain.ContractStatusDraft {
		return nil, customError.WrapInvalidContractTransition(string(contract.Status), string(domain.ContractStatusActive))
	}
	if err := schedule.EnsurePaymentsCount(contract); err != nil {
		return nil, err
	}

	result := &domain.ActivateContractResponse{Contract: contract}
	switch contract.Kind {
	case domain.ContractKindRental:
		if result.Schedule, err = schedule.GenerateCollections(contract); err != nil {
			return nil, err
		}
	case domain.ContractKindSupply:
		if result.SupplySchedule, err = schedule.GenerateSupplies(contract); err != nil {
			return nil, err
		}
	default:
		return nil, customError.WrapUnrecognizedEnumValue("contract_kind", string(contract.Kind))
	}

	// schedule and status change commit together
	contract.Status = domain.ContractStatusActive
	err = s.tx.WithinTx(ctx, func(tx sqlx.ExtContext) error {
		if result.Schedule != nil {
			if err := s.CollectionRepo.CreateBatch(ctx, tx, result.Schedule); err != nil {
				return err
			}
		}
		if result.SupplySchedule != nil {
			if err := s.SupplyRepo.CreateBatch(ctx, tx, result.SupplySchedule); err != nil {
				return err
			}
		}
		return s.ContractRepo.Update(ctx, tx, contract, domain.ContractStatusDraft)
	})
	if err != nil {
		contract.Status = domain.ContractStatusDraft
		return nil, contractWriteError(err, domain.ContractStatusDraft, domain.ContractStatusActive)
	}

	s.log.Info().
		Str("contract_id", contract.ID.String()).
		Int("installments", *contract.PaymentsCount).
		Msg("contract activated")
	return result, nil
}

func (s *LeaseService) transition(ctx context.Context, id uuid.UUID, to domain.ContractStatus) (*domain.Contract, error) {
	contract, err := s.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(contract.Kind, contract.Status, to) {
		return nil, customError.WrapInvalidContractTransition(string(contract.Status), string(to))
	}
	err = s.tx.WithinTx(ctx, func(tx sqlx.ExtContext) error {
		return s.ContractRepo.UpdateStatus(ctx, tx, id, contract.Status, to)
	})
	if err != nil {
		return nil, contractWriteError(err, contract.Status, to)
	}

	s.log.Info().
		Str("contract_id", id.String()).
		Str("from", string(contract.Status)).
		Str("to", string(to)).
		Msg("contract status changed")
	contract.Status = to
	return contract, nil
}

func (s *LeaseService) TerminateContract(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	return s.transition(ctx, id, domain.ContractStatusTerminated)
}

// SuspendContract pauses an active supply contract.
func (s *LeaseService) SuspendContract(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	return s.transition(ctx, id, domain.ContractStatusSuspended)
}

// ResumeContract reactivates a suspended supply contract.
func (s *LeaseService) ResumeContract(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	return s.transition(ctx, id, domain.ContractStatusActive)
}

// RenewContract marks an active rental contract as renewed and creates its
// successor as a draft starting the day after the old term ends.
func (s *LeaseService) RenewContract(ctx context.Context, id uuid.UUID, request *domain.RenewContractRequest) (*domain.RenewContractResponse, error) {
	previous, err := s.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(previous.Kind, previous.Status, domain.ContractStatusRenewed) {
		return nil, customError.WrapInvalidContractTransition(string(previous.Status), string(domain.ContractStatusRenewed))
	}
	if previous.StartDate == nil {
		return nil, customError.WrapIncompleteRecord("contract "+previous.ContractNumber, "start_date")
	}

	end := previous.EndDate
	if end == nil {
		derived := schedule.CalculateEndDate(*previous.StartDate, previous.DurationMonths)
		end = &derived
	}
	start := utils.DateOnly(end.AddDate(0, 0, 1))

	duration := previous.DurationMonths
	if request.DurationMonths > 0 {
		duration = request.DurationMonths
	}
	rent := previous.MonthlyRent
	if !request.MonthlyRent.IsZero() {
		if !request.MonthlyRent.IsPositive() {
			return nil, customError.WrapInvalidAmount(request.MonthlyRent.String())
		}
		rent = request.MonthlyRent
	}

	previousID := previous.ID
	successor := &domain.Contract{
		ID:               uuid.New(),
		ContractNumber:   request.ContractNumber,
		Kind:             previous.Kind,
		PropertyID:       previous.PropertyID,
		UnitID:           previous.UnitID,
		TenantID:         previous.TenantID,
		OwnerID:          previous.OwnerID,
		Status:           domain.ContractStatusDraft,
		StartDate:        &start,
		DurationMonths:   duration,
		PaymentFrequency: previous.PaymentFrequency,
		MonthlyRent:      rent,
		RenewedFromID:    &previousID,
	}
	if err := schedule.EnsurePaymentsCount(successor); err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(tx sqlx.ExtContext) error {
		if err := s.ContractRepo.UpdateStatus(ctx, tx, previous.ID, previous.Status, domain.ContractStatusRenewed); err != nil {
			return err
		}
		return s.ContractRepo.Create(ctx, tx, successor)
	})
	if err != nil {
		return nil, contractWriteError(err, previous.Status, domain.ContractStatusRenewed)
	}
	previous.Status = domain.ContractStatusRenewed

	s.log.Info().
		Str("contract_id", previous.ID.String()).
		Str("successor_id", successor.ID.String()).
		Msg("contract renewed")
	return &domain.RenewContractResponse{Previous: previous, Successor: successor}, nil
}

// GetContractStatus classifies a contract as of today.
func (s *LeaseService) GetContractStatus(ctx context.Context, id uuid.UUID, locale string) (domain.ContractView, error) {
	contract, err := s.GetContract(ctx, id)
	if err != nil {
		return domain.ContractView{}, err
	}
	return s.describeContract(contract, locale)
}

func (s *LeaseService) describeContract(contract *domain.Contract, locale string) (domain.ContractView, error) {
	view, err := status.DescribeContract(contract, s.now(), s.config.Business.ExpiringSoonDays, s.locale(locale))
	if err != nil {
		s.metrics.ClassifyErrors.WithLabelValues("contract", customError.Code(err)).Inc()
		return view, err
	}
	s.metrics.Classifications.WithLabelValues("contract", string(view.DisplayStatus)).Inc()
	return view, nil
}

// ExpireContracts moves active contracts whose end date is before asOf's day to
// expired and returns how many were moved. Contracts whose status changed after
// they were listed are left alone.
func (s *LeaseService) ExpireContracts(ctx context.Context, asOf time.Time) (int, error) {
	today := utils.DateOnly(asOf)
	contracts, err := s.ContractRepo.ListActiveEndedBefore(ctx, today)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	expired := 0
	for _, contract := range contracts {
		err := s.tx.WithinTx(ctx, func(tx sqlx.ExtContext) error {
			return s.ContractRepo.UpdateStatus(ctx, tx, contract.ID, domain.ContractStatusActive, domain.ContractStatusExpired)
		})
		if errors.Is(err, sql.ErrNoRows) {
			s.log.Info().Str("contract_id", contract.ID.String()).Msg("contract left active before expiry, skipped")
			continue
		}
		if err != nil {
			return expired, customError.WrapDatabaseError(err)
		}
		expired++
		s.metrics.ContractsExpired.Inc()
		s.log.Debug().Str("contract_id", contract.ID.String()).Msg("contract expired")
	}

	s.log.Info().Time("as_of", today).Int("expired", expired).Msg("contract expiry finished")
	return expired, nil
}

// ListCollections returns the collection payments matching filter, classified with
// the current grace period. Records that cannot be classified are logged and skipped.
func (s *LeaseService) ListCollections(ctx context.Context, filter domain.CollectionFilter, locale string) ([]domain.CollectionPaymentView, error) {
	graceDays, err := s.settings.GraceDays(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	payments, err := s.CollectionRepo.ListByFilter(ctx, filter, utils.DateOnly(now), graceDays)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return s.describeCollections(status.Filter(filter, payments, now, graceDays), now, graceDays, locale), nil
}

// ListContractCollections returns every installment of a rental contract with its status.
func (s *LeaseService) ListContractCollections(ctx context.Context, contractID uuid.UUID, locale string) ([]domain.CollectionPaymentView, error) {
	if _, err := s.GetContract(ctx, contractID); err != nil {
		return nil, err
	}
	graceDays, err := s.settings.GraceDays(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.CollectionRepo.ListByContract(ctx, contractID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return s.describeCollections(payments, s.now(), graceDays, locale), nil
}

func (s *LeaseService) describeCollections(payments []*domain.CollectionPayment, now time.Time, graceDays int, locale string) []domain.CollectionPaymentView {
	views := make([]domain.CollectionPaymentView, 0, len(payments))
	for _, payment := range payments {
		view, err := status.DescribeCollection(payment, now, graceDays, s.locale(locale))
		if err != nil {
			s.metrics.ClassifyErrors.WithLabelValues("collection", customError.Code(err)).Inc()
			s.log.Warn().Err(err).Str("payment_id", payment.ID.String()).Msg("skipping unclassifiable payment")
			continue
		}
		s.metrics.Classifications.WithLabelValues("collection", string(view.Status)).Inc()
		views = append(views, view)
	}
	return views
}

// CollectionsDigest counts uncollected installments by status as of today.
func (s *LeaseService) CollectionsDigest(ctx context.Context) (*domain.CollectionDigest, error) {
	graceDays, err := s.settings.GraceDays(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	payments, err := s.CollectionRepo.ListByFilter(ctx, domain.CollectionFilterOpen, utils.DateOnly(now), graceDays)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	digest := &domain.CollectionDigest{
		Date:          utils.DateOnly(now),
		GraceDays:     graceDays,
		Counts:        make(map[domain.CollectionStatus]int),
		OverdueAmount: decimal.Zero,
		DueAmount:     decimal.Zero,
	}
	for _, payment := range payments {
		st, err := status.ClassifyCollection(payment, now, graceDays)
		if err != nil {
			digest.Skipped++
			continue
		}
		digest.Counts[st]++
		switch st {
		case domain.CollectionStatusOverdue:
			digest.OverdueAmount = digest.OverdueAmount.Add(payment.Amount)
		case domain.CollectionStatusDue:
			digest.DueAmount = digest.DueAmount.Add(payment.Amount)
		}
	}
	return digest, nil
}

func (s *LeaseService) getCollection(ctx context.Context, id uuid.UUID) (*domain.CollectionPayment, error) {
	payment, err := s.CollectionRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapPaymentNotFound(id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return payment, nil
}

// RecordCollection marks a rent installment collected, today unless a date is given.
func (s *LeaseService) RecordCollection(ctx context.Context, id uuid.UUID, request *domain.RecordCollectionRequest) (*domain.CollectionPaymentView, error) {
	payment, err := s.getCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.IsCollected() {
		return nil, customError.WrapPaymentAlreadyCollected(id.String())
	}

	now := s.now()
	collectedOn := utils.DateOnly(now)
	if request != nil && request.CollectionDate != nil {
		collectedOn = utils.DateOnly(*request.CollectionDate)
	}

	err = s.CollectionRepo.RecordCollection(ctx, id, collectedOn)
	if errors.Is(err, sql.ErrNoRows) {
		// collected concurrently
		return nil, customError.WrapPaymentAlreadyCollected(id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	payment.CollectionDate = &collectedOn

	s.log.Info().Str("payment_id", id.String()).Time("collected_on", collectedOn).Msg("collection recorded")
	return s.describeOne(ctx, payment, now)
}

// PostponePayment applies a positive delay to an uncollected installment.
func (s *LeaseService) PostponePayment(ctx context.Context, id uuid.UUID, request *domain.PostponePaymentRequest) (*domain.CollectionPaymentView, error) {
	if request.DelayDuration <= 0 {
		return nil, customError.WrapInvalidDelayDuration(request.DelayDuration)
	}
	payment, err := s.getCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.IsCollected() {
		return nil, customError.WrapPaymentAlreadyCollected(id.String())
	}

	err = s.CollectionRepo.Postpone(ctx, id, request.DelayDuration, request.DelayReason)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapPaymentAlreadyCollected(id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	delay, reason := request.DelayDuration, request.DelayReason
	payment.DelayDuration = &delay
	payment.DelayReason = &reason

	s.log.Info().Str("payment_id", id.String()).Int("delay_days", delay).Msg("payment postponed")
	return s.describeOne(ctx, payment, s.now())
}

func (s *LeaseService) describeOne(ctx context.Context, payment *domain.CollectionPayment, now time.Time) (*domain.CollectionPaymentView, error) {
	graceDays, err := s.settings.GraceDays(ctx)
	if err != nil {
		return nil, err
	}
	view, err := status.DescribeCollection(payment, now, graceDays, s.locale(""))
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// DeletePayment always refuses: payments are never deleted.
func (s *LeaseService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return s.CollectionRepo.Delete(ctx, id)
}

// ListSupplyPayments returns the payouts of a supply contract with their status.
func (s *LeaseService) ListSupplyPayments(ctx context.Context, contractID uuid.UUID, locale string) ([]domain.SupplyPaymentView, error) {
	if _, err := s.GetContract(ctx, contractID); err != nil {
		return nil, err
	}
	payments, err := s.SupplyRepo.ListByContract(ctx, contractID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return s.describeSupplies(payments, s.now(), locale), nil
}

// ListWorthCollectingSupplies returns unpaid owner payouts, across all supply
// contracts, that are due on or before today.
func (s *LeaseService) ListWorthCollectingSupplies(ctx context.Context, locale string) ([]domain.SupplyPaymentView, error) {
	now := s.now()
	payments, err := s.SupplyRepo.ListUnpaidDueBy(ctx, utils.DateOnly(now))
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return s.describeSupplies(payments, now, locale), nil
}

func (s *LeaseService) describeSupplies(payments []*domain.SupplyPayment, now time.Time, locale string) []domain.SupplyPaymentView {
	views := make([]domain.SupplyPaymentView, 0, len(payments))
	for _, payment := range payments {
		view, err := status.DescribeSupply(payment, now, s.locale(locale))
		if err != nil {
			s.metrics.ClassifyErrors.WithLabelValues("supply", customError.Code(err)).Inc()
			s.log.Warn().Err(err).Str("payment_id", payment.ID.String()).Msg("skipping unclassifiable supply payment")
			continue
		}
		s.metrics.Classifications.WithLabelValues("supply", string(view.Status)).Inc()
		views = append(views, view)
	}
	return views
}

// DeleteSupplyPayment always refuses: payouts are never deleted.
func (s *LeaseService) DeleteSupplyPayment(ctx context.Context, id uuid.UUID) error {
	return s.SupplyRepo.Delete(ctx, id)
}

// RecordSupplyPayment marks an owner payout paid, today unless a date is given.
func (s *LeaseService) RecordSupplyPayment(ctx context.Context, id uuid.UUID, request *domain.RecordSupplyPaymentRequest) (*domain.SupplyPaymentView, error) {
	payment, err := s.SupplyRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapPaymentNotFound(id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if payment.PaidDate != nil {
		return nil, customError.WrapPaymentAlreadyCollected(id.String())
	}

	now := s.now()
	paidOn := utils.DateOnly(now)
	if request != nil && request.PaidDate != nil {
		paidOn = utils.DateOnly(*request.PaidDate)
	}

	err = s.SupplyRepo.MarkPaid(ctx, id, paidOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapPaymentAlreadyCollected(id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	payment.PaidDate = &paidOn

	view, err := status.DescribeSupply(payment, now, s.locale(""))
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *LeaseService) GraceDays(ctx context.Context) (int, error) {
	return s.settings.GraceDays(ctx)
}

func (s *LeaseService) SetGraceDays(ctx context.Context, days int) error {
	return s.settings.SetGraceDays(ctx, days)
}

func (s *LeaseService) locale(requested string) string {
	if requested != "" {
		return requested
	}
	return s.config.Business.DefaultLocale
}
