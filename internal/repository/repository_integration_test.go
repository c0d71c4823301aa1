package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/rent-engine/internal/config"
	"github.com/segyhp/rent-engine/internal/db"
	"github.com/segyhp/rent-engine/internal/domain"
	"github.com/segyhp/rent-engine/internal/metrics"
	"github.com/segyhp/rent-engine/internal/repository"
	"github.com/segyhp/rent-engine/internal/service"
	"github.com/segyhp/rent-engine/internal/settings"
	customError "github.com/segyhp/rent-engine/pkg/errors"
)

// These tests run against a disposable postgres database named by
// TEST_DATABASE_URL and are skipped when it is unset.

var testDB *sqlx.DB

func TestMain(m *testing.M) {
	code := func() int {
		url := os.Getenv("TEST_DATABASE_URL")
		if url == "" {
			return m.Run()
		}

		var err error
		testDB, err = sqlx.Connect("postgres", url)
		if err != nil {
			fmt.Fprintf(os.Stderr, "connect test database: %v\n", err)
			return 1
		}
		defer testDB.Close()

		if err := db.Migrate(context.Background(), testDB); err != nil {
			fmt.Fprintf(os.Stderr, "migrate test database: %v\n", err)
			return 1
		}
		return m.Run()
	}()
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testDB == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
	cleanup(t)
}

func cleanup(t *testing.T) {
	t.Helper()
	// Payment tables refuse DELETE by trigger; TRUNCATE is not affected.
	_, err := testDB.Exec(`TRUNCATE collection_payments, supply_payments, contracts, settings CASCADE`)
	require.NoError(t, err)
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func newContract(kind domain.ContractKind) *domain.Contract {
	count := 4
	return &domain.Contract{
		ID:               uuid.New(),
		ContractNumber:   "IT-" + uuid.NewString()[:8],
		Kind:             kind,
		Status:           domain.ContractStatusActive,
		StartDate:        day(2024, 1, 1),
		EndDate:          day(2024, 12, 31),
		DurationMonths:   12,
		PaymentFrequency: domain.FrequencyQuarterly,
		PaymentsCount:    &count,
		MonthlyRent:      decimal.NewFromInt(2500),
	}
}

func TestContractRepository_CreateAndGet(t *testing.T) {
	requireDB(t)
	repo := repository.NewContractRepository(testDB)
	ctx := context.Background()

	contract := newContract(domain.ContractKindRental)
	require.NoError(t, repo.Create(ctx, testDB, contract))

	got, err := repo.GetByID(ctx, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, contract.ContractNumber, got.ContractNumber)
	assert.Equal(t, domain.ContractStatusActive, got.Status)
	assert.True(t, got.MonthlyRent.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, 4, *got.PaymentsCount)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestContractRepository_ListActiveEndedBefore(t *testing.T) {
	requireDB(t)
	repo := repository.NewContractRepository(testDB)
	ctx := context.Background()

	ended := newContract(domain.ContractKindRental)
	ended.EndDate = day(2024, 6, 14)
	endsToday := newContract(domain.ContractKindRental)
	endsToday.EndDate = day(2024, 6, 15)
	terminated := newContract(domain.ContractKindSupply)
	terminated.EndDate = day(2024, 1, 31)
	terminated.Status = domain.ContractStatusTerminated
	for _, c := range []*domain.Contract{ended, endsToday, terminated} {
		require.NoError(t, repo.Create(ctx, testDB, c))
	}

	contracts, err := repo.ListActiveEndedBefore(ctx, *day(2024, 6, 15))
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.Equal(t, ended.ID, contracts[0].ID)
}

func TestContractRepository_GuardedStatusUpdate(t *testing.T) {
	requireDB(t)
	repo := repository.NewContractRepository(testDB)
	ctx := context.Background()

	contract := newContract(domain.ContractKindRental)
	require.NoError(t, repo.Create(ctx, testDB, contract))

	require.NoError(t, repo.UpdateStatus(ctx, testDB, contract.ID, domain.ContractStatusActive, domain.ContractStatusTerminated))

	err := repo.UpdateStatus(ctx, testDB, contract.ID, domain.ContractStatusActive, domain.ContractStatusExpired)
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	stored, err := repo.GetByID(ctx, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusTerminated, stored.Status)

	stored.Status = domain.ContractStatusActive
	err = repo.Update(ctx, testDB, stored, domain.ContractStatusDraft)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestTransactor_RollsBackScheduleWhenActivationFails(t *testing.T) {
	requireDB(t)
	contracts := repository.NewContractRepository(testDB)
	payments := repository.NewCollectionPaymentRepository(testDB)
	transactor := repository.NewTransactor(testDB)
	ctx := context.Background()

	contract := newContract(domain.ContractKindRental)
	contract.Status = domain.ContractStatusDraft
	require.NoError(t, contracts.Create(ctx, testDB, contract))

	batch := []*domain.CollectionPayment{
		{ID: uuid.New(), ContractID: contract.ID, InstallmentNumber: 1, Amount: decimal.NewFromInt(7500), DueDateStart: day(2024, 1, 1), DueDateEnd: day(2024, 3, 31)},
	}
	err := transactor.WithinTx(ctx, func(tx sqlx.ExtContext) error {
		if err := payments.CreateBatch(ctx, tx, batch); err != nil {
			return err
		}
		contract.Status = domain.ContractStatusActive
		// wrong expected status: the update touches nothing
		return contracts.Update(ctx, tx, contract, domain.ContractStatusSuspended)
	})
	require.True(t, errors.Is(err, sql.ErrNoRows))

	stored, err := payments.ListByContract(ctx, contract.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)

	// the same installments can be inserted again once the first attempt rolled back
	err = transactor.WithinTx(ctx, func(tx sqlx.ExtContext) error {
		if err := payments.CreateBatch(ctx, tx, batch); err != nil {
			return err
		}
		return contracts.Update(ctx, tx, contract, domain.ContractStatusDraft)
	})
	require.NoError(t, err)

	activated, err := contracts.GetByID(ctx, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusActive, activated.Status)
}

func TestSupplyPaymentRepository(t *testing.T) {
	requireDB(t)
	contracts := repository.NewContractRepository(testDB)
	payments := repository.NewSupplyPaymentRepository(testDB)
	ctx := context.Background()

	contract := newContract(domain.ContractKindSupply)
	require.NoError(t, contracts.Create(ctx, testDB, contract))

	batch := []*domain.SupplyPayment{
		{ID: uuid.New(), ContractID: contract.ID, InstallmentNumber: 1, Amount: decimal.NewFromInt(7500), DueDate: day(2024, 3, 31)},
		{ID: uuid.New(), ContractID: contract.ID, InstallmentNumber: 2, Amount: decimal.NewFromInt(7500), DueDate: day(2024, 6, 15)},
		{ID: uuid.New(), ContractID: contract.ID, InstallmentNumber: 3, Amount: decimal.NewFromInt(7500), DueDate: day(2024, 9, 30)},
	}
	require.NoError(t, payments.CreateBatch(ctx, testDB, batch))
	require.NoError(t, payments.MarkPaid(ctx, batch[0].ID, *day(2024, 4, 2)))

	worth, err := payments.ListUnpaidDueBy(ctx, *day(2024, 6, 15))
	require.NoError(t, err)
	require.Len(t, worth, 1)
	assert.Equal(t, batch[1].ID, worth[0].ID)

	err = payments.Delete(ctx, batch[0].ID)
	assert.True(t, errors.Is(err, customError.ErrPaymentDeletionForbidden))
}

func TestCollectionPaymentRepository_Lifecycle(t *testing.T) {
	requireDB(t)
	contracts := repository.NewContractRepository(testDB)
	payments := repository.NewCollectionPaymentRepository(testDB)
	ctx := context.Background()

	contract := newContract(domain.ContractKindRental)
	require.NoError(t, contracts.Create(ctx, testDB, contract))

	batch := []*domain.CollectionPayment{
		{ID: uuid.New(), ContractID: contract.ID, InstallmentNumber: 1, Amount: decimal.NewFromInt(7500), DueDateStart: day(2024, 5, 1), DueDateEnd: day(2024, 7, 31)},
		{ID: uuid.New(), ContractID: contract.ID, InstallmentNumber: 2, Amount: decimal.NewFromInt(7500), DueDateStart: day(2024, 6, 12), DueDateEnd: day(2024, 9, 30)},
		{ID: uuid.New(), ContractID: contract.ID, InstallmentNumber: 3, Amount: decimal.NewFromInt(7500), DueDateStart: day(2024, 7, 1), DueDateEnd: day(2024, 12, 31)},
	}
	require.NoError(t, payments.CreateBatch(ctx, testDB, batch))

	today := *day(2024, 6, 15)
	overdue, err := payments.ListByFilter(ctx, domain.CollectionFilterOverdue, today, 7)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, 1, overdue[0].InstallmentNumber)

	due, err := payments.ListByFilter(ctx, domain.CollectionFilterDueForCollection, today, 7)
	require.NoError(t, err)
	assert.Len(t, due, 2)

	upcoming, err := payments.ListByFilter(ctx, domain.CollectionFilterUpcoming, today, 7)
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)

	require.NoError(t, payments.Postpone(ctx, batch[1].ID, 10, "tenant travelling"))
	postponed, err := payments.ListByFilter(ctx, domain.CollectionFilterPostponed, today, 7)
	require.NoError(t, err)
	require.Len(t, postponed, 1)
	assert.Equal(t, 10, *postponed[0].DelayDuration)

	require.NoError(t, payments.RecordCollection(ctx, batch[0].ID, today))
	err = payments.RecordCollection(ctx, batch[0].ID, today)
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	open, err := payments.ListByFilter(ctx, domain.CollectionFilterOpen, today, 7)
	require.NoError(t, err)
	assert.Len(t, open, 2)

	err = payments.Delete(ctx, batch[2].ID)
	assert.True(t, errors.Is(err, customError.ErrPaymentDeletionForbidden))

	_, err = testDB.Exec(`DELETE FROM collection_payments WHERE id = $1`, batch[2].ID)
	assert.Error(t, err)
}

func TestSettingsRepository(t *testing.T) {
	requireDB(t)
	repo := repository.NewSettingsRepository(testDB)
	ctx := context.Background()

	_, err := repo.Get(ctx, settings.KeyPaymentDueDays)
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	require.NoError(t, repo.Set(ctx, settings.KeyPaymentDueDays, "5"))
	require.NoError(t, repo.Set(ctx, settings.KeyPaymentDueDays, "9"))

	value, err := repo.Get(ctx, settings.KeyPaymentDueDays)
	require.NoError(t, err)
	assert.Equal(t, "9", value)
}

func TestLeaseService_EndToEnd(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	cfg := &config.Config{
		Business:  config.BusinessConfig{PaymentDueDays: 7, ExpiringSoonDays: 30, DefaultLocale: "en"},
		Scheduler: config.SchedulerConfig{Timezone: "UTC"},
	}
	settingsService := settings.NewService(
		repository.NewSettingsRepository(testDB),
		settings.NewRedisCache(nil),
		time.Minute,
		cfg.Business.PaymentDueDays,
		zerolog.Nop(),
	)
	svc := service.NewLeaseService(
		repository.NewContractRepository(testDB),
		repository.NewCollectionPaymentRepository(testDB),
		repository.NewSupplyPaymentRepository(testDB),
		repository.NewTransactor(testDB),
		settingsService,
		cfg,
		metrics.NewNop(),
		zerolog.Nop(),
	)

	start := time.Now().UTC().AddDate(0, -13, 0)
	contract, err := svc.CreateContract(ctx, &domain.CreateContractRequest{
		ContractNumber:   "E2E-1",
		Kind:             "rental",
		StartDate:        start,
		DurationMonths:   12,
		PaymentFrequency: "quarterly",
		MonthlyRent:      decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	activated, err := svc.ActivateContract(ctx, contract.ID)
	require.NoError(t, err)
	require.Len(t, activated.Schedule, 4)

	views, err := svc.ListContractCollections(ctx, contract.ID, "")
	require.NoError(t, err)
	require.Len(t, views, 4)
	for _, v := range views {
		assert.Equal(t, domain.CollectionStatusOverdue, v.Status)
	}

	collected, err := svc.RecordCollection(ctx, activated.Schedule[0].ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.CollectionStatusCollected, collected.Status)

	view, err := svc.GetContractStatus(ctx, contract.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.DisplayStatusExpired, view.DisplayStatus)
	assert.True(t, view.HasExpired)

	count, err := svc.ExpireContracts(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := svc.GetContract(ctx, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusExpired, stored.Status)
}
