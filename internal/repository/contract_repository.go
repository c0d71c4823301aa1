package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/rent-engine/internal/domain"
)

const contractColumns = `id, contract_number, kind, property_id, unit_id, tenant_id, owner_id,
	contract_status, start_date, end_date, duration_months, payment_frequency,
	payments_count, monthly_rent, renewed_from_id, created_at, updated_at`

type contractRepository struct {
	db *sqlx.DB
}

func NewContractRepository(db *sqlx.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) Create(ctx context.Context, exec sqlx.ExtContext, contract *domain.Contract) error {
	query := `
		INSERT INTO contracts (` + contractColumns + `)
		VALUES (:id, :contract_number, :kind, :property_id, :unit_id, :tenant_id, :owner_id,
			:contract_status, :start_date, :end_date, :duration_months, :payment_frequency,
			:payments_count, :monthly_rent, :renewed_from_id, :created_at, :updated_at)
	`

	now := time.Now()
	if contract.CreatedAt.IsZero() {
		contract.CreatedAt = now
	}
	contract.UpdatedAt = now

	_, err := sqlx.NamedExecContext(ctx, exec, query, contract)
	return err
}

func (r *contractRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`

	var contract domain.Contract
	if err := r.db.GetContext(ctx, &contract, query, id); err != nil {
		return nil, err
	}

	return &contract, nil
}

func (r *contractRepository) Update(ctx context.Context, exec sqlx.ExtContext, contract *domain.Contract, from domain.ContractStatus) error {
	query := `
		UPDATE contracts
		SET contract_status = $2, start_date = $3, end_date = $4, duration_months = $5,
			payment_frequency = $6, payments_count = $7, monthly_rent = $8, updated_at = $9
		WHERE id = $1 AND contract_status = $10
	`

	contract.UpdatedAt = time.Now()
	res, err := exec.ExecContext(ctx, query,
		contract.ID, contract.Status, contract.StartDate, contract.EndDate, contract.DurationMonths,
		contract.PaymentFrequency, contract.PaymentsCount, contract.MonthlyRent, contract.UpdatedAt,
		from,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *contractRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id uuid.UUID, from, to domain.ContractStatus) error {
	query := `
		UPDATE contracts
		SET contract_status = $2, updated_at = $3
		WHERE id = $1 AND contract_status = $4
	`

	res, err := exec.ExecContext(ctx, query, id, to, time.Now(), from)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *contractRepository) ListActiveEndedBefore(ctx context.Context, day time.Time) ([]*domain.Contract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		WHERE contract_status = 'active' AND end_date < $1
		ORDER BY end_date
	`

	var contracts []*domain.Contract
	if err := r.db.SelectContext(ctx, &contracts, query, dateParam(day)); err != nil {
		return nil, err
	}

	return contracts, nil
}

func (r *contractRepository) List(ctx context.Context, status *domain.ContractStatus) ([]*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE contract_status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	var contracts []*domain.Contract
	if err := r.db.SelectContext(ctx, &contracts, query, args...); err != nil {
		return nil, err
	}

	return contracts, nil
}
