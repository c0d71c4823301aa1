package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/rent-engine/internal/domain"
	customError "github.com/segyhp/rent-engine/pkg/errors"
)

const supplyColumns = `id, contract_id, installment_number, amount, due_date, paid_date, created_at`

type supplyPaymentRepository struct {
	db *sqlx.DB
}

func NewSupplyPaymentRepository(db *sqlx.DB) SupplyPaymentRepository {
	return &supplyPaymentRepository{db: db}
}

func (r *supplyPaymentRepository) CreateBatch(ctx context.Context, exec sqlx.ExtContext, payments []*domain.SupplyPayment) error {
	query := `
		INSERT INTO supply_payments (` + supplyColumns + `)
		VALUES (:id, :contract_id, :installment_number, :amount, :due_date, :paid_date, :created_at)
	`

	now := time.Now()
	for _, payment := range payments {
		payment.CreatedAt = now
		if _, err := sqlx.NamedExecContext(ctx, exec, query, payment); err != nil {
			return err
		}
	}

	return nil
}

func (r *supplyPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SupplyPayment, error) {
	query := `SELECT ` + supplyColumns + ` FROM supply_payments WHERE id = $1`

	var payment domain.SupplyPayment
	if err := r.db.GetContext(ctx, &payment, query, id); err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *supplyPaymentRepository) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*domain.SupplyPayment, error) {
	query := `
		SELECT ` + supplyColumns + `
		FROM supply_payments
		WHERE contract_id = $1
		ORDER BY installment_number
	`

	var payments []*domain.SupplyPayment
	if err := r.db.SelectContext(ctx, &payments, query, contractID); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *supplyPaymentRepository) ListUnpaidDueBy(ctx context.Context, day time.Time) ([]*domain.SupplyPayment, error) {
	query := `
		SELECT ` + supplyColumns + `
		FROM supply_payments
		WHERE paid_date IS NULL AND due_date <= $1
		ORDER BY due_date, installment_number
	`

	var payments []*domain.SupplyPayment
	if err := r.db.SelectContext(ctx, &payments, query, dateParam(day)); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *supplyPaymentRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidOn time.Time) error {
	query := `
		UPDATE supply_payments
		SET paid_date = $2
		WHERE id = $1 AND paid_date IS NULL
	`

	res, err := r.db.ExecContext(ctx, query, id, dateParam(paidOn))
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *supplyPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return customError.WrapPaymentDeletionForbidden(id.String())
}
