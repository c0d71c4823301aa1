package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/rent-engine/internal/domain"
	customError "github.com/segyhp/rent-engine/pkg/errors"
)

const collectionColumns = `id, contract_id, installment_number, amount, due_date_start, due_date_end,
	collection_date, delay_duration, delay_reason, created_at, updated_at`

type collectionPaymentRepository struct {
	db *sqlx.DB
}

func NewCollectionPaymentRepository(db *sqlx.DB) CollectionPaymentRepository {
	return &collectionPaymentRepository{db: db}
}

func (r *collectionPaymentRepository) CreateBatch(ctx context.Context, exec sqlx.ExtContext, payments []*domain.CollectionPayment) error {
	query := `
		INSERT INTO collection_payments (` + collectionColumns + `)
		VALUES (:id, :contract_id, :installment_number, :amount, :due_date_start, :due_date_end,
			:collection_date, :delay_duration, :delay_reason, :created_at, :updated_at)
	`

	now := time.Now()
	for _, payment := range payments {
		payment.CreatedAt = now
		payment.UpdatedAt = now
		if _, err := sqlx.NamedExecContext(ctx, exec, query, payment); err != nil {
			return err
		}
	}

	return nil
}

func (r *collectionPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CollectionPayment, error) {
	query := `SELECT ` + collectionColumns + ` FROM collection_payments WHERE id = $1`

	var payment domain.CollectionPayment
	if err := r.db.GetContext(ctx, &payment, query, id); err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *collectionPaymentRepository) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*domain.CollectionPayment, error) {
	query := `
		SELECT ` + collectionColumns + `
		FROM collection_payments
		WHERE contract_id = $1
		ORDER BY installment_number
	`

	var payments []*domain.CollectionPayment
	if err := r.db.SelectContext(ctx, &payments, query, contractID); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *collectionPaymentRepository) ListByFilter(ctx context.Context, filter domain.CollectionFilter, today time.Time, graceDays int) ([]*domain.CollectionPayment, error) {
	clause, args, err := collectionFilterClause(filter, today, graceDays)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM collection_payments
		WHERE %s
		ORDER BY due_date_start, installment_number
	`, collectionColumns, clause)

	var payments []*domain.CollectionPayment
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, err
	}

	return payments, nil
}

// collectionFilterClause mirrors the predicates in the status package.
func collectionFilterClause(filter domain.CollectionFilter, today time.Time, graceDays int) (string, []interface{}, error) {
	if graceDays < 0 {
		graceDays = 0
	}

	switch filter {
	case domain.CollectionFilterAll:
		return `TRUE`, nil, nil
	case domain.CollectionFilterOpen:
		return `collection_date IS NULL`, nil, nil
	case domain.CollectionFilterDueForCollection:
		return `collection_date IS NULL
			AND (delay_duration IS NULL OR delay_duration <= 0)
			AND due_date_start <= $1`, []interface{}{dateParam(today)}, nil
	case domain.CollectionFilterOverdue:
		return `collection_date IS NULL
			AND due_date_start < $1`, []interface{}{dateParam(today.AddDate(0, 0, -graceDays))}, nil
	case domain.CollectionFilterPostponed:
		return `collection_date IS NULL
			AND delay_duration > 0`, nil, nil
	case domain.CollectionFilterUpcoming:
		return `collection_date IS NULL
			AND due_date_start > $1`, []interface{}{dateParam(today)}, nil
	}
	return "", nil, customError.WrapUnrecognizedEnumValue("collection filter", string(filter))
}

func (r *collectionPaymentRepository) RecordCollection(ctx context.Context, id uuid.UUID, collectedOn time.Time) error {
	query := `
		UPDATE collection_payments
		SET collection_date = $2, updated_at = $3
		WHERE id = $1 AND collection_date IS NULL
	`

	res, err := r.db.ExecContext(ctx, query, id, dateParam(collectedOn), time.Now())
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *collectionPaymentRepository) Postpone(ctx context.Context, id uuid.UUID, days int, reason string) error {
	query := `
		UPDATE collection_payments
		SET delay_duration = $2, delay_reason = NULLIF($3, ''), updated_at = $4
		WHERE id = $1 AND collection_date IS NULL
	`

	res, err := r.db.ExecContext(ctx, query, id, days, reason, time.Now())
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *collectionPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return customError.WrapPaymentDeletionForbidden(id.String())
}

// dateParam formats t as a DATE literal so the session timezone cannot shift the day.
func dateParam(t time.Time) string {
	return t.Format("2006-01-02")
}

// expectOneRow maps a guarded UPDATE that touched nothing to sql.ErrNoRows.
func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
