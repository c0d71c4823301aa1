package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Transactor runs fn inside one database transaction. The transaction commits
// only when fn returns nil.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx sqlx.ExtContext) error) error
}

type sqlxTransactor struct {
	db *sqlx.DB
}

func NewTransactor(db *sqlx.DB) Transactor {
	return &sqlxTransactor{db: db}
}

func (t *sqlxTransactor) WithinTx(ctx context.Context, fn func(tx sqlx.ExtContext) error) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
