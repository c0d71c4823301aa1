package mocks

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// MockTransactor runs fn without a database and counts how each
// transaction would have finished.
type MockTransactor struct {
	Committed  int
	RolledBack int
	BeginErr   error
}

func (m *MockTransactor) WithinTx(ctx context.Context, fn func(tx sqlx.ExtContext) error) error {
	if m.BeginErr != nil {
		return m.BeginErr
	}
	if err := fn(nil); err != nil {
		m.RolledBack++
		return err
	}
	m.Committed++
	return nil
}
