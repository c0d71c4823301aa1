package jobs

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/rent-engine/internal/domain"
	"github.com/segyhp/rent-engine/internal/metrics"
	"github.com/segyhp/rent-engine/tests/mocks"
)

var fixedNow = time.Date(2024, 6, 15, 0, 5, 0, 0, time.UTC)

func newRunner(service *mocks.MockLeaseService, buf *bytes.Buffer) (*Runner, *metrics.Metrics) {
	m := metrics.NewNop()
	r := NewRunner(service, m, zerolog.New(buf), time.UTC, time.Minute)
	r.now = func() time.Time { return fixedNow }
	return r, m
}

func TestExpireContracts(t *testing.T) {
	service := &mocks.MockLeaseService{}
	service.On("ExpireContracts", mock.Anything, fixedNow).Return(3, nil).Once()
	var buf bytes.Buffer
	r, m := newRunner(service, &buf)

	require.NoError(t, r.ExpireContracts(context.Background()))

	assert.Contains(t, buf.String(), `"expired":3`)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRuns.WithLabelValues(JobExpireContracts, "success")))
	service.AssertExpectations(t)
}

func TestExpireContracts_Failure(t *testing.T) {
	service := &mocks.MockLeaseService{}
	service.On("ExpireContracts", mock.Anything, fixedNow).Return(0, errors.New("db down")).Once()
	var buf bytes.Buffer
	r, m := newRunner(service, &buf)

	assert.Error(t, r.ExpireContracts(context.Background()))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRuns.WithLabelValues(JobExpireContracts, "failure")))
}

func TestCollectionsDigest(t *testing.T) {
	service := &mocks.MockLeaseService{}
	service.On("CollectionsDigest", mock.Anything).Return(&domain.CollectionDigest{
		Date:      time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		GraceDays: 7,
		Counts: map[domain.CollectionStatus]int{
			domain.CollectionStatusOverdue: 2,
			domain.CollectionStatusDue:     5,
		},
		OverdueAmount: decimal.NewFromInt(900),
		DueAmount:     decimal.NewFromInt(1500),
	}, nil).Once()
	var buf bytes.Buffer
	r, _ := newRunner(service, &buf)

	require.NoError(t, r.CollectionsDigest(context.Background()))

	out := buf.String()
	assert.Contains(t, out, `"overdue":2`)
	assert.Contains(t, out, `"due":5`)
	assert.Contains(t, out, `"overdue_amount":"900.00"`)
}

func TestRegister(t *testing.T) {
	service := &mocks.MockLeaseService{}
	var buf bytes.Buffer
	r, _ := newRunner(service, &buf)

	c := cron.New(cron.WithSeconds())
	require.NoError(t, r.Register(c, "0 5 0 * * *", "0 0 8 * * *"))
	assert.Len(t, c.Entries(), 2)

	assert.Error(t, r.Register(cron.New(cron.WithSeconds()), "every night", "0 0 8 * * *"))
}
