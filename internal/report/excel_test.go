package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/segyhp/rent-engine/internal/domain"
)

func TestCollections(t *testing.T) {
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC)
	delay := 10
	views := []domain.CollectionPaymentView{
		{
			Payment: &domain.CollectionPayment{
				ContractID:        uuid.New(),
				InstallmentNumber: 2,
				Amount:            decimal.NewFromInt(7500),
				DueDateStart:      &due,
				DueDateEnd:        &end,
				DelayDuration:     &delay,
			},
			Status: domain.CollectionStatusPostponed,
			Label:  domain.CollectionStatusPostponed.Label("en"),
		},
	}

	data, err := NewGenerator().Collections(views, domain.CollectionFilterPostponed, due, "en")
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows("Collections")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "postponed", rows[0][1])
	assert.Equal(t, "Installment", rows[3][1])
	assert.Equal(t, "7500.00", rows[4][2])
	assert.Equal(t, "2024-06-01", rows[4][3])
	assert.Equal(t, "", rows[4][5])
	assert.Equal(t, "10", rows[4][6])
	assert.Equal(t, views[0].Label, rows[4][7])
}

func TestSheetWriter_KeepsFirstError(t *testing.T) {
	file := excelize.NewFile()
	defer file.Close()
	w := &sheetWriter{file: file, sheet: "Sheet1"}

	w.set("A0", "bad reference")
	require.Error(t, w.err)
	first := w.err

	w.set("A1", "skipped")
	w.width("A", "A", 10)

	assert.Equal(t, first, w.err)
	value, err := file.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestSheetWriter_UnknownSheet(t *testing.T) {
	file := excelize.NewFile()
	defer file.Close()
	w := &sheetWriter{file: file, sheet: "Missing"}

	w.set("A1", "x")

	assert.Error(t, w.err)
}
