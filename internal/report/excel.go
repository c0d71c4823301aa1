// Package report renders collection listings as spreadsheets.
package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/segyhp/rent-engine/internal/domain"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

var headers = map[string][]string{
	"en": {"Contract", "Installment", "Amount", "Due from", "Due to", "Collected on", "Delay (days)", "Status"},
	"ar": {"العقد", "القسط", "المبلغ", "من تاريخ", "إلى تاريخ", "تاريخ التحصيل", "التأجيل (أيام)", "الحالة"},
}

// Collections writes one row per payment view, in order, and returns the xlsx bytes.
func (g *Generator) Collections(views []domain.CollectionPaymentView, filter domain.CollectionFilter, asOf time.Time, locale string) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	sheet := "Collections"
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	w := &sheetWriter{file: file, sheet: sheet}
	set := w.set

	set("A1", "Filter")
	set("B1", string(filter))
	set("A2", "As of")
	set("B2", formatDate(&asOf))

	cols, ok := headers[locale]
	if !ok {
		cols = headers["en"]
	}
	tableRow := 4
	for i, header := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, tableRow)
		if err != nil {
			return nil, err
		}
		set(cell, header)
	}

	for i, view := range views {
		row := tableRow + 1 + i
		p := view.Payment
		set(fmt.Sprintf("A%d", row), p.ContractID.String())
		set(fmt.Sprintf("B%d", row), p.InstallmentNumber)
		set(fmt.Sprintf("C%d", row), p.Amount.StringFixed(2))
		set(fmt.Sprintf("D%d", row), formatDate(p.DueDateStart))
		set(fmt.Sprintf("E%d", row), formatDate(p.DueDateEnd))
		set(fmt.Sprintf("F%d", row), formatDate(p.CollectionDate))
		if p.DelayDuration != nil {
			set(fmt.Sprintf("G%d", row), *p.DelayDuration)
		}
		set(fmt.Sprintf("H%d", row), view.Label)
	}

	w.width("A", "A", 38)
	w.width("B", "C", 14)
	w.width("D", "F", 14)
	w.width("G", "H", 18)
	if w.err != nil {
		return nil, fmt.Errorf("writing collections sheet: %w", w.err)
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sheetWriter keeps the first failed write; later writes are skipped.
type sheetWriter struct {
	file  *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(cell string, value interface{}) {
	if w.err != nil {
		return
	}
	w.err = w.file.SetCellValue(w.sheet, cell, value)
}

func (w *sheetWriter) width(startCol, endCol string, width float64) {
	if w.err != nil {
		return
	}
	w.err = w.file.SetColWidth(w.sheet, startCol, endCol, width)
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
