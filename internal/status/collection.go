// Package status derives payment and contract statuses at read time.
//
// Nothing here is persisted: every status is recomputed from raw date and flag
// fields against an explicit evaluation instant, so stored rows never drift from
// what callers see. All functions are pure and safe for concurrent use.
package status

import (
	"time"

	"github.com/segyhp/rent-engine/internal/domain"
	customError "github.com/segyhp/rent-engine/pkg/errors"
	"github.com/segyhp/rent-engine/pkg/utils"
)

// DefaultGraceDays is used when no payment_due_days setting is stored.
const DefaultGraceDays = 7

// ClassifyCollection derives the status of a rent payment. First match wins:
// collected, postponed, overdue (due start before today minus graceDays), due
// (due start on or before today), upcoming. Dates compare by calendar day in
// now's location.
func ClassifyCollection(p *domain.CollectionPayment, now time.Time, graceDays int) (domain.CollectionStatus, error) {
	if p.IsCollected() {
		return domain.CollectionStatusCollected, nil
	}
	if p.DueDateStart == nil {
		return "", customError.WrapIncompleteRecord("collection payment "+p.ID.String(), "due_date_start")
	}
	if p.IsPostponed() {
		return domain.CollectionStatusPostponed, nil
	}

	today := utils.DateOnly(now)
	due := utils.InLocation(*p.DueDateStart, today.Location())

	switch {
	case due.Before(overdueCutoff(today, graceDays)):
		return domain.CollectionStatusOverdue, nil
	case !due.After(today):
		return domain.CollectionStatusDue, nil
	}
	return domain.CollectionStatusUpcoming, nil
}

// DescribeCollection classifies p and attaches its label and color.
func DescribeCollection(p *domain.CollectionPayment, now time.Time, graceDays int, locale string) (domain.CollectionPaymentView, error) {
	s, err := ClassifyCollection(p, now, graceDays)
	if err != nil {
		return domain.CollectionPaymentView{}, err
	}
	return domain.CollectionPaymentView{
		Payment: p,
		Status:  s,
		Label:   s.Label(locale),
		Color:   s.Color(),
	}, nil
}

// OverdueCutoff returns the day before which an unpaid installment is overdue.
func OverdueCutoff(now time.Time, graceDays int) time.Time {
	return overdueCutoff(utils.DateOnly(now), graceDays)
}

func overdueCutoff(today time.Time, graceDays int) time.Time {
	if graceDays < 0 {
		graceDays = 0
	}
	return today.AddDate(0, 0, -graceDays)
}
