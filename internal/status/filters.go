package status

import (
	"time"

	"github.com/segyhp/rent-engine/internal/domain"
	"github.com/segyhp/rent-engine/pkg/utils"
)

// The predicates below mirror the SQL set queries in the repository package.
// Records without a due date never match.

// IsDueForCollection: not collected, not postponed and due on or before today.
func IsDueForCollection(p *domain.CollectionPayment, now time.Time) bool {
	if p.IsCollected() || p.IsPostponed() || p.DueDateStart == nil {
		return false
	}
	today := utils.DateOnly(now)
	return !utils.InLocation(*p.DueDateStart, today.Location()).After(today)
}

// IsOverdue: not collected and due before today minus graceDays. Postponement is
// not consulted here, unlike ClassifyCollection.
func IsOverdue(p *domain.CollectionPayment, now time.Time, graceDays int) bool {
	if p.IsCollected() || p.DueDateStart == nil {
		return false
	}
	cutoff := OverdueCutoff(now, graceDays)
	return utils.InLocation(*p.DueDateStart, cutoff.Location()).Before(cutoff)
}

// IsPostponedOpen: not collected with a positive delay.
func IsPostponedOpen(p *domain.CollectionPayment) bool {
	return !p.IsCollected() && p.IsPostponed()
}

// IsUpcoming: not collected and due after today.
func IsUpcoming(p *domain.CollectionPayment, now time.Time) bool {
	if p.IsCollected() || p.DueDateStart == nil {
		return false
	}
	today := utils.DateOnly(now)
	return utils.InLocation(*p.DueDateStart, today.Location()).After(today)
}

// Matches reports whether p belongs to the set selected by filter.
func Matches(filter domain.CollectionFilter, p *domain.CollectionPayment, now time.Time, graceDays int) bool {
	switch filter {
	case domain.CollectionFilterOpen:
		return !p.IsCollected()
	case domain.CollectionFilterDueForCollection:
		return IsDueForCollection(p, now)
	case domain.CollectionFilterOverdue:
		return IsOverdue(p, now, graceDays)
	case domain.CollectionFilterPostponed:
		return IsPostponedOpen(p)
	case domain.CollectionFilterUpcoming:
		return IsUpcoming(p, now)
	}
	return true
}

// Filter returns the payments matching filter, preserving order.
func Filter(filter domain.CollectionFilter, payments []*domain.CollectionPayment, now time.Time, graceDays int) []*domain.CollectionPayment {
	result := make([]*domain.CollectionPayment, 0, len(payments))
	for _, p := range payments {
		if Matches(filter, p, now, graceDays) {
			result = append(result, p)
		}
	}
	return result
}
