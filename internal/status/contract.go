package status

import (
	"time"

	"github.com/segyhp/rent-engine/internal/domain"
	"github.com/segyhp/rent-engine/internal/schedule"
	customError "github.com/segyhp/rent-engine/pkg/errors"
	"github.com/segyhp/rent-engine/pkg/utils"
)

// DefaultExpiringSoonDays is the window in which an active contract is flagged.
const DefaultExpiringSoonDays = 30

// ClassifyContract derives the display status of a contract from its stored
// status and dates. An active contract whose end date is within
// expiringSoonDays (inclusive) is expiring soon. An active contract that has not
// started yet reports not_started and IsActive=false. An active contract whose
// end date already passed reports expired and HasExpired=true, since only the
// nightly batch advances the stored status.
func ClassifyContract(c *domain.Contract, now time.Time, expiringSoonDays int) (domain.ContractView, error) {
	view := domain.ContractView{
		ContractID:   c.ID,
		StoredStatus: c.Status,
	}
	if !c.Kind.Allows(c.Status) {
		if _, err := domain.ParseContractKind(string(c.Kind)); err != nil {
			return view, err
		}
		return view, customError.WrapUnrecognizedEnumValue(string(c.Kind)+" contract_status", string(c.Status))
	}

	switch c.Status {
	case domain.ContractStatusDraft:
		view.DisplayStatus = domain.DisplayStatusDraft
		return finish(view), nil
	case domain.ContractStatusExpired:
		view.DisplayStatus = domain.DisplayStatusExpired
		view.HasExpired = true
		return finish(view), nil
	case domain.ContractStatusTerminated:
		view.DisplayStatus = domain.DisplayStatusTerminated
		return finish(view), nil
	case domain.ContractStatusRenewed:
		view.DisplayStatus = domain.DisplayStatusRenewed
		return finish(view), nil
	case domain.ContractStatusSuspended:
		view.DisplayStatus = domain.DisplayStatusSuspended
		return finish(view), nil
	}

	// active
	if c.StartDate == nil {
		return view, customError.WrapIncompleteRecord("contract "+c.ContractNumber, "start_date")
	}
	end := c.EndDate
	if end == nil {
		derived := schedule.CalculateEndDate(*c.StartDate, c.DurationMonths)
		end = &derived
	}

	today := utils.DateOnly(now)
	start := utils.InLocation(*c.StartDate, today.Location())
	remaining := utils.DaysBetween(today, *end)

	if remaining < 0 {
		view.DisplayStatus = domain.DisplayStatusExpired
		view.HasExpired = true
		return finish(view), nil
	}
	view.RemainingDays = remaining

	switch {
	case start.After(today):
		view.DisplayStatus = domain.DisplayStatusNotStarted
	case remaining <= expiringSoonDays:
		view.DisplayStatus = domain.DisplayStatusExpiringSoon
		view.IsActive = true
	default:
		view.DisplayStatus = domain.DisplayStatusActive
		view.IsActive = true
	}
	return finish(view), nil
}

// DescribeContract classifies c and attaches the localized label.
func DescribeContract(c *domain.Contract, now time.Time, expiringSoonDays int, locale string) (domain.ContractView, error) {
	view, err := ClassifyContract(c, now, expiringSoonDays)
	if err != nil {
		return view, err
	}
	view.Label = view.DisplayStatus.Label(locale)
	return view, nil
}

func finish(view domain.ContractView) domain.ContractView {
	view.Color = view.DisplayStatus.Color()
	return view
}
