package status

import (
	"time"

	"github.com/segyhp/rent-engine/internal/domain"
	customError "github.com/segyhp/rent-engine/pkg/errors"
	"github.com/segyhp/rent-engine/pkg/utils"
)

// ClassifySupply derives the status of an owner payout. There is no grace
// period: a payout due today is already worth collecting.
func ClassifySupply(p *domain.SupplyPayment, now time.Time) (domain.SupplyStatus, error) {
	if p.PaidDate != nil {
		return domain.SupplyStatusCollected, nil
	}
	if p.DueDate == nil {
		return "", customError.WrapIncompleteRecord("supply payment "+p.ID.String(), "due_date")
	}

	today := utils.DateOnly(now)
	if !utils.InLocation(*p.DueDate, today.Location()).After(today) {
		return domain.SupplyStatusWorthCollecting, nil
	}
	return domain.SupplyStatusPending, nil
}

// DescribeSupply classifies p and attaches its label and color.
func DescribeSupply(p *domain.SupplyPayment, now time.Time, locale string) (domain.SupplyPaymentView, error) {
	s, err := ClassifySupply(p, now)
	if err != nil {
		return domain.SupplyPaymentView{}, err
	}
	return domain.SupplyPaymentView{
		Payment: p,
		Status:  s,
		Label:   s.Label(locale),
		Color:   s.Color(),
	}, nil
}
