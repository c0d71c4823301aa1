package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/segyhp/rent-engine/internal/domain"
	customError "github.com/segyhp/rent-engine/pkg/errors"
	"github.com/segyhp/rent-engine/pkg/utils"
)

type installmentPeriod struct {
	number int
	start  time.Time
	end    time.Time
}

// periods validates the contract and splits its term into installment periods.
func periods(contract *domain.Contract) ([]installmentPeriod, int, error) {
	months, err := contract.PaymentFrequency.MonthsPerInstallment()
	if err != nil {
		return nil, 0, err
	}
	if !IsValidDurationForFrequency(contract.DurationMonths, contract.PaymentFrequency) {
		return nil, 0, customError.WrapInvalidScheduleConfiguration(contract.DurationMonths, string(contract.PaymentFrequency))
	}
	if contract.StartDate == nil {
		return nil, 0, customError.WrapIncompleteRecord("contract "+contract.ContractNumber, "start_date")
	}

	start := utils.DateOnly(*contract.StartDate)
	count := contract.DurationMonths / months
	result := make([]installmentPeriod, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, installmentPeriod{
			number: i + 1,
			start:  utils.AddMonths(start, i*months),
			end:    start.AddDate(0, (i+1)*months, -1),
		})
	}
	return result, months, nil
}

// GenerateCollections builds the rent installments of a rental contract. It refuses
// with InvalidScheduleConfiguration when the duration does not split evenly.
func GenerateCollections(contract *domain.Contract) ([]*domain.CollectionPayment, error) {
	ps, months, err := periods(contract)
	if err != nil {
		return nil, err
	}

	amount := utils.CalculateInstallmentAmount(contract.MonthlyRent, months)
	payments := make([]*domain.CollectionPayment, 0, len(ps))
	for _, p := range ps {
		dueStart, dueEnd := p.start, p.end
		payments = append(payments, &domain.CollectionPayment{
			ID:                uuid.New(),
			ContractID:        contract.ID,
			InstallmentNumber: p.number,
			Amount:            amount,
			DueDateStart:      &dueStart,
			DueDateEnd:        &dueEnd,
		})
	}
	return payments, nil
}

// GenerateSupplies builds the owner payouts of a supply contract, each due on the
// first day of its period.
func GenerateSupplies(contract *domain.Contract) ([]*domain.SupplyPayment, error) {
	ps, months, err := periods(contract)
	if err != nil {
		return nil, err
	}

	amount := utils.CalculateInstallmentAmount(contract.MonthlyRent, months)
	payments := make([]*domain.SupplyPayment, 0, len(ps))
	for _, p := range ps {
		due := p.start
		payments = append(payments, &domain.SupplyPayment{
			ID:                uuid.New(),
			ContractID:        contract.ID,
			InstallmentNumber: p.number,
			Amount:            amount,
			DueDate:           &due,
		})
	}
	return payments, nil
}
