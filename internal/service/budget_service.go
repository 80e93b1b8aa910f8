package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/budget"
)

// Budget represents a budget in the service layer. The period is
// inclusive on both ends.
type Budget struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	AmountLimit decimal.Decimal
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// BudgetStatus is a budget together with its current consumption.
type BudgetStatus struct {
	Budget
	Spent     decimal.Decimal
	Remaining decimal.Decimal
}

// BudgetService handles budget read operations.
type BudgetService struct {
	reader *storage.Reader
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(reader *storage.Reader) *BudgetService {
	return &BudgetService{reader: reader}
}

// GetBudget retrieves a budget by ID. Returns nil when it does not exist.
func (s *BudgetService) GetBudget(ctx context.Context, id uuid.UUID) (*Budget, error) {
	row, err := s.reader.Budgets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	converted := budgetFromStorage(row)
	return &converted, nil
}

// ListBudgets returns every budget belonging to one user, each annotated
// with the amount already spent inside its period.
func (s *BudgetService) ListBudgets(ctx context.Context, userID uuid.UUID) ([]BudgetStatus, error) {
	rows, err := s.reader.Budgets.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	statuses := make([]BudgetStatus, len(rows))
	for i, row := range rows {
		spent, err := s.reader.Transactions.SumExpensesInPeriod(ctx, row.CategoryID, row.PeriodStart, row.PeriodEnd, uuid.Nil)
		if err != nil {
			return nil, err
		}
		statuses[i] = BudgetStatus{
			Budget:    budgetFromStorage(row),
			Spent:     spent,
			Remaining: row.AmountLimit.Sub(spent),
		}
	}
	return statuses, nil
}

func budgetFromStorage(row *budget.Budget) Budget {
	return Budget{
		ID:          row.ID,
		UserID:      row.UserID,
		CategoryID:  row.CategoryID,
		AmountLimit: row.AmountLimit,
		PeriodStart: row.PeriodStart,
		PeriodEnd:   row.PeriodEnd,
	}
}
