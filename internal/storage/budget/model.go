package budget

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Budget caps the expense total of one category over an inclusive date
// period. Periods for the same category may overlap; every enclosing
// budget is checked independently.
type Budget struct {
	ID          uuid.UUID       `db:"budget_id"`
	UserID      uuid.UUID       `db:"user_id"`
	CategoryID  uuid.UUID       `db:"category_id"`
	AmountLimit decimal.Decimal `db:"amount_limit"`
	PeriodStart time.Time       `db:"period_start"`
	PeriodEnd   time.Time       `db:"period_end"`
}

// BudgetCreate is the input for creating a new budget.
type BudgetCreate struct {
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	AmountLimit decimal.Decimal
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// IBudgetReader defines read-only budget storage operations.
type IBudgetReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Budget, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Budget, error)
	ListContaining(ctx context.Context, categoryID uuid.UUID, date time.Time) ([]*Budget, error)
}

// IBudgetTable defines the interface for budget storage operations.
type IBudgetTable interface {
	IBudgetReader
	Insert(ctx context.Context, create *BudgetCreate) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
