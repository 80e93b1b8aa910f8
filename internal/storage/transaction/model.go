package transaction

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction represents a single-entry monetary event against one account
// and one category. Amount is always positive; the category polarity
// determines the sign of its effect on the account balance.
type Transaction struct {
	ID              uuid.UUID       `db:"transaction_id"`
	AccountID       uuid.UUID       `db:"account_id"`
	CategoryID      uuid.UUID       `db:"category_id"`
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
	CreatedAt       time.Time       `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	AccountID       uuid.UUID
	CategoryID      uuid.UUID
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time // defaults to now if zero
}

// TransactionSetter holds the columns to change on update. Unset fields
// are left untouched.
type TransactionSetter struct {
	AccountID       omit.Val[uuid.UUID]
	CategoryID      omit.Val[uuid.UUID]
	Amount          omit.Val[decimal.Decimal]
	Description     omit.Val[string]
	TransactionDate omit.Val[time.Time]
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	AccountID       *uuid.UUID
	CategoryID      *uuid.UUID
	DateFrom        *time.Time
	DateTo          *time.Time
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// CategoryTotal is one row of the per-category aggregate report.
type CategoryTotal struct {
	CategoryName     string          `db:"name"`
	CategoryType     string          `db:"type"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	TransactionCount int64           `db:"transaction_count"`
}

// ITransactionReader defines read-only transaction storage operations.
type ITransactionReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	SumExpensesInPeriod(ctx context.Context, categoryID uuid.UUID, periodStart, periodEnd time.Time, excludeID uuid.UUID) (decimal.Decimal, error)
	CategoryTotals(ctx context.Context) ([]*CategoryTotal, error)
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
type ITransactionTable interface {
	ITransactionReader
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, setter *TransactionSetter) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
	DeleteByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
