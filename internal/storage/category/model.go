package category

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

// Polarity determines the sign a transaction in the category applies to
// its account balance.
type Polarity string

const (
	PolarityIncome  Polarity = "income"
	PolarityExpense Polarity = "expense"
)

// Valid reports whether the polarity is one of the two known values.
func (p Polarity) Valid() bool {
	return p == PolarityIncome || p == PolarityExpense
}

// Category represents a category record.
type Category struct {
	ID     uuid.UUID `db:"category_id"`
	UserID uuid.UUID `db:"user_id"`
	Name   string    `db:"name"`
	Type   Polarity  `db:"type"`
}

// CategoryCreate is the input for creating a new category.
type CategoryCreate struct {
	UserID uuid.UUID
	Name   string
	Type   Polarity
}

// ICategoryReader defines read-only category storage operations.
type ICategoryReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Category, error)
}

// ICategoryTable defines the interface for category storage operations.
type ICategoryTable interface {
	ICategoryReader
	Insert(ctx context.Context, create *CategoryCreate) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
