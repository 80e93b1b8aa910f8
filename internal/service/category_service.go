package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage"
)

// Category represents a category in the service layer. Type is "income"
// or "expense".
type Category struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string
	Type   string
}

// CategoryService handles category read operations.
type CategoryService struct {
	reader *storage.Reader
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(reader *storage.Reader) *CategoryService {
	return &CategoryService{reader: reader}
}

// GetCategory retrieves a category by ID. Returns nil when it does not
// exist.
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	row, err := s.reader.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return &Category{
		ID:     row.ID,
		UserID: row.UserID,
		Name:   row.Name,
		Type:   string(row.Type),
	}, nil
}

// ListCategories returns every category belonging to one user.
func (s *CategoryService) ListCategories(ctx context.Context, userID uuid.UUID) ([]Category, error) {
	rows, err := s.reader.Categories.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	converted := make([]Category, len(rows))
	for i, row := range rows {
		converted[i] = Category{
			ID:     row.ID,
			UserID: row.UserID,
			Name:   row.Name,
			Type:   string(row.Type),
		}
	}
	return converted, nil
}
