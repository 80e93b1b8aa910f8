package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage"
)

// User represents a user in the service layer. The password hash never
// leaves the storage layer.
type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	CreatedAt time.Time
}

// UserService handles user read operations.
type UserService struct {
	reader *storage.Reader
}

// NewUserService creates a new UserService.
func NewUserService(reader *storage.Reader) *UserService {
	return &UserService{reader: reader}
}

// GetUser retrieves a user by ID. Returns nil when it does not exist.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	row, err := s.reader.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return &User{
		ID:        row.ID,
		Username:  row.Username,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
	}, nil
}

// ListUsers returns every user.
func (s *UserService) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.reader.Users.List(ctx)
	if err != nil {
		return nil, err
	}

	converted := make([]User, len(rows))
	for i, row := range rows {
		converted[i] = User{
			ID:        row.ID,
			Username:  row.Username,
			Email:     row.Email,
			CreatedAt: row.CreatedAt,
		}
	}
	return converted, nil
}
