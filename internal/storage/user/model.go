package user

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents a user record.
type User struct {
	ID           uuid.UUID `db:"user_id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// UserCreate is the input for creating a new user.
type UserCreate struct {
	Username     string
	Email        string
	PasswordHash string
}

// IUserReader defines read-only user storage operations.
type IUserReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

// IUserTable defines the interface for user storage operations.
type IUserTable interface {
	IUserReader
	Insert(ctx context.Context, create *UserCreate) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
