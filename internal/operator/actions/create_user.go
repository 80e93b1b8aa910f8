package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/audit"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/user"
)

// CreateUser registers a new user.
type CreateUser struct {
	Username     string
	Email        string
	PasswordHash string

	// Created is set after a successful Perform.
	Created *user.User

	ChangeSet
}

func (a *CreateUser) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Username == "" {
		return validationf("username is required")
	}
	if a.Email == "" {
		return validationf("email is required")
	}

	id, err := writer.Users.Insert(ctx, &user.UserCreate{
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
	})
	if err != nil {
		return err
	}

	a.Created = &user.User{
		ID:       id,
		Username: a.Username,
		Email:    a.Email,
	}
	a.Record("users", id, audit.ActionCreate, nil, a.Created)
	return nil
}
