package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/audit"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/category"
)

// CreateCategory defines a new income or expense category for a user.
type CreateCategory struct {
	UserID uuid.UUID
	Name   string
	Type   category.Polarity

	// Created is set after a successful Perform.
	Created *category.Category

	ChangeSet
}

func (a *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Name == "" {
		return validationf("name is required")
	}
	if !a.Type.Valid() {
		return validationf("type must be income or expense")
	}

	owner, err := writer.Users.FindByID(ctx, a.UserID)
	if err != nil {
		return err
	}
	if owner == nil {
		return &NotFoundError{Entity: "user"}
	}

	id, err := writer.Categories.Insert(ctx, &category.CategoryCreate{
		UserID: a.UserID,
		Name:   a.Name,
		Type:   a.Type,
	})
	if err != nil {
		return err
	}

	a.Created = &category.Category{
		ID:     id,
		UserID: a.UserID,
		Name:   a.Name,
		Type:   a.Type,
	}
	a.Record("categories", id, audit.ActionCreate, nil, a.Created)
	return nil
}
