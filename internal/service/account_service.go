package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

const defaultAccountLimit = 20

// AccountService handles account read operations.
type AccountService struct {
	reader *storage.Reader
}

// NewAccountService creates a new AccountService.
func NewAccountService(reader *storage.Reader) *AccountService {
	return &AccountService{reader: reader}
}

// GetAccount retrieves an account by ID. Returns nil when it does not
// exist.
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	row, err := s.reader.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	converted := accountFromStorage(row)
	return &converted, nil
}

// ListAccounts returns a page of accounts using cursor pagination,
// optionally scoped to one user.
func (s *AccountService) ListAccounts(ctx context.Context, userID *uuid.UUID, cursor *AccountCursor) ([]Account, *AccountCursor, error) {
	limit := defaultAccountLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	filter := &account.AccountFilter{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	}

	rows, err := s.reader.Accounts.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *AccountCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &AccountCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	convertedAccounts := make([]Account, len(rows))
	for i, row := range rows {
		convertedAccounts[i] = accountFromStorage(row)
	}

	return convertedAccounts, nextCursor, nil
}
