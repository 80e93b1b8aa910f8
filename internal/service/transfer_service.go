package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transfer"
)

// Transfer represents a transfer in the service layer.
type Transfer struct {
	ID              uuid.UUID
	FromAccountID   uuid.UUID
	ToAccountID     uuid.UUID
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time
	CreatedAt       time.Time
}

// TransferCursor identifies a position in a paginated result set.
type TransferCursor struct {
	Position int
	Limit    int
}

// TransferService handles transfer read operations.
type TransferService struct {
	reader *storage.Reader
}

// NewTransferService creates a new TransferService.
func NewTransferService(reader *storage.Reader) *TransferService {
	return &TransferService{reader: reader}
}

// GetTransfer retrieves a transfer by ID. Returns nil when it does not
// exist.
func (s *TransferService) GetTransfer(ctx context.Context, id uuid.UUID) (*Transfer, error) {
	row, err := s.reader.Transfers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	converted := transferFromStorage(row)
	return &converted, nil
}

// ListTransfers returns a page of transfers using cursor pagination,
// optionally restricted to those touching one account.
func (s *TransferService) ListTransfers(ctx context.Context, accountID *uuid.UUID, cursor *TransferCursor) ([]Transfer, *TransferCursor, error) {
	limit := defaultLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	filter := &transfer.TransferFilter{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	}

	rows, err := s.reader.Transfers.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransferCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &TransferCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	convertedTransfers := make([]Transfer, len(rows))
	for i, row := range rows {
		convertedTransfers[i] = transferFromStorage(row)
	}

	return convertedTransfers, nextCursor, nil
}

func transferFromStorage(row *transfer.Transfer) Transfer {
	return Transfer{
		ID:              row.ID,
		FromAccountID:   row.FromAccountID,
		ToAccountID:     row.ToAccountID,
		Amount:          row.Amount,
		Description:     row.Description,
		TransactionDate: row.TransactionDate,
		CreatedAt:       row.CreatedAt,
	}
}
