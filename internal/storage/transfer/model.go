package transfer

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transfer represents a double-entry monetary event between two accounts:
// -amount on the source, +amount on the destination, zero-sum across the
// pair.
type Transfer struct {
	ID              uuid.UUID       `db:"transfer_id"`
	FromAccountID   uuid.UUID       `db:"account_id_from"`
	ToAccountID     uuid.UUID       `db:"account_id_to"`
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
	CreatedAt       time.Time       `db:"created_at"`
}

// TransferCreate is the input for creating a new transfer.
type TransferCreate struct {
	FromAccountID   uuid.UUID
	ToAccountID     uuid.UUID
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time // defaults to now if zero
}

// TransferSetter holds the columns to change on update. Unset fields are
// left untouched.
type TransferSetter struct {
	FromAccountID   omit.Val[uuid.UUID]
	ToAccountID     omit.Val[uuid.UUID]
	Amount          omit.Val[decimal.Decimal]
	Description     omit.Val[string]
	TransactionDate omit.Val[time.Time]
}

// TransferFilter specifies filters for listing transfers.
type TransferFilter struct {
	AccountID *uuid.UUID // matches either endpoint
	Limit     int
	Offset    int
}

// ITransferReader defines read-only transfer storage operations.
type ITransferReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transfer, error)
	List(ctx context.Context, filter *TransferFilter) ([]*Transfer, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Transfer, error)
}

// ITransferTable defines the interface for transfer storage operations.
type ITransferTable interface {
	ITransferReader
	Insert(ctx context.Context, create *TransferCreate) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, setter *TransferSetter) error
	Delete(ctx context.Context, id uuid.UUID) error
}
