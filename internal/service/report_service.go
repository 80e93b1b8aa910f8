package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// CategoryTotal is one row of the per-category aggregate report.
type CategoryTotal struct {
	CategoryName     string
	CategoryType     string
	TotalAmount      decimal.Decimal
	TransactionCount int64
}

// ReportService produces read-only aggregates over the ledger.
type ReportService struct {
	reader *storage.Reader
}

// NewReportService creates a new ReportService.
func NewReportService(reader *storage.Reader) *ReportService {
	return &ReportService{reader: reader}
}

// CategoryTotals returns per-category sums and counts over all
// transactions.
func (s *ReportService) CategoryTotals(ctx context.Context) ([]CategoryTotal, error) {
	rows, err := s.reader.Transactions.CategoryTotals(ctx)
	if err != nil {
		return nil, err
	}

	converted := make([]CategoryTotal, len(rows))
	for i, row := range rows {
		converted[i] = CategoryTotal{
			CategoryName:     row.CategoryName,
			CategoryType:     row.CategoryType,
			TotalAmount:      row.TotalAmount,
			TransactionCount: row.TransactionCount,
		}
	}
	return converted, nil
}

// TransactionsInRange returns every transaction dated inside the
// inclusive range, optionally scoped to one account.
func (s *ReportService) TransactionsInRange(ctx context.Context, accountID *uuid.UUID, from, to time.Time) ([]Transaction, error) {
	filter := &transaction.TransactionFilter{
		AccountID: accountID,
		DateFrom:  &from,
		DateTo:    &to,
	}

	rows, err := s.reader.Transactions.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = transactionFromStorage(row)
	}
	return converted, nil
}
