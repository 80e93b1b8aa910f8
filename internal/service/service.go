package service

import (
	"github.com/carson-networks/ledger-server/internal/storage"
)

// Service holds all read-side services. Mutations do not pass through
// here; they are queued as operator actions so balance updates stay
// serialized.
type Service struct {
	User        *UserService
	Account     *AccountService
	Category    *CategoryService
	Transaction *TransactionService
	Transfer    *TransferService
	Budget      *BudgetService
	Report      *ReportService
}

// NewService creates a new Service over the given read view.
func NewService(reader *storage.Reader) *Service {
	return &Service{
		User:        NewUserService(reader),
		Account:     NewAccountService(reader),
		Category:    NewCategoryService(reader),
		Transaction: NewTransactionService(reader),
		Transfer:    NewTransferService(reader),
		Budget:      NewBudgetService(reader),
		Report:      NewReportService(reader),
	}
}
