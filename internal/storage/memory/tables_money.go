package memory

import (
	"context"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/budget"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
	"github.com/carson-networks/ledger-server/internal/storage/transfer"
)

// -- categories --

type categoryTable struct {
	s  *Store
	ss *session
}

var _ category.ICategoryTable = (*categoryTable)(nil)

func (t *categoryTable) FindByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	row, ok := t.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (t *categoryTable) ListByUser(_ context.Context, userID uuid.UUID) ([]*category.Category, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var result []*category.Category
	for id := range t.s.categories {
		row := t.s.categories[id]
		if row.UserID == userID {
			result = append(result, &row)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (t *categoryTable) Insert(_ context.Context, create *category.CategoryCreate) (uuid.UUID, error) {
	if t.ss == nil {
		return uuid.Nil, errReadOnly
	}
	id := newID()
	row := category.Category{
		ID:     id,
		UserID: create.UserID,
		Name:   create.Name,
		Type:   create.Type,
	}

	t.s.mu.Lock()
	t.s.categories[id] = row
	t.s.mu.Unlock()

	t.ss.onRollback(func() { delete(t.s.categories, id) })
	return id, nil
}

func (t *categoryTable) Delete(_ context.Context, id uuid.UUID) error {
	if t.ss == nil {
		return errReadOnly
	}
	t.s.mu.Lock()
	prev, ok := t.s.categories[id]
	delete(t.s.categories, id)
	t.s.mu.Unlock()

	if ok {
		t.ss.onRollback(func() { t.s.categories[id] = prev })
	}
	return nil
}

// -- transactions --

type transactionTable struct {
	s  *Store
	ss *session
}

var _ transaction.ITransactionTable = (*transactionTable)(nil)

func (t *transactionTable) FindByID(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	row, ok := t.s.transactions[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (t *transactionTable) List(_ context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	var result []*transaction.Transaction
	for id := range t.s.transactions {
		row := t.s.transactions[id]
		if filter != nil {
			if filter.AccountID != nil && row.AccountID != *filter.AccountID {
				continue
			}
			if filter.CategoryID != nil && row.CategoryID != *filter.CategoryID {
				continue
			}
			if filter.DateFrom != nil && row.TransactionDate.Before(*filter.DateFrom) {
				continue
			}
			if filter.DateTo != nil && row.TransactionDate.After(*filter.DateTo) {
				continue
			}
			if filter.MaxCreationTime != nil && row.CreatedAt.After(*filter.MaxCreationTime) {
				continue
			}
		}
		result = append(result, &row)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return !lessID(result[i].ID, result[j].ID)
	})
	limit, offset := 0, 0
	if filter != nil {
		limit, offset = filter.Limit, filter.Offset
	}
	return page(result, limit, offset), nil
}

func (t *transactionTable) SumExpensesInPeriod(_ context.Context, categoryID uuid.UUID, periodStart, periodEnd time.Time, excludeID uuid.UUID) (decimal.Decimal, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	total := decimal.Zero
	for id := range t.s.transactions {
		row := t.s.transactions[id]
		if row.CategoryID != categoryID || row.ID == excludeID {
			continue
		}
		if row.TransactionDate.Before(periodStart) || row.TransactionDate.After(periodEnd) {
			continue
		}
		total = total.Add(row.Amount)
	}
	return total, nil
}

func (t *transactionTable) CategoryTotals(_ context.Context) ([]*transaction.CategoryTotal, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	totals := make(map[uuid.UUID]*transaction.CategoryTotal)
	for id := range t.s.transactions {
		row := t.s.transactions[id]
		cat, ok := t.s.categories[row.CategoryID]
		if !ok {
			continue
		}
		agg, ok := totals[cat.ID]
		if !ok {
			agg = &transaction.CategoryTotal{
				CategoryName: cat.Name,
				CategoryType: string(cat.Type),
				TotalAmount:  decimal.Zero,
			}
			totals[cat.ID] = agg
		}
		agg.TotalAmount = agg.TotalAmount.Add(row.Amount)
		agg.TransactionCount++
	}

	result := make([]*transaction.CategoryTotal, 0, len(totals))
	for _, agg := range totals {
		result = append(result, agg)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CategoryName < result[j].CategoryName })
	return result, nil
}

func (t *transactionTable) Insert(_ context.Context, create *transaction.TransactionCreate) (uuid.UUID, error) {
	if t.ss == nil {
		return uuid.Nil, errReadOnly
	}
	id := newID()
	txDate := create.TransactionDate
	if txDate.IsZero() {
		txDate = time.Now()
	}
	row := transaction.Transaction{
		ID:              id,
		AccountID:       create.AccountID,
		CategoryID:      create.CategoryID,
		Amount:          create.Amount,
		Description:     create.Description,
		TransactionDate: txDate,
		CreatedAt:       time.Now(),
	}

	t.s.mu.Lock()
	t.s.transactions[id] = row
	t.s.mu.Unlock()

	t.ss.onRollback(func() { delete(t.s.transactions, id) })
	return id, nil
}

func (t *transactionTable) Update(_ context.Context, id uuid.UUID, setter *transaction.TransactionSetter) error {
	if t.ss == nil {
		return errReadOnly
	}
	t.s.mu.Lock()
	prev, ok := t.s.transactions[id]
	if ok {
		row := prev
		if v, set := setter.AccountID.Get(); set {
			row.AccountID = v
		}
		if v, set := setter.CategoryID.Get(); set {
			row.CategoryID = v
		}
		if v, set := setter.Amount.Get(); set {
			row.Amount = v
		}
		if v, set := setter.Description.Get(); set {
			row.Description = v
		}
		if v, set := setter.TransactionDate.Get(); set {
			row.TransactionDate = v
		}
		t.s.transactions[id] = row
	}
	t.s.mu.Unlock()

	if ok {
		t.ss.onRollback(func() { t.s.transactions[id] = prev })
	}
	return nil
}

func (t *transactionTable) Delete(_ context.Context, id uuid.UUID) error {
	if t.ss == nil {
		return errReadOnly
	}
	t.s.mu.Lock()
	prev, ok := t.s.transactions[id]
	delete(t.s.transactions, id)
	t.s.mu.Unlock()

	if ok {
		t.ss.onRollback(func() { t.s.transactions[id] = prev })
	}
	return nil
}

func (t *transactionTable) DeleteByAccount(_ context.Context, accountID uuid.UUID) (int64, error) {
	return t.deleteWhere(func(row transaction.Transaction) bool { return row.AccountID == accountID })
}

func (t *transactionTable) DeleteByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	return t.deleteWhere(func(row transaction.Transaction) bool { return row.CategoryID == categoryID })
}

func (t *transactionTable) deleteWhere(match func(transaction.Transaction) bool) (int64, error) {
	if t.ss == nil {
		return 0, errReadOnly
	}
	t.s.mu.Lock()
	var removed []transaction.Transaction
	for id := range t.s.transactions {
		row := t.s.transactions[id]
		if match(row) {
			removed = append(removed, row)
			delete(t.s.transactions, id)
		}
	}
	t.s.mu.Unlock()

	if len(removed) > 0 {
		t.ss.onRollback(func() {
			for _, row := range removed {
				t.s.transactions[row.ID] = row
			}
		})
	}
	return int64(len(removed)), nil
}

// -- transfers --

type transferTable struct {
	s  *Store
	ss *session
}

var _ transfer.ITransferTable = (*transferTable)(nil)

func (t *transferTable) FindByID(_ context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	row, ok := t.s.transfers[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (t *transferTable) List(_ context.Context, filter *transfer.TransferFilter) ([]*transfer.Transfer, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	var result []*transfer.Transfer
	for id := range t.s.transfers {
		row := t.s.transfers[id]
		if filter != nil && filter.AccountID != nil &&
			row.FromAccountID != *filter.AccountID && row.ToAccountID != *filter.AccountID {
			continue
		}
		result = append(result, &row)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return !lessID(result[i].ID, result[j].ID)
	})
	limit, offset := 0, 0
	if filter != nil {
		limit, offset = filter.Limit, filter.Offset
	}
	return page(result, limit, offset), nil
}

func (t *transferTable) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transfer.Transfer, error) {
	return t.List(ctx, &transfer.TransferFilter{AccountID: &accountID})
}

func (t *transferTable) Insert(_ context.Context, create *transfer.TransferCreate) (uuid.UUID, error) {
	if t.ss == nil {
		return uuid.Nil, errReadOnly
	}
	id := newID()
	txDate := create.TransactionDate
	if txDate.IsZero() {
		txDate = time.Now()
	}
	row := transfer.Transfer{
		ID:              id,
		FromAccountID:   create.FromAccountID,
		ToAccountID:     create.ToAccountID,
		Amount:          create.Amount,
		Description:     create.Description,
		TransactionDate: txDate,
		CreatedAt:       time.Now(),
	}

	t.s.mu.Lock()
	t.s.transfers[id] = row
	t.s.mu.Unlock()

	t.ss.onRollback(func() { delete(t.s.transfers, id) })
	return id, nil
}

func (t *transferTable) Update(_ context.Context, id uuid.UUID, setter *transfer.TransferSetter) error {
	if t.ss == nil {
		return errReadOnly
	}
	t.s.mu.Lock()
	prev, ok := t.s.transfers[id]
	if ok {
		row := prev
		if v, set := setter.FromAccountID.Get(); set {
			row.FromAccountID = v
		}
		if v, set := setter.ToAccountID.Get(); set {
			row.ToAccountID = v
		}
		if v, set := setter.Amount.Get(); set {
			row.Amount = v
		}
		if v, set := setter.Description.Get(); set {
			row.Description = v
		}
		if v, set := setter.TransactionDate.Get(); set {
			row.TransactionDate = v
		}
		t.s.transfers[id] = row
	}
	t.s.mu.Unlock()

	if ok {
		t.ss.onRollback(func() { t.s.transfers[id] = prev })
	}
	return nil
}

func (t *transferTable) Delete(_ context.Context, id uuid.UUID) error {
	if t.ss == nil {
		return errReadOnly
	}
	t.s.mu.Lock()
	prev, ok := t.s.transfers[id]
	delete(t.s.transfers, id)
	t.s.mu.Unlock()

	if ok {
		t.ss.onRollback(func() { t.s.transfers[id] = prev })
	}
	return nil
}

// -- budgets --

type budgetTable struct {
	s  *Store
	ss *session
}

var _ budget.IBudgetTable = (*budgetTable)(nil)

func (t *budgetTable) FindByID(_ context.Context, id uuid.UUID) (*budget.Budget, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	row, ok := t.s.budgets[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (t *budgetTable) ListByUser(_ context.Context, userID uuid.UUID) ([]*budget.Budget, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var result []*budget.Budget
	for id := range t.s.budgets {
		row := t.s.budgets[id]
		if row.UserID == userID {
			result = append(result, &row)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PeriodStart.Before(result[j].PeriodStart) })
	return result, nil
}

func (t *budgetTable) ListContaining(_ context.Context, categoryID uuid.UUID, date time.Time) ([]*budget.Budget, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var result []*budget.Budget
	for id := range t.s.budgets {
		row := t.s.budgets[id]
		if row.CategoryID != categoryID {
			continue
		}
		if date.Before(row.PeriodStart) || date.After(row.PeriodEnd) {
			continue
		}
		result = append(result, &row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PeriodStart.Before(result[j].PeriodStart) })
	return result, nil
}

func (t *budgetTable) Insert(_ context.Context, create *budget.BudgetCreate) (uuid.UUID, error) {
	if t.ss == nil {
		return uuid.Nil, errReadOnly
	}
	id := newID()
	row := budget.Budget{
		ID:          id,
		UserID:      create.UserID,
		CategoryID:  create.CategoryID,
		AmountLimit: create.AmountLimit,
		PeriodStart: create.PeriodStart,
		PeriodEnd:   create.PeriodEnd,
	}

	t.s.mu.Lock()
	t.s.budgets[id] = row
	t.s.mu.Unlock()

	t.ss.onRollback(func() { delete(t.s.budgets, id) })
	return id, nil
}

func (t *budgetTable) Delete(_ context.Context, id uuid.UUID) error {
	if t.ss == nil {
		return errReadOnly
	}
	t.s.mu.Lock()
	prev, ok := t.s.budgets[id]
	delete(t.s.budgets, id)
	t.s.mu.Unlock()

	if ok {
		t.ss.onRollback(func() { t.s.budgets[id] = prev })
	}
	return nil
}

func (t *budgetTable) DeleteByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	return t.deleteWhere(func(row budget.Budget) bool { return row.CategoryID == categoryID })
}

func (t *budgetTable) DeleteByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	return t.deleteWhere(func(row budget.Budget) bool { return row.UserID == userID })
}

func (t *budgetTable) deleteWhere(match func(budget.Budget) bool) (int64, error) {
	if t.ss == nil {
		return 0, errReadOnly
	}
	t.s.mu.Lock()
	var removed []budget.Budget
	for id := range t.s.budgets {
		row := t.s.budgets[id]
		if match(row) {
			removed = append(removed, row)
			delete(t.s.budgets, id)
		}
	}
	t.s.mu.Unlock()

	if len(removed) > 0 {
		t.ss.onRollback(func() {
			for _, row := range removed {
				t.s.budgets[row.ID] = row
			}
		})
	}
	return int64(len(removed)), nil
}
