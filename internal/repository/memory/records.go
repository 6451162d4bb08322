package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/projectblurimedia/Veggie-Tracker/internal/model"
	"github.com/projectblurimedia/Veggie-Tracker/internal/repository"
	"github.com/projectblurimedia/Veggie-Tracker/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- expenses ---

type expenseRepo struct{ s *Store }

func cloneExpense(e model.Expense) model.Expense {
	e.Items = append([]model.ExpenseItem(nil), e.Items...)
	return e
}

func (r expenseRepo) Create(_ context.Context, e *model.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	for i := range e.Items {
		e.Items[i].ExpenseID = e.ID
		if e.Items[i].ID == uuid.Nil {
			e.Items[i].ID = uuid.New()
		}
	}
	now := r.s.now()
	e.CreatedAt, e.UpdatedAt = now, now
	r.s.expenses[e.ID] = cloneExpense(*e)
	return nil
}

func (r expenseRepo) Save(_ context.Context, e *model.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.expenses[e.ID]
	if !ok {
		return repository.ErrNotFound
	}
	e.UpdatedAt = r.s.now()
	saved := cloneExpense(*e)
	saved.Items = existing.Items
	r.s.expenses[e.ID] = saved
	return nil
}

func (r expenseRepo) ReplaceItems(_ context.Context, expenseID uuid.UUID, items []model.ExpenseItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.expenses[expenseID]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range items {
		items[i].ExpenseID = expenseID
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	e.Items = append([]model.ExpenseItem(nil), items...)
	r.s.expenses[expenseID] = e
	return nil
}

func (r expenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.expenses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.expenses, id)
	return nil
}

func (r expenseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.expenses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e = cloneExpense(e)
	return &e, nil
}

func (r expenseRepo) filtered(filter repository.ExpenseFilter) []model.Expense {
	out := make([]model.Expense, 0, len(r.s.expenses))
	for _, e := range r.s.expenses {
		if filter.RecordType != "" && e.RecordType != filter.RecordType {
			continue
		}
		if !inRange(e.Date, filter.From, filter.To) {
			continue
		}
		out = append(out, cloneExpense(e))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r expenseRepo) List(_ context.Context, p pagination.Params) ([]model.Expense, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.filtered(repository.ExpenseFilter{})
	return page(all, p), int64(len(all)), nil
}

func (r expenseRepo) Find(_ context.Context, filter repository.ExpenseFilter) ([]model.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.filtered(filter), nil
}

func groupByType(expenses []model.Expense) []model.RecordTypeTotal {
	index := make(map[string]int)
	var out []model.RecordTypeTotal
	for _, e := range expenses {
		i, ok := index[e.RecordType]
		if !ok {
			i = len(out)
			index[e.RecordType] = i
			out = append(out, model.RecordTypeTotal{RecordType: e.RecordType, TotalAmount: decimal.Zero})
		}
		out[i].RecordCount++
		out[i].TotalAmount = out[i].TotalAmount.Add(e.TotalPrice)
	}
	for i := range out {
		out[i].AverageAmount = out[i].TotalAmount.Div(decimal.NewFromInt(out[i].RecordCount))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordType < out[j].RecordType })
	return out
}

func sumExpenses(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.TotalPrice)
	}
	return total
}

func (r expenseRepo) Dashboard(_ context.Context, dayStart, dayEnd time.Time) (model.ExpenseDashboard, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.filtered(repository.ExpenseFilter{})
	end := dayEnd.Add(-time.Nanosecond)
	today := r.filtered(repository.ExpenseFilter{From: &dayStart, To: &end})
	return model.ExpenseDashboard{
		TotalRecords:  int64(len(all)),
		TotalAmount:   sumExpenses(all),
		TodayRecords:  int64(len(today)),
		TodayAmount:   sumExpenses(today),
		RecordsByType: groupByType(all),
	}, nil
}

func (r expenseRepo) Summary(_ context.Context, from, to *time.Time) (model.FinancialSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := r.filtered(repository.ExpenseFilter{From: from, To: to})
	var summary model.FinancialSummary
	summary.ByType = groupByType(rows)
	summary.Overall.GrandTotal = sumExpenses(rows)
	summary.Overall.TotalRecords = int64(len(rows))
	return summary, nil
}

// --- item catalog ---

type itemRepo struct{ s *Store }

func (r itemRepo) insert(item *model.Item) error {
	for _, existing := range r.s.items {
		if existing.Name == item.Name {
			return repository.ErrDuplicate
		}
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = r.s.now()
	r.s.items[item.ID] = *item
	return nil
}

func (r itemRepo) Create(_ context.Context, item *model.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.insert(item)
}

func (r itemRepo) CreateMany(_ context.Context, items []model.Item) ([]model.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	created := make([]model.Item, 0, len(items))
	for i := range items {
		if err := r.insert(&items[i]); err != nil {
			continue
		}
		created = append(created, items[i])
	}
	return created, nil
}

func (r itemRepo) List(_ context.Context, search string) ([]model.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	needle := strings.ToLower(search)
	out := make([]model.Item, 0, len(r.s.items))
	for _, item := range r.s.items {
		if needle == "" || strings.Contains(strings.ToLower(item.Name), needle) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r itemRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.items, id)
	return nil
}

// --- users ---

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := r.s.now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}
