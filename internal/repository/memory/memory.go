// Package memory implements the repository interfaces on in-process maps.
// It backs the service and handler tests; RunInTx serializes units of work
// but does not roll back partial writes.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/projectblurimedia/Veggie-Tracker/internal/ledger"
	"github.com/projectblurimedia/Veggie-Tracker/internal/model"
	"github.com/projectblurimedia/Veggie-Tracker/internal/repository"
	"github.com/projectblurimedia/Veggie-Tracker/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store holds every table. Each repository returned by the accessors shares it.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex
	customers map[uuid.UUID]model.Customer
	orders    map[uuid.UUID]model.Order
	expenses  map[uuid.UUID]model.Expense
	items     map[uuid.UUID]model.Item
	users     map[uuid.UUID]model.User
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{
		customers: make(map[uuid.UUID]model.Customer),
		orders:    make(map[uuid.UUID]model.Order),
		expenses:  make(map[uuid.UUID]model.Expense),
		items:     make(map[uuid.UUID]model.Item),
		users:     make(map[uuid.UUID]model.User),
		now:       time.Now,
	}
}

func (s *Store) TxManager() repository.TransactionManager { return txManager{s} }
func (s *Store) Customers() repository.CustomerRepository { return customerRepo{s} }
func (s *Store) Orders() repository.OrderRepository       { return orderRepo{s} }
func (s *Store) Expenses() repository.ExpenseRepository   { return expenseRepo{s} }
func (s *Store) Items() repository.ItemRepository         { return itemRepo{s} }
func (s *Store) Users() repository.UserRepository         { return userRepo{s} }

type txManager struct{ s *Store }

func (t txManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()
	return fn(ctx)
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func page[T any](rows []T, p pagination.Params) []T {
	offset := p.Offset()
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + p.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

// --- customers ---

type customerRepo struct{ s *Store }

func (r customerRepo) Create(_ context.Context, c *model.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.customers {
		if existing.UniqueID == c.UniqueID {
			return repository.ErrDuplicate
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := r.s.now()
	c.CreatedAt, c.UpdatedAt = now, now
	r.s.customers[c.ID] = *c
	return nil
}

func (r customerRepo) Update(_ context.Context, c *model.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; !ok {
		return repository.ErrNotFound
	}
	c.UpdatedAt = r.s.now()
	r.s.customers[c.ID] = *c
	return nil
}

func (r customerRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.customers, id)
	return nil
}

func (r customerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r customerRepo) findBy(match func(model.Customer) bool) (*model.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.customers {
		if match(c) {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r customerRepo) FindByUniqueID(_ context.Context, uniqueID string) (*model.Customer, error) {
	return r.findBy(func(c model.Customer) bool { return c.UniqueID == uniqueID })
}

func (r customerRepo) FindByPhone(_ context.Context, phone string) (*model.Customer, error) {
	return r.findBy(func(c model.Customer) bool { return c.Phone == phone })
}

func (r customerRepo) ListWithSummary(_ context.Context, filter repository.CustomerFilter) ([]repository.CustomerWithSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byCustomer := make(map[string][]model.Order)
	for _, o := range r.s.orders {
		byCustomer[o.CustomerUniqueID] = append(byCustomer[o.CustomerUniqueID], o)
	}

	search := strings.ToLower(filter.Search)
	out := make([]repository.CustomerWithSummary, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		if search != "" && !strings.Contains(strings.ToLower(c.FullName), search) && !strings.Contains(c.Phone, filter.Search) {
			continue
		}
		summary := ledger.AggregateCustomer(byCustomer[c.UniqueID])
		if filter.PaymentSummary != "" && summary.PaymentSummary != filter.PaymentSummary {
			continue
		}
		out = append(out, repository.CustomerWithSummary{Customer: c, CustomerSummary: summary})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// --- orders ---

type orderRepo struct{ s *Store }

func cloneOrder(o model.Order) model.Order {
	o.Items = append([]model.OrderItem(nil), o.Items...)
	return o
}

func (r orderRepo) Create(_ context.Context, o *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
	}
	now := r.s.now()
	o.CreatedAt, o.UpdatedAt = now, now
	r.s.orders[o.ID] = cloneOrder(*o)
	return nil
}

func (r orderRepo) Save(_ context.Context, o *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.orders[o.ID]
	if !ok {
		return repository.ErrNotFound
	}
	o.UpdatedAt = r.s.now()
	saved := cloneOrder(*o)
	saved.Items = existing.Items
	r.s.orders[o.ID] = saved
	return nil
}

func (r orderRepo) ReplaceItems(_ context.Context, orderID uuid.UUID, items []model.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[orderID]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range items {
		items[i].OrderID = orderID
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	o.Items = append([]model.OrderItem(nil), items...)
	r.s.orders[orderID] = o
	return nil
}

func (r orderRepo) UpdatePayment(_ context.Context, o *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.orders[o.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.TotalPaid = o.TotalPaid
	existing.TotalAmount = o.TotalAmount
	existing.BalanceAmount = o.BalanceAmount
	existing.PaymentStatus = o.PaymentStatus
	existing.UpdatedAt = r.s.now()
	r.s.orders[o.ID] = existing
	return nil
}

func (r orderRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.orders, id)
	return nil
}

func (r orderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o = cloneOrder(o)
	return &o, nil
}

// FindByIDForUpdate relies on RunInTx for mutual exclusion.
func (r orderRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return r.FindByID(ctx, id)
}

func (r orderRepo) sorted(match func(model.Order) bool) []model.Order {
	out := make([]model.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		if match(o) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r orderRepo) List(_ context.Context, p pagination.Params) ([]model.Order, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.sorted(func(model.Order) bool { return true })
	return page(all, p), int64(len(all)), nil
}

func (r orderRepo) Find(_ context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.sorted(func(o model.Order) bool {
		if filter.CustomerUniqueID != "" && o.CustomerUniqueID != filter.CustomerUniqueID {
			return false
		}
		return inRange(o.Date, filter.From, filter.To)
	}), nil
}

func (r orderRepo) CountByCustomer(_ context.Context, customerUniqueID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, o := range r.s.orders {
		if o.CustomerUniqueID == customerUniqueID {
			n++
		}
	}
	return n, nil
}

func (r orderRepo) Dashboard(_ context.Context, dayStart, dayEnd time.Time) (model.OrderDashboard, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d := model.OrderDashboard{
		TotalRevenue:     decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalOutstanding: decimal.Zero,
		TodayRevenue:     decimal.Zero,
	}
	for _, o := range r.s.orders {
		d.TotalOrders++
		d.TotalRevenue = d.TotalRevenue.Add(o.TotalAmount)
		d.TotalPaid = d.TotalPaid.Add(o.TotalPaid)
		d.TotalOutstanding = d.TotalOutstanding.Add(o.BalanceAmount)
		if !o.Date.Before(dayStart) && o.Date.Before(dayEnd) {
			d.TodayOrders++
			d.TodayRevenue = d.TodayRevenue.Add(o.TotalAmount)
		}
	}
	return d, nil
}
