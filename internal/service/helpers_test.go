package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/projectblurimedia/Veggie-Tracker/internal/model"
	"github.com/projectblurimedia/Veggie-Tracker/internal/repository/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s", want, got)
}

func assertKind(t *testing.T, kind error, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Truef(t, errors.Is(err, kind), "want %v, got %v", kind, err)
}

// mapCache is a StatsCache that keeps JSON snapshots in memory
type mapCache struct {
	mu          sync.Mutex
	data        map[string][]byte
	invalidated []string
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		c.invalidated = append(c.invalidated, k)
	}
	return nil
}

type fixture struct {
	store     *memory.Store
	cache     *mapCache
	customers CustomerService
	orders    OrderService
	expenses  ExpenseService
	items     ItemService
}

func newFixture() *fixture {
	store := memory.NewStore()
	c := newMapCache()
	return &fixture{
		store:     store,
		cache:     c,
		customers: NewCustomerService(store.Customers(), store.Orders()),
		orders:    NewOrderService(store.Orders(), store.Customers(), store.TxManager(), c, time.Minute),
		expenses:  NewExpenseService(store.Expenses(), store.TxManager(), c, time.Minute),
		items:     NewItemService(store.Items()),
	}
}

func (f *fixture) customer(t *testing.T, uniqueID, name, phone string) *model.Customer {
	t.Helper()
	c, err := f.customers.CreateCustomer(context.Background(), CreateCustomerRequest{
		UniqueID: uniqueID,
		FullName: name,
		Phone:    phone,
	})
	require.NoError(t, err)
	return c
}

// order creates an order for the customer with one line per amount.
func (f *fixture) order(t *testing.T, c *model.Customer, date string, paid string, amounts ...string) *OrderResponse {
	t.Helper()
	lines := make([]ItemPayload, 0, len(amounts))
	for _, a := range amounts {
		lines = append(lines, ItemPayload{Name: "Tomato", Quantity: d("2"), Price: d(a)})
	}
	o, err := f.orders.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerDetails: CustomerDetails{UniqueID: c.UniqueID},
		Date:            date,
		Items:           lines,
		TotalPaid:       dp(paid),
	})
	require.NoError(t, err)
	return o
}
