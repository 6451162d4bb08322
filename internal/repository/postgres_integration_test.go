package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/projectblurimedia/Veggie-Tracker/internal/cache"
	"github.com/projectblurimedia/Veggie-Tracker/internal/database"
	"github.com/projectblurimedia/Veggie-Tracker/internal/ledger"
	"github.com/projectblurimedia/Veggie-Tracker/internal/model"
	"github.com/projectblurimedia/Veggie-Tracker/internal/repository"
	"github.com/projectblurimedia/Veggie-Tracker/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	databaseURL := os.Getenv("VEGGIE_TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("set VEGGIE_TEST_DATABASE_URL to run postgres integration tests")
	}

	db, err := database.NewConnection(databaseURL)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func cleanupCustomers(t *testing.T, db *gorm.DB, uniqueIDs ...string) {
	t.Cleanup(func() {
		db.Where("order_id IN (SELECT id FROM orders WHERE customer_unique_id IN ?)", uniqueIDs).Delete(&model.OrderItem{})
		db.Where("customer_unique_id IN ?", uniqueIDs).Delete(&model.Order{})
		db.Where("unique_id IN ?", uniqueIDs).Delete(&model.Customer{})
	})
}

func seedOrder(t *testing.T, repo repository.OrderRepository, c *model.Customer, paid string, amounts ...string) {
	t.Helper()
	items := make([]model.OrderItem, 0, len(amounts))
	for i, a := range amounts {
		items = append(items, model.OrderItem{
			Position: i,
			Name:     "Tomato",
			Quantity: decimal.NewFromInt(1),
			Amount:   decimal.RequireFromString(a),
		})
	}
	o := &model.Order{
		OrderNo:          fmt.Sprintf("ORDERIT%d", time.Now().UnixNano()),
		CustomerID:       c.ID,
		CustomerUniqueID: c.UniqueID,
		CustomerName:     c.FullName,
		CustomerPhone:    c.Phone,
		Date:             time.Now(),
		Items:            items,
		TotalPaid:        decimal.RequireFromString(paid),
	}
	ledger.Recalculate(o)
	require.NoError(t, repo.Create(context.Background(), o))
}

func TestCustomerSummarySQLMatchesLedger(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	customers := repository.NewCustomerRepository(db)
	orders := repository.NewOrderRepository(db)

	stamp := time.Now().UnixNano()
	ids := []string{
		fmt.Sprintf("IT-NONE-%d", stamp),
		fmt.Sprintf("IT-PAID-%d", stamp),
		fmt.Sprintf("IT-PEND-%d", stamp),
		fmt.Sprintf("IT-PART-%d", stamp),
		fmt.Sprintf("IT-CRED-%d", stamp),
	}
	cleanupCustomers(t, db, ids...)

	created := make(map[string]*model.Customer)
	for _, id := range ids {
		c := &model.Customer{UniqueID: id, FullName: "Integration " + id, Phone: model.PhoneNotProvided}
		require.NoError(t, customers.Create(ctx, c))
		created[id] = c
	}
	seedOrder(t, orders, created[ids[1]], "150.50", "100", "50.50")
	seedOrder(t, orders, created[ids[2]], "0", "80")
	seedOrder(t, orders, created[ids[2]], "0", "20.25")
	seedOrder(t, orders, created[ids[3]], "10", "100")
	seedOrder(t, orders, created[ids[4]], "120", "100")
	seedOrder(t, orders, created[ids[4]], "0", "10")

	rows, err := customers.ListWithSummary(ctx, repository.CustomerFilter{Search: fmt.Sprintf("%d", stamp)})
	require.NoError(t, err)
	require.Len(t, rows, len(ids))

	want := map[string]string{
		ids[0]: model.CustomerSummaryNoOrders,
		ids[1]: model.CustomerSummaryPaid,
		ids[2]: model.CustomerSummaryPending,
		ids[3]: model.CustomerSummaryPartial,
		ids[4]: model.CustomerSummaryPaid,
	}
	for _, row := range rows {
		stored, err := orders.Find(ctx, repository.OrderFilter{CustomerUniqueID: row.UniqueID})
		require.NoError(t, err)
		expected := ledger.AggregateCustomer(stored)

		assert.Equal(t, expected.TotalOrders, row.TotalOrders, row.UniqueID)
		assert.True(t, expected.TotalRevenue.Equal(row.TotalRevenue), row.UniqueID)
		assert.True(t, expected.TotalPaid.Equal(row.TotalPaid), row.UniqueID)
		assert.True(t, expected.OutstandingBalance.Equal(row.OutstandingBalance), row.UniqueID)
		assert.Equal(t, expected.PaymentSummary, row.PaymentSummary, row.UniqueID)
		assert.Equal(t, want[row.UniqueID], row.PaymentSummary, row.UniqueID)
	}

	pending, err := customers.ListWithSummary(ctx, repository.CustomerFilter{
		Search:         fmt.Sprintf("%d", stamp),
		PaymentSummary: model.CustomerSummaryPending,
	})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, ids[2], pending[0].UniqueID)
}

func TestConcurrentPaymentsOnPostgres(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	customers := repository.NewCustomerRepository(db)
	orders := repository.NewOrderRepository(db)

	uniqueID := fmt.Sprintf("IT-PAY-%d", time.Now().UnixNano())
	cleanupCustomers(t, db, uniqueID)
	c := &model.Customer{UniqueID: uniqueID, FullName: "Payer", Phone: model.PhoneNotProvided}
	require.NoError(t, customers.Create(ctx, c))

	svc := service.NewOrderService(orders, customers, repository.NewTransactionManager(db), cache.NoopStatsCache{}, time.Minute)
	o, err := svc.CreateOrder(ctx, service.CreateOrderRequest{
		CustomerDetails: service.CustomerDetails{UniqueID: uniqueID},
		Items:           []service.ItemPayload{{Name: "Onion", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(500)}},
	})
	require.NoError(t, err)

	const payers = 20
	var wg sync.WaitGroup
	for i := 0; i < payers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddPayment(ctx, o.ID.String(), service.PaymentRequest{Amount: decimal.NewFromInt(10)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := svc.GetOrder(ctx, o.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "200", stored.TotalPaid.String())
	assert.Equal(t, "300", stored.BalanceAmount.String())
	assert.Equal(t, model.PaymentStatusPartial, stored.PaymentStatus)
}

func TestItemCreateManySkipsExisting(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	items := repository.NewItemRepository(db)

	stamp := time.Now().UnixNano()
	existing := fmt.Sprintf("It Existing %d", stamp)
	fresh := fmt.Sprintf("It Fresh %d", stamp)
	t.Cleanup(func() {
		db.Where("name IN ?", []string{existing, fresh}).Delete(&model.Item{})
	})

	require.NoError(t, items.Create(ctx, &model.Item{ItemNo: fmt.Sprintf("ITEMA%d", stamp), Name: existing}))
	err := items.Create(ctx, &model.Item{ItemNo: fmt.Sprintf("ITEMB%d", stamp), Name: existing})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	created, err := items.CreateMany(ctx, []model.Item{
		{ItemNo: fmt.Sprintf("ITEMC%d", stamp), Name: existing},
		{ItemNo: fmt.Sprintf("ITEMD%d", stamp), Name: fresh},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, fresh, created[0].Name)
}

func TestNestedTransactionRollsBackWithOuter(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	customers := repository.NewCustomerRepository(db)
	txm := repository.NewTransactionManager(db)

	uniqueID := fmt.Sprintf("IT-TX-%d", time.Now().UnixNano())
	cleanupCustomers(t, db, uniqueID)

	rollback := errors.New("abort")
	err := txm.RunInTx(ctx, func(outer context.Context) error {
		assert.True(t, repository.InTx(outer))
		return txm.RunInTx(outer, func(inner context.Context) error {
			if err := customers.Create(inner, &model.Customer{UniqueID: uniqueID, FullName: "Nested", Phone: model.PhoneNotProvided}); err != nil {
				return err
			}
			return rollback
		})
	})
	assert.ErrorIs(t, err, rollback)

	_, err = customers.FindByUniqueID(ctx, uniqueID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
