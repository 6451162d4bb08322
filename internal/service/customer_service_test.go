package service

import (
	"context"
	"strings"
	"testing"

	"github.com/projectblurimedia/Veggie-Tracker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomer(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c, err := f.customers.CreateCustomer(ctx, CreateCustomerRequest{UniqueID: " C001 ", FullName: "  Ramesh  "})
	require.NoError(t, err)
	assert.Equal(t, "C001", c.UniqueID)
	assert.Equal(t, "Ramesh", c.FullName)
	assert.Equal(t, model.PhoneNotProvided, c.Phone)

	// several customers may lack a phone number
	_, err = f.customers.CreateCustomer(ctx, CreateCustomerRequest{UniqueID: "C002", FullName: "Suresh"})
	require.NoError(t, err)
}

func TestCreateCustomerRejects(t *testing.T) {
	f := newFixture()
	f.customer(t, "C001", "Ramesh", "9876543210")
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateCustomerRequest
		kind error
	}{
		{"missing unique id", CreateCustomerRequest{FullName: "Suresh"}, ErrValidation},
		{"missing name", CreateCustomerRequest{UniqueID: "C002"}, ErrValidation},
		{"long name", CreateCustomerRequest{UniqueID: "C002", FullName: strings.Repeat("a", 101)}, ErrValidation},
		{"duplicate unique id", CreateCustomerRequest{UniqueID: "C001", FullName: "Suresh"}, ErrConflict},
		{"duplicate phone", CreateCustomerRequest{UniqueID: "C002", FullName: "Suresh", Phone: "9876543210"}, ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.customers.CreateCustomer(ctx, tt.req)
			assertKind(t, tt.kind, err)
		})
	}
}

func TestListCustomersWithSummaryAndStats(t *testing.T) {
	f := newFixture()
	paid := f.customer(t, "C001", "Ramesh", "")
	partial := f.customer(t, "C002", "Suresh", "")
	f.customer(t, "C003", "Mahesh", "")
	f.order(t, paid, "2024-06-01", "100", "100")
	f.order(t, partial, "2024-06-01", "50", "100")
	f.order(t, partial, "2024-06-02", "0", "200")

	res, err := f.customers.ListCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Customers, 3)

	byID := make(map[string]string)
	for _, c := range res.Customers {
		byID[c.UniqueID] = c.PaymentSummary
	}
	assert.Equal(t, model.CustomerSummaryPaid, byID["C001"])
	assert.Equal(t, model.CustomerSummaryPartial, byID["C002"])
	assert.Equal(t, model.CustomerSummaryNoOrders, byID["C003"])

	assert.Equal(t, int64(3), res.Stats.TotalCustomers)
	assert.Equal(t, int64(3), res.Stats.TotalOrders)
	assertDecimal(t, "400", res.Stats.TotalRevenue)
	assertDecimal(t, "150", res.Stats.TotalPaid)
	assertDecimal(t, "250", res.Stats.TotalOutstanding)
}

func TestListCustomersByStatus(t *testing.T) {
	f := newFixture()
	pending := f.customer(t, "C001", "Ramesh", "")
	f.customer(t, "C002", "Suresh", "")
	f.order(t, pending, "2024-06-01", "0", "100")
	ctx := context.Background()

	res, err := f.customers.ListCustomersByStatus(ctx, model.CustomerSummaryPending)
	require.NoError(t, err)
	require.Len(t, res.Customers, 1)
	assert.Equal(t, "C001", res.Customers[0].UniqueID)
	assert.Equal(t, int64(1), res.Stats.TotalCustomers)

	res, err = f.customers.ListCustomersByStatus(ctx, model.CustomerSummaryNoOrders)
	require.NoError(t, err)
	require.Len(t, res.Customers, 1)
	assert.Equal(t, "C002", res.Customers[0].UniqueID)

	_, err = f.customers.ListCustomersByStatus(ctx, "overpaid")
	assertKind(t, ErrValidation, err)
}

func TestSearchCustomers(t *testing.T) {
	f := newFixture()
	f.customer(t, "C001", "Ramesh Kumar", "9876543210")
	f.customer(t, "C002", "Suresh", "9123456789")
	ctx := context.Background()

	byName, err := f.customers.SearchCustomers(ctx, "kumar")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "C001", byName[0].UniqueID)

	byPhone, err := f.customers.SearchCustomers(ctx, "91234")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "C002", byPhone[0].UniqueID)

	_, err = f.customers.SearchCustomers(ctx, "  ")
	assertKind(t, ErrValidation, err)
}

func TestGetCustomerIncludesOrdersAndSummary(t *testing.T) {
	f := newFixture()
	c := f.customer(t, "C001", "Ramesh", "")
	f.order(t, c, "2024-06-01", "100", "100")
	f.order(t, c, "2024-06-02", "0", "50")
	ctx := context.Background()

	res, err := f.customers.GetCustomer(ctx, c.ID.String())
	require.NoError(t, err)

	assert.Equal(t, "Ramesh", res.FullName)
	assert.Equal(t, int64(2), res.TotalOrders)
	assertDecimal(t, "150", res.TotalRevenue)
	assertDecimal(t, "50", res.OutstandingBalance)
	assert.Equal(t, model.CustomerSummaryPartial, res.PaymentSummary)
	require.Len(t, res.Orders, 2)
	assertDecimal(t, "50", res.Orders[0].TotalAmount)

	orders, err := f.customers.ListCustomerOrders(ctx, c.ID.String())
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	_, err = f.customers.GetCustomer(ctx, "3b241101-e2bb-4255-8caf-4136c566a962")
	assertKind(t, ErrNotFound, err)
}

func TestUpdateCustomer(t *testing.T) {
	f := newFixture()
	c := f.customer(t, "C001", "Ramesh", "9876543210")
	f.customer(t, "C002", "Suresh", "9123456789")
	ctx := context.Background()

	name := "Ramesh K"
	samePhone := "9876543210"
	updated, err := f.customers.UpdateCustomer(ctx, c.ID.String(), UpdateCustomerRequest{FullName: &name, Phone: &samePhone})
	require.NoError(t, err)
	assert.Equal(t, "Ramesh K", updated.FullName)

	taken := "9123456789"
	_, err = f.customers.UpdateCustomer(ctx, c.ID.String(), UpdateCustomerRequest{Phone: &taken})
	assertKind(t, ErrConflict, err)

	blank := ""
	updated, err = f.customers.UpdateCustomer(ctx, c.ID.String(), UpdateCustomerRequest{Phone: &blank})
	require.NoError(t, err)
	assert.Equal(t, model.PhoneNotProvided, updated.Phone)
}

func TestDeleteCustomerWithOrdersIsRefused(t *testing.T) {
	f := newFixture()
	c := f.customer(t, "C001", "Ramesh", "")
	o := f.order(t, c, "2024-06-01", "0", "100")
	ctx := context.Background()

	err := f.customers.DeleteCustomer(ctx, c.ID.String())
	assertKind(t, ErrConflict, err)
	assert.Equal(t, "Cannot delete customer with existing orders. Please delete orders first.", err.Error())

	require.NoError(t, f.orders.DeleteOrder(ctx, o.ID.String()))
	require.NoError(t, f.customers.DeleteCustomer(ctx, c.ID.String()))

	_, err = f.customers.GetCustomer(ctx, c.ID.String())
	assertKind(t, ErrNotFound, err)
}
