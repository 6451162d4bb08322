package ledger

import (
	"testing"

	"github.com/projectblurimedia/Veggie-Tracker/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func order(total, paid string) model.Order {
	o := model.Order{Items: items(total), TotalPaid: d(paid)}
	Recalculate(&o)
	return o
}

func TestAggregateCustomer_NoOrders(t *testing.T) {
	s := AggregateCustomer(nil)

	assert.Equal(t, int64(0), s.TotalOrders)
	assertDecimal(t, "0", s.TotalRevenue)
	assertDecimal(t, "0", s.TotalPaid)
	assertDecimal(t, "0", s.OutstandingBalance)
	assert.Equal(t, model.CustomerSummaryNoOrders, s.PaymentSummary)
}

func TestAggregateCustomer_SignedBalances(t *testing.T) {
	// balances +50 and -20
	s := AggregateCustomer([]model.Order{order("100", "50"), order("80", "100")})

	assert.Equal(t, int64(2), s.TotalOrders)
	assertDecimal(t, "180", s.TotalRevenue)
	assertDecimal(t, "150", s.TotalPaid)
	assertDecimal(t, "30", s.OutstandingBalance)
	assert.Equal(t, model.CustomerSummaryPartial, s.PaymentSummary)
}

func TestAggregateCustomer_Buckets(t *testing.T) {
	cases := []struct {
		name   string
		orders []model.Order
		want   string
	}{
		{"nothing paid anywhere", []model.Order{order("100", "0"), order("50", "0")}, model.CustomerSummaryPending},
		{"everything settled", []model.Order{order("100", "100"), order("50", "50")}, model.CustomerSummaryPaid},
		{"credit covers debt", []model.Order{order("100", "40"), order("50", "120")}, model.CustomerSummaryPaid},
		{"some paid", []model.Order{order("100", "0"), order("50", "50")}, model.CustomerSummaryPartial},
		{"zero value orders", []model.Order{order("0", "0")}, model.CustomerSummaryNoOrders},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AggregateCustomer(tc.orders).PaymentSummary)
		})
	}
}

func TestSummaryStatus_MatchesAggregate(t *testing.T) {
	s := AggregateCustomer([]model.Order{order("70", "10"), order("30", "0")})
	assert.Equal(t, s.PaymentSummary, SummaryStatus(s.TotalRevenue, s.OutstandingBalance))
}

func TestValidSummaryStatus(t *testing.T) {
	for _, s := range []string{"paid", "partial", "pending", "no-orders"} {
		assert.True(t, ValidSummaryStatus(s), s)
	}
	assert.False(t, ValidSummaryStatus("overpaid"))
	assert.False(t, ValidSummaryStatus(""))
}

func TestSummarizeCustomers(t *testing.T) {
	summaries := []CustomerSummary{
		AggregateCustomer([]model.Order{order("100", "50"), order("80", "100")}),
		AggregateCustomer(nil),
		AggregateCustomer([]model.Order{order("20.25", "0")}),
	}

	stats := SummarizeCustomers(summaries)

	assert.Equal(t, int64(3), stats.TotalCustomers)
	assert.Equal(t, int64(3), stats.TotalOrders)
	assertDecimal(t, "200.25", stats.TotalRevenue)
	assertDecimal(t, "50.25", stats.TotalOutstanding)
	assertDecimal(t, "150", stats.TotalPaid)
}

func TestSummarizeCustomers_Empty(t *testing.T) {
	stats := SummarizeCustomers(nil)
	assert.Equal(t, int64(0), stats.TotalCustomers)
	assert.True(t, stats.TotalRevenue.Equal(decimal.Zero))
}
