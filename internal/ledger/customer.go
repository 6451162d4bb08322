package ledger

import (
	"github.com/projectblurimedia/Veggie-Tracker/internal/model"

	"github.com/shopspring/decimal"
)

// CustomerSummary aggregates the orders of one customer
type CustomerSummary struct {
	TotalOrders        int64           `json:"totalOrders"`
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	TotalPaid          decimal.Decimal `json:"totalPaid"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	PaymentSummary     string          `json:"paymentSummary"`
}

// AggregateCustomer sums the stored derived fields of orders. The outstanding
// balance is the signed sum of order balances: credit on one order offsets
// debt on another. The SQL aggregate in the customer repository implements
// the same contract and must return identical values.
func AggregateCustomer(orders []model.Order) CustomerSummary {
	s := CustomerSummary{
		TotalOrders:        int64(len(orders)),
		TotalRevenue:       decimal.Zero,
		TotalPaid:          decimal.Zero,
		OutstandingBalance: decimal.Zero,
	}
	for _, o := range orders {
		s.TotalRevenue = s.TotalRevenue.Add(o.TotalAmount)
		s.TotalPaid = s.TotalPaid.Add(o.TotalPaid)
		s.OutstandingBalance = s.OutstandingBalance.Add(o.BalanceAmount)
	}
	s.PaymentSummary = SummaryStatus(s.TotalRevenue, s.OutstandingBalance)
	return s
}

// SummaryStatus buckets a customer by aggregate revenue and outstanding balance.
func SummaryStatus(totalRevenue, outstanding decimal.Decimal) string {
	switch {
	case totalRevenue.IsZero():
		return model.CustomerSummaryNoOrders
	case !outstanding.IsPositive():
		return model.CustomerSummaryPaid
	case outstanding.Equal(totalRevenue):
		return model.CustomerSummaryPending
	default:
		return model.CustomerSummaryPartial
	}
}

// ValidSummaryStatus reports whether s is one of the customer summary buckets.
func ValidSummaryStatus(s string) bool {
	switch s {
	case model.CustomerSummaryNoOrders, model.CustomerSummaryPaid,
		model.CustomerSummaryPartial, model.CustomerSummaryPending:
		return true
	}
	return false
}

// CustomerStats are the list-level totals over a set of customers
type CustomerStats struct {
	TotalCustomers   int64           `json:"totalCustomers"`
	TotalOrders      int64           `json:"totalOrders"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
}

// SummarizeCustomers folds per-customer summaries into list stats.
func SummarizeCustomers(summaries []CustomerSummary) CustomerStats {
	stats := CustomerStats{
		TotalCustomers:   int64(len(summaries)),
		TotalRevenue:     decimal.Zero,
		TotalOutstanding: decimal.Zero,
		TotalPaid:        decimal.Zero,
	}
	for _, s := range summaries {
		stats.TotalOrders += s.TotalOrders
		stats.TotalRevenue = stats.TotalRevenue.Add(s.TotalRevenue)
		stats.TotalOutstanding = stats.TotalOutstanding.Add(s.OutstandingBalance)
		stats.TotalPaid = stats.TotalPaid.Add(s.TotalPaid)
	}
	return stats
}
