// Package ledger derives the financial fields of orders and aggregates them
// per customer. Every function here is pure; persistence paths call
// Recalculate on create, update, read and payment so stored values never
// drift from the item list.
package ledger

import (
	"errors"

	"github.com/projectblurimedia/Veggie-Tracker/internal/model"

	"github.com/shopspring/decimal"
)

// ErrInvalidPaymentAmount is returned by ApplyPayment for amounts <= 0.
var ErrInvalidPaymentAmount = errors.New("valid payment amount required")

// Totals holds the derived fields of an order
type Totals struct {
	TotalAmount   decimal.Decimal
	BalanceAmount decimal.Decimal
	PaymentStatus string
}

// ComputeTotals sums item amounts and derives balance and status.
// Quantity is carried for display only and does not multiply into the total.
// The balance is not clamped: a negative balance is customer credit.
func ComputeTotals(items []model.OrderItem, totalPaid decimal.Decimal) Totals {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return Totals{
		TotalAmount:   total,
		BalanceAmount: total.Sub(totalPaid),
		PaymentStatus: PaymentStatus(total, totalPaid),
	}
}

// PaymentStatus maps (total, paid) to one of the order payment states.
func PaymentStatus(totalAmount, totalPaid decimal.Decimal) string {
	balance := totalAmount.Sub(totalPaid)
	switch {
	case totalPaid.IsZero():
		return model.PaymentStatusPending
	case balance.IsNegative():
		return model.PaymentStatusOverpaid
	case balance.IsZero():
		return model.PaymentStatusPaid
	default:
		return model.PaymentStatusPartial
	}
}

// Recalculate overwrites the derived fields of order from its items and TotalPaid.
func Recalculate(order *model.Order) {
	t := ComputeTotals(order.Items, order.TotalPaid)
	order.TotalAmount = t.TotalAmount
	order.BalanceAmount = t.BalanceAmount
	order.PaymentStatus = t.PaymentStatus
}

// ApplyPayment adds amount to the order's cumulative payment and returns the
// re-derived order. Overpayment is allowed and yields the overpaid status.
// The input order is left untouched on error.
func ApplyPayment(order model.Order, amount decimal.Decimal) (model.Order, error) {
	if !amount.IsPositive() {
		return order, ErrInvalidPaymentAmount
	}
	order.TotalPaid = order.TotalPaid.Add(amount)
	Recalculate(&order)
	return order, nil
}

// ExpenseTotal is the total price of an owner record.
func ExpenseTotal(items []model.ExpenseItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}
