package ledger

import (
	"testing"

	"github.com/projectblurimedia/Veggie-Tracker/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func items(amounts ...string) []model.OrderItem {
	out := make([]model.OrderItem, 0, len(amounts))
	for i, a := range amounts {
		out = append(out, model.OrderItem{Name: "item", Quantity: decimal.NewFromInt(int64(i + 3)), Amount: d(a)})
	}
	return out
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s", want, got)
}

func TestComputeTotals_QuantityDoesNotMultiply(t *testing.T) {
	lines := []model.OrderItem{
		{Name: "Tomato", Quantity: d("12"), Amount: d("100")},
		{Name: "Onion", Quantity: d("0.5"), Amount: d("50")},
	}

	totals := ComputeTotals(lines, decimal.Zero)

	assertDecimal(t, "150", totals.TotalAmount)
	assertDecimal(t, "150", totals.BalanceAmount)
	assert.Equal(t, model.PaymentStatusPending, totals.PaymentStatus)
}

func TestComputeTotals_StatusTable(t *testing.T) {
	cases := []struct {
		name    string
		total   string
		paid    string
		balance string
		status  string
	}{
		{"nothing paid", "150", "0", "150", model.PaymentStatusPending},
		{"partly paid", "150", "60", "90", model.PaymentStatusPartial},
		{"fully paid", "150", "150", "0", model.PaymentStatusPaid},
		{"overpaid", "150", "160", "-10", model.PaymentStatusOverpaid},
		{"empty order", "0", "0", "0", model.PaymentStatusPending},
		{"credit on empty order", "0", "20", "-20", model.PaymentStatusOverpaid},
		{"cents", "10.10", "10.05", "0.05", model.PaymentStatusPartial},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			totals := ComputeTotals(items(tc.total), d(tc.paid))
			assertDecimal(t, tc.total, totals.TotalAmount)
			assertDecimal(t, tc.balance, totals.BalanceAmount)
			assert.Equal(t, tc.status, totals.PaymentStatus)
		})
	}
}

func TestRecalculate_Idempotent(t *testing.T) {
	order := model.Order{Items: items("19.99", "0.01", "5"), TotalPaid: d("7.5")}

	Recalculate(&order)
	first := order
	Recalculate(&order)

	assert.True(t, first.TotalAmount.Equal(order.TotalAmount))
	assert.True(t, first.BalanceAmount.Equal(order.BalanceAmount))
	assert.Equal(t, first.PaymentStatus, order.PaymentStatus)
	assertDecimal(t, "25", order.TotalAmount)
	assertDecimal(t, "17.5", order.BalanceAmount)
}

func TestRecalculate_IgnoresClientSuppliedDerivedFields(t *testing.T) {
	order := model.Order{
		Items:         items("40"),
		TotalAmount:   d("9999"),
		BalanceAmount: d("-3"),
		PaymentStatus: model.PaymentStatusPaid,
	}

	Recalculate(&order)

	assertDecimal(t, "40", order.TotalAmount)
	assertDecimal(t, "40", order.BalanceAmount)
	assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
}

func TestApplyPayment_Scenario(t *testing.T) {
	order := model.Order{Items: items("100", "50")}
	Recalculate(&order)
	assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)

	order, err := ApplyPayment(order, d("60"))
	require.NoError(t, err)
	assertDecimal(t, "60", order.TotalPaid)
	assertDecimal(t, "90", order.BalanceAmount)
	assert.Equal(t, model.PaymentStatusPartial, order.PaymentStatus)

	order, err = ApplyPayment(order, d("90"))
	require.NoError(t, err)
	assertDecimal(t, "150", order.TotalPaid)
	assertDecimal(t, "0", order.BalanceAmount)
	assert.Equal(t, model.PaymentStatusPaid, order.PaymentStatus)

	order, err = ApplyPayment(order, d("10"))
	require.NoError(t, err)
	assertDecimal(t, "160", order.TotalPaid)
	assertDecimal(t, "-10", order.BalanceAmount)
	assert.Equal(t, model.PaymentStatusOverpaid, order.PaymentStatus)
}

func TestApplyPayment_Cumulative(t *testing.T) {
	base := model.Order{Items: items("80", "20.5")}
	Recalculate(&base)

	split, err := ApplyPayment(base, d("30.25"))
	require.NoError(t, err)
	split, err = ApplyPayment(split, d("45"))
	require.NoError(t, err)

	once, err := ApplyPayment(base, d("75.25"))
	require.NoError(t, err)

	assert.True(t, split.TotalPaid.Equal(once.TotalPaid))
	assert.True(t, split.BalanceAmount.Equal(once.BalanceAmount))
	assert.Equal(t, once.PaymentStatus, split.PaymentStatus)
}

func TestApplyPayment_RejectsNonPositive(t *testing.T) {
	order := model.Order{Items: items("100"), TotalPaid: d("10")}
	Recalculate(&order)

	for _, amount := range []string{"0", "-5", "-0.01"} {
		got, err := ApplyPayment(order, d(amount))
		require.ErrorIs(t, err, ErrInvalidPaymentAmount)
		assertDecimal(t, "10", got.TotalPaid)
		assertDecimal(t, "90", got.BalanceAmount)
		assert.Equal(t, model.PaymentStatusPartial, got.PaymentStatus)
	}
	assertDecimal(t, "10", order.TotalPaid)
}

func TestExpenseTotal(t *testing.T) {
	lines := []model.ExpenseItem{
		{Name: "Crates", Quantity: d("4"), Amount: d("120")},
		{Name: "Transport", Quantity: d("1"), Amount: d("35.50")},
	}
	assertDecimal(t, "155.5", ExpenseTotal(lines))
	assertDecimal(t, "0", ExpenseTotal(nil))
}
