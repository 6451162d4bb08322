package repository

import (
	"context"
	"time"

	"github.com/projectblurimedia/Veggie-Tracker/internal/ledger"
	"github.com/projectblurimedia/Veggie-Tracker/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomerWithSummary is a customer joined with the aggregate of its orders
type CustomerWithSummary struct {
	model.Customer
	ledger.CustomerSummary
}

// CustomerFilter narrows ListWithSummary. Empty fields match everything.
type CustomerFilter struct {
	Search         string // case-insensitive name match or phone substring
	PaymentSummary string // one of the model.CustomerSummary* buckets
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	FindByUniqueID(ctx context.Context, uniqueID string) (*model.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*model.Customer, error)
	ListWithSummary(ctx context.Context, filter CustomerFilter) ([]CustomerWithSummary, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return translate(GetDB(ctx, r.db).Create(customer).Error)
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) error {
	return translate(GetDB(ctx, r.db).Save(customer).Error)
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Customer{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := GetDB(ctx, r.db).First(&customer, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

func (r *customerRepository) FindByUniqueID(ctx context.Context, uniqueID string) (*model.Customer, error) {
	var customer model.Customer
	if err := GetDB(ctx, r.db).First(&customer, "unique_id = ?", uniqueID).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

func (r *customerRepository) FindByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	var customer model.Customer
	if err := GetDB(ctx, r.db).First(&customer, "phone = ?", phone).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

// customerSummaryRow is the flat scan target of the summary query
type customerSummaryRow struct {
	ID                 uuid.UUID
	UniqueID           string
	FullName           string
	Phone              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	TotalOrders        int64
	TotalRevenue       decimal.Decimal
	TotalPaid          decimal.Decimal
	OutstandingBalance decimal.Decimal
	PaymentSummary     string
}

// customerSummarySQL mirrors ledger.AggregateCustomer: signed balance sum and
// the same bucket thresholds. numeric arithmetic keeps both paths exact.
const customerSummarySQL = `
WITH totals AS (
	SELECT c.id, c.unique_id, c.full_name, c.phone, c.created_at, c.updated_at,
		COUNT(o.id) AS total_orders,
		COALESCE(SUM(o.total_amount), 0) AS total_revenue,
		COALESCE(SUM(o.total_paid), 0) AS total_paid,
		COALESCE(SUM(o.balance_amount), 0) AS outstanding_balance
	FROM customers c
	LEFT JOIN orders o ON o.customer_unique_id = c.unique_id
	GROUP BY c.id
)
SELECT *, CASE
		WHEN total_revenue = 0 THEN 'no-orders'
		WHEN outstanding_balance <= 0 THEN 'paid'
		WHEN outstanding_balance = total_revenue THEN 'pending'
		ELSE 'partial'
	END AS payment_summary
FROM totals`

func (r *customerRepository) ListWithSummary(ctx context.Context, filter CustomerFilter) ([]CustomerWithSummary, error) {
	query := GetDB(ctx, r.db).Table("(?) AS s", gorm.Expr(customerSummarySQL))
	if filter.Search != "" {
		query = query.Where("s.full_name ILIKE ? OR s.phone LIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if filter.PaymentSummary != "" {
		query = query.Where("s.payment_summary = ?", filter.PaymentSummary)
	}

	var rows []customerSummaryRow
	if err := query.Order("s.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, translate(err)
	}

	out := make([]CustomerWithSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, CustomerWithSummary{
			Customer: model.Customer{
				ID:        row.ID,
				UniqueID:  row.UniqueID,
				FullName:  row.FullName,
				Phone:     row.Phone,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			CustomerSummary: ledger.CustomerSummary{
				TotalOrders:        row.TotalOrders,
				TotalRevenue:       row.TotalRevenue,
				TotalPaid:          row.TotalPaid,
				OutstandingBalance: row.OutstandingBalance,
				PaymentSummary:     row.PaymentSummary,
			},
		})
	}
	return out, nil
}
