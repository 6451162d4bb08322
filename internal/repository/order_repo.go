package repository

import (
	"context"
	"time"

	"github.com/projectblurimedia/Veggie-Tracker/internal/model"
	"github.com/projectblurimedia/Veggie-Tracker/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderFilter narrows Find. Zero values match everything; the date bounds are inclusive.
type OrderFilter struct {
	CustomerUniqueID string
	From             *time.Time
	To               *time.Time
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	Save(ctx context.Context, order *model.Order) error
	ReplaceItems(ctx context.Context, orderID uuid.UUID, items []model.OrderItem) error
	UpdatePayment(ctx context.Context, order *model.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, p pagination.Params) ([]model.Order, int64, error)
	Find(ctx context.Context, filter OrderFilter) ([]model.Order, error)
	CountByCustomer(ctx context.Context, customerUniqueID string) (int64, error)
	Dashboard(ctx context.Context, dayStart, dayEnd time.Time) (model.OrderDashboard, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func preloadOrderItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return translate(GetDB(ctx, r.db).Create(order).Error)
}

// Save writes the order columns only; items are replaced through ReplaceItems.
func (r *orderRepository) Save(ctx context.Context, order *model.Order) error {
	return translate(GetDB(ctx, r.db).Omit(clause.Associations).Save(order).Error)
}

func (r *orderRepository) ReplaceItems(ctx context.Context, orderID uuid.UUID, items []model.OrderItem) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("order_id = ?", orderID).Delete(&model.OrderItem{}).Error; err != nil {
		return translate(err)
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	return translate(db.Create(&items).Error)
}

func (r *orderRepository) UpdatePayment(ctx context.Context, order *model.Order) error {
	res := GetDB(ctx, r.db).Model(&model.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
		"total_paid":     order.TotalPaid,
		"total_amount":   order.TotalAmount,
		"balance_amount": order.BalanceAmount,
		"payment_status": order.PaymentStatus,
		"updated_at":     time.Now(),
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := GetDB(ctx, r.db).Select(clause.Associations).Delete(&model.Order{ID: id})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := GetDB(ctx, r.db).Preload("Items", preloadOrderItems).First(&order, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// FindByIDForUpdate locks the order row until the surrounding transaction ends.
func (r *orderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	if err := GetDB(ctx, r.db).Where("order_id = ?", id).Order("position ASC").Find(&order.Items).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, p pagination.Params) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Order{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	if err := db.
		Preload("Items", preloadOrderItems).
		Order("date DESC").Order("created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&orders).Error; err != nil {
		return nil, 0, translate(err)
	}

	return orders, total, nil
}

func (r *orderRepository) Find(ctx context.Context, filter OrderFilter) ([]model.Order, error) {
	query := GetDB(ctx, r.db).Preload("Items", preloadOrderItems)
	if filter.CustomerUniqueID != "" {
		query = query.Where("customer_unique_id = ?", filter.CustomerUniqueID)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}

	var orders []model.Order
	if err := query.Order("date DESC").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, translate(err)
	}
	return orders, nil
}

func (r *orderRepository) CountByCustomer(ctx context.Context, customerUniqueID string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Order{}).Where("customer_unique_id = ?", customerUniqueID).Count(&count).Error
	return count, translate(err)
}

func (r *orderRepository) Dashboard(ctx context.Context, dayStart, dayEnd time.Time) (model.OrderDashboard, error) {
	var overall struct {
		Count       int64
		Revenue     decimal.Decimal
		Paid        decimal.Decimal
		Outstanding decimal.Decimal
	}
	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Order{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue, COALESCE(SUM(total_paid), 0) AS paid, COALESCE(SUM(balance_amount), 0) AS outstanding").
		Scan(&overall).Error; err != nil {
		return model.OrderDashboard{}, translate(err)
	}

	var today struct {
		Count   int64
		Revenue decimal.Decimal
	}
	if err := db.Model(&model.Order{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Scan(&today).Error; err != nil {
		return model.OrderDashboard{}, translate(err)
	}

	return model.OrderDashboard{
		TotalOrders:      overall.Count,
		TotalRevenue:     overall.Revenue,
		TotalPaid:        overall.Paid,
		TotalOutstanding: overall.Outstanding,
		TodayOrders:      today.Count,
		TodayRevenue:     today.Revenue,
	}, nil
}
