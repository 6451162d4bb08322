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

// ExpenseFilter narrows Find. Zero values match everything; the date bounds are inclusive.
type ExpenseFilter struct {
	RecordType string
	From       *time.Time
	To         *time.Time
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	Save(ctx context.Context, expense *model.Expense) error
	ReplaceItems(ctx context.Context, expenseID uuid.UUID, items []model.ExpenseItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Expense, error)
	List(ctx context.Context, p pagination.Params) ([]model.Expense, int64, error)
	Find(ctx context.Context, filter ExpenseFilter) ([]model.Expense, error)
	Dashboard(ctx context.Context, dayStart, dayEnd time.Time) (model.ExpenseDashboard, error)
	Summary(ctx context.Context, from, to *time.Time) (model.FinancialSummary, error)
}

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func preloadExpenseItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *expenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return translate(GetDB(ctx, r.db).Create(expense).Error)
}

func (r *expenseRepository) Save(ctx context.Context, expense *model.Expense) error {
	return translate(GetDB(ctx, r.db).Omit(clause.Associations).Save(expense).Error)
}

func (r *expenseRepository) ReplaceItems(ctx context.Context, expenseID uuid.UUID, items []model.ExpenseItem) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("expense_id = ?", expenseID).Delete(&model.ExpenseItem{}).Error; err != nil {
		return translate(err)
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ExpenseID = expenseID
	}
	return translate(db.Create(&items).Error)
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := GetDB(ctx, r.db).Select(clause.Associations).Delete(&model.Expense{ID: id})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *expenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	if err := GetDB(ctx, r.db).Preload("Items", preloadExpenseItems).First(&expense, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &expense, nil
}

func (r *expenseRepository) List(ctx context.Context, p pagination.Params) ([]model.Expense, int64, error) {
	var expenses []model.Expense
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Expense{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	if err := db.Preload("Items", preloadExpenseItems).
		Order("date desc").Order("created_at desc").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&expenses).Error; err != nil {
		return nil, 0, translate(err)
	}

	return expenses, total, nil
}

func (r *expenseRepository) Find(ctx context.Context, filter ExpenseFilter) ([]model.Expense, error) {
	query := GetDB(ctx, r.db).Preload("Items", preloadExpenseItems)
	query = applyExpenseFilter(query, filter)

	var expenses []model.Expense
	if err := query.Order("date desc").Order("created_at desc").Find(&expenses).Error; err != nil {
		return nil, translate(err)
	}
	return expenses, nil
}

func applyExpenseFilter(query *gorm.DB, filter ExpenseFilter) *gorm.DB {
	if filter.RecordType != "" {
		query = query.Where("record_type = ?", filter.RecordType)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	return query
}

func (r *expenseRepository) byType(ctx context.Context, filter ExpenseFilter) ([]model.RecordTypeTotal, error) {
	var totals []model.RecordTypeTotal
	query := applyExpenseFilter(GetDB(ctx, r.db).Model(&model.Expense{}), filter)
	if err := query.
		Select("record_type, COUNT(*) AS record_count, COALESCE(SUM(total_price), 0) AS total_amount, COALESCE(AVG(total_price), 0) AS average_amount").
		Group("record_type").
		Order("record_type").
		Scan(&totals).Error; err != nil {
		return nil, translate(err)
	}
	return totals, nil
}

type expenseTotals struct {
	Count int64
	Total decimal.Decimal
}

func (r *expenseRepository) totals(ctx context.Context, filter ExpenseFilter) (expenseTotals, error) {
	var t expenseTotals
	query := applyExpenseFilter(GetDB(ctx, r.db).Model(&model.Expense{}), filter)
	err := query.Select("COUNT(*) AS count, COALESCE(SUM(total_price), 0) AS total").Scan(&t).Error
	return t, translate(err)
}

func (r *expenseRepository) Dashboard(ctx context.Context, dayStart, dayEnd time.Time) (model.ExpenseDashboard, error) {
	overall, err := r.totals(ctx, ExpenseFilter{})
	if err != nil {
		return model.ExpenseDashboard{}, err
	}

	// dayEnd is exclusive
	end := dayEnd.Add(-time.Nanosecond)
	today, err := r.totals(ctx, ExpenseFilter{From: &dayStart, To: &end})
	if err != nil {
		return model.ExpenseDashboard{}, err
	}

	byType, err := r.byType(ctx, ExpenseFilter{})
	if err != nil {
		return model.ExpenseDashboard{}, err
	}

	return model.ExpenseDashboard{
		TotalRecords:  overall.Count,
		TotalAmount:   overall.Total,
		TodayRecords:  today.Count,
		TodayAmount:   today.Total,
		RecordsByType: byType,
	}, nil
}

func (r *expenseRepository) Summary(ctx context.Context, from, to *time.Time) (model.FinancialSummary, error) {
	filter := ExpenseFilter{From: from, To: to}

	var summary model.FinancialSummary
	byType, err := r.byType(ctx, filter)
	if err != nil {
		return summary, err
	}
	overall, err := r.totals(ctx, filter)
	if err != nil {
		return summary, err
	}

	summary.ByType = byType
	summary.Overall.GrandTotal = overall.Total
	summary.Overall.TotalRecords = overall.Count
	return summary, nil
}
