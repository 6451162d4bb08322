package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/projectblurimedia/Veggie-Tracker/internal/cache"
	"github.com/projectblurimedia/Veggie-Tracker/internal/ledger"
	"github.com/projectblurimedia/Veggie-Tracker/internal/model"
	"github.com/projectblurimedia/Veggie-Tracker/internal/repository"
	"github.com/projectblurimedia/Veggie-Tracker/pkg/pagination"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateExpenseRequest struct {
	Date        string        `json:"date"`
	Items       []ItemPayload `json:"items"`
	Description string        `json:"description"`
	RecordType  string        `json:"recordType"`
}

type UpdateExpenseRequest struct {
	Date        *string        `json:"date"`
	Items       *[]ItemPayload `json:"items"`
	Description *string        `json:"description"`
	RecordType  *string        `json:"recordType"`
}

type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	RecordNo    string          `json:"recordNo"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	RecordType  string          `json:"recordType"`
	Items       []ItemResponse  `json:"items"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// --- Interface ---

type ExpenseService interface {
	CreateExpense(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error)
	UpdateExpense(ctx context.Context, id string, req UpdateExpenseRequest) (*ExpenseResponse, error)
	DeleteExpense(ctx context.Context, id string) error
	GetExpense(ctx context.Context, id string) (*ExpenseResponse, error)
	ListExpenses(ctx context.Context, p pagination.Params) ([]ExpenseResponse, int64, error)
	ListExpensesByDateRange(ctx context.Context, startDate, endDate string) ([]ExpenseResponse, error)
	ListExpensesByType(ctx context.Context, recordType string) ([]ExpenseResponse, error)
	ListExpensesByDate(ctx context.Context, date string) ([]ExpenseResponse, error)
	GetDashboard(ctx context.Context) (model.ExpenseDashboard, error)
	GetFinancialSummary(ctx context.Context, startDate, endDate string) (model.FinancialSummary, error)
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	txManager   repository.TransactionManager
	statsCache  cache.StatsCache
	cacheTTL    time.Duration
	now         func() time.Time
}

func NewExpenseService(
	expenseRepo repository.ExpenseRepository,
	txManager repository.TransactionManager,
	statsCache cache.StatsCache,
	cacheTTL time.Duration,
) ExpenseService {
	if statsCache == nil {
		statsCache = cache.NoopStatsCache{}
	}
	return &expenseService{
		expenseRepo: expenseRepo,
		txManager:   txManager,
		statsCache:  statsCache,
		cacheTTL:    cacheTTL,
		now:         time.Now,
	}
}

const maxDescriptionLength = 200

// --- Helpers ---

func toExpenseResponse(e model.Expense) ExpenseResponse {
	items := make([]ItemResponse, 0, len(e.Items))
	for _, it := range e.Items {
		items = append(items, ItemResponse{ID: it.ID, Name: it.Name, Quantity: it.Quantity, Price: it.Amount})
	}
	return ExpenseResponse{
		ID:          e.ID,
		RecordNo:    e.RecordNo,
		Date:        e.Date,
		Description: e.Description,
		RecordType:  e.RecordType,
		Items:       items,
		TotalPrice:  ledger.ExpenseTotal(e.Items),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toExpenseResponses(expenses []model.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	return out
}

func buildExpenseItems(payload []ItemPayload) ([]model.ExpenseItem, error) {
	if len(payload) == 0 {
		return nil, validationError("Record must contain at least one item")
	}
	one := decimal.NewFromInt(1)
	items := make([]model.ExpenseItem, 0, len(payload))
	for i, p := range payload {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, validationError("Item %d: name is required", i+1)
		}
		if p.Quantity.LessThan(one) {
			return nil, validationError("Item %d: quantity must be at least 1", i+1)
		}
		if p.Price.IsNegative() {
			return nil, validationError("Item %d: price cannot be negative", i+1)
		}
		if err := checkQuantity(p.Quantity, fmt.Sprintf("Item %d: quantity", i+1)); err != nil {
			return nil, err
		}
		if err := checkMoney(p.Price, fmt.Sprintf("Item %d: price", i+1)); err != nil {
			return nil, err
		}
		items = append(items, model.ExpenseItem{
			Position: i,
			Name:     name,
			Quantity: p.Quantity,
			Amount:   p.Price,
		})
	}
	if err := checkMoney(ledger.ExpenseTotal(items), "Record total"); err != nil {
		return nil, err
	}
	return items, nil
}

// normalizeRecordType upper-cases t and defaults an empty value to SALE.
func normalizeRecordType(t string) (string, error) {
	t = strings.ToUpper(strings.TrimSpace(t))
	switch t {
	case "":
		return model.RecordTypeSale, nil
	case model.RecordTypeSale, model.RecordTypePurchase, model.RecordTypeExpense, model.RecordTypeIncome:
		return t, nil
	}
	return "", validationError("Invalid record type. Must be one of: SALE, PURCHASE, EXPENSE, INCOME")
}

func validateDescription(d string) (string, error) {
	d = strings.TrimSpace(d)
	if utf8.RuneCountInString(d) > maxDescriptionLength {
		return "", validationError("Description cannot exceed %d characters", maxDescriptionLength)
	}
	return d, nil
}

func (s *expenseService) invalidateDashboard(ctx context.Context) {
	if err := s.statsCache.Invalidate(ctx, cache.KeyExpenseDashboard); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate expense dashboard cache")
	}
}

// --- Implementation ---

func (s *expenseService) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	items, err := buildExpenseItems(req.Items)
	if err != nil {
		return nil, err
	}
	recordType, err := normalizeRecordType(req.RecordType)
	if err != nil {
		return nil, err
	}
	description, err := validateDescription(req.Description)
	if err != nil {
		return nil, err
	}
	now := s.now()
	date, err := dateOr(req.Date, now)
	if err != nil {
		return nil, err
	}

	expense := &model.Expense{
		RecordNo:    newRecordNo("OWNER", now),
		Date:        date,
		Description: description,
		RecordType:  recordType,
		Items:       items,
		TotalPrice:  ledger.ExpenseTotal(items),
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}
	s.invalidateDashboard(ctx)

	res := toExpenseResponse(*expense)
	return &res, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, id string, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	uid, err := parseID(id, "record")
	if err != nil {
		return nil, err
	}

	var updated *model.Expense
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		expense, err := s.expenseRepo.FindByID(txCtx, uid)
		if err != nil {
			return lookupError(err, "Record")
		}

		if req.Date != nil {
			date, _, err := parseDate(*req.Date)
			if err != nil {
				return err
			}
			expense.Date = date
		}
		if req.Description != nil {
			description, err := validateDescription(*req.Description)
			if err != nil {
				return err
			}
			expense.Description = description
		}
		if req.RecordType != nil {
			recordType, err := normalizeRecordType(*req.RecordType)
			if err != nil {
				return err
			}
			expense.RecordType = recordType
		}
		if req.Items != nil {
			items, err := buildExpenseItems(*req.Items)
			if err != nil {
				return err
			}
			if err := s.expenseRepo.ReplaceItems(txCtx, expense.ID, items); err != nil {
				return fmt.Errorf("failed to replace record items: %w", err)
			}
			expense.Items = items
		}

		expense.TotalPrice = ledger.ExpenseTotal(expense.Items)
		if err := s.expenseRepo.Save(txCtx, expense); err != nil {
			return fmt.Errorf("failed to update record: %w", err)
		}
		updated = expense
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateDashboard(ctx)

	res := toExpenseResponse(*updated)
	return &res, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, id string) error {
	uid, err := parseID(id, "record")
	if err != nil {
		return err
	}
	if err := s.expenseRepo.Delete(ctx, uid); err != nil {
		return lookupError(err, "Record")
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *expenseService) GetExpense(ctx context.Context, id string) (*ExpenseResponse, error) {
	uid, err := parseID(id, "record")
	if err != nil {
		return nil, err
	}
	expense, err := s.expenseRepo.FindByID(ctx, uid)
	if err != nil {
		return nil, lookupError(err, "Record")
	}
	res := toExpenseResponse(*expense)
	return &res, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, p pagination.Params) ([]ExpenseResponse, int64, error) {
	expenses, total, err := s.expenseRepo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch records: %w", err)
	}
	return toExpenseResponses(expenses), total, nil
}

func (s *expenseService) find(ctx context.Context, filter repository.ExpenseFilter) ([]ExpenseResponse, error) {
	expenses, err := s.expenseRepo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	return toExpenseResponses(expenses), nil
}

func (s *expenseService) ListExpensesByDateRange(ctx context.Context, startDate, endDate string) ([]ExpenseResponse, error) {
	from, to, err := dateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, repository.ExpenseFilter{From: &from, To: &to})
}

func (s *expenseService) ListExpensesByType(ctx context.Context, recordType string) ([]ExpenseResponse, error) {
	if strings.TrimSpace(recordType) == "" {
		return nil, validationError("Record type is required")
	}
	t, err := normalizeRecordType(recordType)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, repository.ExpenseFilter{RecordType: t})
}

func (s *expenseService) ListExpensesByDate(ctx context.Context, date string) ([]ExpenseResponse, error) {
	day, _, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	from, _ := dayBounds(day)
	to := endOfDay(day)
	return s.find(ctx, repository.ExpenseFilter{From: &from, To: &to})
}

func (s *expenseService) GetDashboard(ctx context.Context) (model.ExpenseDashboard, error) {
	var dashboard model.ExpenseDashboard
	if hit, err := s.statsCache.Get(ctx, cache.KeyExpenseDashboard, &dashboard); err != nil {
		log.Warn().Err(err).Msg("expense dashboard cache read failed")
	} else if hit {
		return dashboard, nil
	}

	dayStart, dayEnd := dayBounds(s.now())
	dashboard, err := s.expenseRepo.Dashboard(ctx, dayStart, dayEnd)
	if err != nil {
		return model.ExpenseDashboard{}, fmt.Errorf("failed to compute record stats: %w", err)
	}
	if err := s.statsCache.Set(ctx, cache.KeyExpenseDashboard, dashboard, s.cacheTTL); err != nil {
		log.Warn().Err(err).Msg("expense dashboard cache write failed")
	}
	return dashboard, nil
}

// GetFinancialSummary covers every record when both bounds are empty.
func (s *expenseService) GetFinancialSummary(ctx context.Context, startDate, endDate string) (model.FinancialSummary, error) {
	if strings.TrimSpace(startDate) == "" && strings.TrimSpace(endDate) == "" {
		summary, err := s.expenseRepo.Summary(ctx, nil, nil)
		if err != nil {
			return model.FinancialSummary{}, fmt.Errorf("failed to compute summary: %w", err)
		}
		return summary, nil
	}

	from, to, err := dateRange(startDate, endDate)
	if err != nil {
		return model.FinancialSummary{}, err
	}
	summary, err := s.expenseRepo.Summary(ctx, &from, &to)
	if err != nil {
		return model.FinancialSummary{}, fmt.Errorf("failed to compute summary: %w", err)
	}
	return summary, nil
}
