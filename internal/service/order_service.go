package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

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

// CustomerDetails identifies the customer an order belongs to. Either the
// customer ID or the unique ID is enough; name and phone are ignored in
// favour of the stored customer.
type CustomerDetails struct {
	ID       string `json:"_id"`
	UniqueID string `json:"uniqueId"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

type CreateOrderRequest struct {
	CustomerDetails CustomerDetails  `json:"customerDetails"`
	Date            string           `json:"date"`
	Items           []ItemPayload    `json:"items"`
	TotalPaid       *decimal.Decimal `json:"totalPaid"`
}

// UpdateOrderRequest replaces whatever fields are present. Items, when
// given, replace the whole item list.
type UpdateOrderRequest struct {
	CustomerDetails *CustomerDetails `json:"customerDetails"`
	Date            *string          `json:"date"`
	Items           *[]ItemPayload   `json:"items"`
	TotalPaid       *decimal.Decimal `json:"totalPaid"`
}

type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type OrderResponse struct {
	ID              uuid.UUID       `json:"id"`
	OrderNo         string          `json:"orderNo"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
	Date            time.Time       `json:"date"`
	Items           []ItemResponse  `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	BalanceAmount   decimal.Decimal `json:"balanceAmount"`
	PaymentStatus   string          `json:"paymentStatus"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// --- Interface ---

type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error)
	UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*OrderResponse, error)
	AddPayment(ctx context.Context, id string, req PaymentRequest) (*OrderResponse, error)
	DeleteOrder(ctx context.Context, id string) error
	GetOrder(ctx context.Context, id string) (*OrderResponse, error)
	ListOrders(ctx context.Context, p pagination.Params) ([]OrderResponse, int64, error)
	ListOrdersByDateRange(ctx context.Context, startDate, endDate string) ([]OrderResponse, error)
	ListOrdersByCustomer(ctx context.Context, customerUniqueID string) ([]OrderResponse, error)
	ListOrdersByCustomerAndDate(ctx context.Context, customerUniqueID, date string) ([]OrderResponse, error)
	GetDashboard(ctx context.Context) (model.OrderDashboard, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	txManager    repository.TransactionManager
	statsCache   cache.StatsCache
	cacheTTL     time.Duration
	now          func() time.Time
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	txManager repository.TransactionManager,
	statsCache cache.StatsCache,
	cacheTTL time.Duration,
) OrderService {
	if statsCache == nil {
		statsCache = cache.NoopStatsCache{}
	}
	return &orderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		txManager:    txManager,
		statsCache:   statsCache,
		cacheTTL:     cacheTTL,
		now:          time.Now,
	}
}

// --- Helpers ---

func toOrderResponse(o model.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemResponse{ID: it.ID, Name: it.Name, Quantity: it.Quantity, Price: it.Amount})
	}
	return OrderResponse{
		ID:      o.ID,
		OrderNo: o.OrderNo,
		CustomerDetails: CustomerDetails{
			ID:       o.CustomerID.String(),
			UniqueID: o.CustomerUniqueID,
			FullName: o.CustomerName,
			Phone:    o.CustomerPhone,
		},
		Date:          o.Date,
		Items:         items,
		TotalAmount:   o.TotalAmount,
		TotalPaid:     o.TotalPaid,
		BalanceAmount: o.BalanceAmount,
		PaymentStatus: o.PaymentStatus,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// toOrderResponses re-derives the totals of every order before mapping it.
func toOrderResponses(orders []model.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		ledger.Recalculate(&orders[i])
		out = append(out, toOrderResponse(orders[i]))
	}
	return out
}

func buildOrderItems(payload []ItemPayload) ([]model.OrderItem, error) {
	if len(payload) == 0 {
		return nil, validationError("Order must contain at least one item")
	}
	items := make([]model.OrderItem, 0, len(payload))
	for i, p := range payload {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, validationError("Item %d: name is required", i+1)
		}
		if !p.Quantity.IsPositive() {
			return nil, validationError("Item %d: quantity must be greater than 0", i+1)
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
		items = append(items, model.OrderItem{
			Position: i,
			Name:     name,
			Quantity: p.Quantity,
			Amount:   p.Price,
		})
	}
	return items, nil
}

func (s *orderService) resolveCustomer(ctx context.Context, details CustomerDetails) (*model.Customer, error) {
	if id := strings.TrimSpace(details.ID); id != "" {
		uid, err := parseID(id, "customer")
		if err != nil {
			return nil, err
		}
		customer, err := s.customerRepo.FindByID(ctx, uid)
		if err != nil {
			return nil, lookupError(err, "Customer")
		}
		return customer, nil
	}
	if uniqueID := strings.TrimSpace(details.UniqueID); uniqueID != "" {
		customer, err := s.customerRepo.FindByUniqueID(ctx, uniqueID)
		if err != nil {
			return nil, lookupError(err, "Customer")
		}
		return customer, nil
	}
	return nil, validationError("Customer details are required")
}

func (s *orderService) invalidateDashboard(ctx context.Context) {
	if err := s.statsCache.Invalidate(ctx, cache.KeyOrderDashboard); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate order dashboard cache")
	}
}

func (s *orderService) findOrder(ctx context.Context, id string) (*model.Order, error) {
	uid, err := parseID(id, "order")
	if err != nil {
		return nil, err
	}
	order, err := s.orderRepo.FindByID(ctx, uid)
	if err != nil {
		return nil, lookupError(err, "Order")
	}
	return order, nil
}

// --- Implementation ---

func (s *orderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	customer, err := s.resolveCustomer(ctx, req.CustomerDetails)
	if err != nil {
		return nil, err
	}
	items, err := buildOrderItems(req.Items)
	if err != nil {
		return nil, err
	}
	now := s.now()
	date, err := dateOr(req.Date, now)
	if err != nil {
		return nil, err
	}
	totalPaid := decimal.Zero
	if req.TotalPaid != nil {
		if req.TotalPaid.IsNegative() {
			return nil, validationError("Total paid cannot be negative")
		}
		if err := checkMoney(*req.TotalPaid, "Total paid"); err != nil {
			return nil, err
		}
		totalPaid = *req.TotalPaid
	}

	order := &model.Order{
		OrderNo:          newRecordNo("ORDER", now),
		CustomerID:       customer.ID,
		CustomerUniqueID: customer.UniqueID,
		CustomerName:     customer.FullName,
		CustomerPhone:    customer.Phone,
		Date:             date,
		Items:            items,
		TotalPaid:        totalPaid,
	}
	ledger.Recalculate(order)
	if err := checkMoney(order.TotalAmount, "Order total"); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	s.invalidateDashboard(ctx)

	res := toOrderResponse(*order)
	return &res, nil
}

func (s *orderService) UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*OrderResponse, error) {
	uid, err := parseID(id, "order")
	if err != nil {
		return nil, err
	}

	var updated *model.Order
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, err := s.orderRepo.FindByIDForUpdate(txCtx, uid)
		if err != nil {
			return lookupError(err, "Order")
		}

		if req.CustomerDetails != nil {
			customer, err := s.resolveCustomer(txCtx, *req.CustomerDetails)
			if err != nil {
				return err
			}
			order.CustomerID = customer.ID
			order.CustomerUniqueID = customer.UniqueID
			order.CustomerName = customer.FullName
			order.CustomerPhone = customer.Phone
		}
		if req.Date != nil {
			date, _, err := parseDate(*req.Date)
			if err != nil {
				return err
			}
			order.Date = date
		}
		if req.TotalPaid != nil {
			if req.TotalPaid.IsNegative() {
				return validationError("Total paid cannot be negative")
			}
			if err := checkMoney(*req.TotalPaid, "Total paid"); err != nil {
				return err
			}
			order.TotalPaid = *req.TotalPaid
		}
		var items []model.OrderItem
		if req.Items != nil {
			if items, err = buildOrderItems(*req.Items); err != nil {
				return err
			}
			order.Items = items
		}

		ledger.Recalculate(order)
		if err := checkMoney(order.TotalAmount, "Order total"); err != nil {
			return err
		}
		if items != nil {
			if err := s.orderRepo.ReplaceItems(txCtx, order.ID, items); err != nil {
				return fmt.Errorf("failed to replace order items: %w", err)
			}
		}
		if err := s.orderRepo.Save(txCtx, order); err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateDashboard(ctx)

	res := toOrderResponse(*updated)
	return &res, nil
}

// AddPayment adds amount to the order's paid total. The order row stays
// locked from read to write so concurrent payments on one order all land.
func (s *orderService) AddPayment(ctx context.Context, id string, req PaymentRequest) (*OrderResponse, error) {
	uid, err := parseID(id, "order")
	if err != nil {
		return nil, err
	}

	if req.Amount.IsPositive() {
		if err := checkMoney(req.Amount, "Payment amount"); err != nil {
			return nil, err
		}
	}

	var paid model.Order
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, err := s.orderRepo.FindByIDForUpdate(txCtx, uid)
		if err != nil {
			return lookupError(err, "Order")
		}

		paid, err = ledger.ApplyPayment(*order, req.Amount)
		if errors.Is(err, ledger.ErrInvalidPaymentAmount) {
			return validationError("Valid payment amount is required")
		}
		if err != nil {
			return err
		}
		if err := checkMoney(paid.TotalPaid, "Total paid"); err != nil {
			return err
		}

		if err := s.orderRepo.UpdatePayment(txCtx, &paid); err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateDashboard(ctx)

	log.Info().
		Str("order_no", paid.OrderNo).
		Str("amount", req.Amount.String()).
		Str("status", paid.PaymentStatus).
		Msg("payment recorded")

	res := toOrderResponse(paid)
	return &res, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id string) error {
	uid, err := parseID(id, "order")
	if err != nil {
		return err
	}
	if err := s.orderRepo.Delete(ctx, uid); err != nil {
		return lookupError(err, "Order")
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*OrderResponse, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	ledger.Recalculate(order)
	res := toOrderResponse(*order)
	return &res, nil
}

func (s *orderService) ListOrders(ctx context.Context, p pagination.Params) ([]OrderResponse, int64, error) {
	orders, total, err := s.orderRepo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return toOrderResponses(orders), total, nil
}

func (s *orderService) ListOrdersByDateRange(ctx context.Context, startDate, endDate string) ([]OrderResponse, error) {
	from, to, err := dateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.Find(ctx, repository.OrderFilter{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return toOrderResponses(orders), nil
}

func (s *orderService) ListOrdersByCustomer(ctx context.Context, customerUniqueID string) ([]OrderResponse, error) {
	customerUniqueID = strings.TrimSpace(customerUniqueID)
	if customerUniqueID == "" {
		return nil, validationError("Customer ID is required")
	}
	orders, err := s.orderRepo.Find(ctx, repository.OrderFilter{CustomerUniqueID: customerUniqueID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer orders: %w", err)
	}
	return toOrderResponses(orders), nil
}

func (s *orderService) ListOrdersByCustomerAndDate(ctx context.Context, customerUniqueID, date string) ([]OrderResponse, error) {
	customerUniqueID = strings.TrimSpace(customerUniqueID)
	if customerUniqueID == "" {
		return nil, validationError("Customer ID is required")
	}
	day, _, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	from, _ := dayBounds(day)
	to := endOfDay(day)
	orders, err := s.orderRepo.Find(ctx, repository.OrderFilter{
		CustomerUniqueID: customerUniqueID,
		From:             &from,
		To:               &to,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer orders: %w", err)
	}
	return toOrderResponses(orders), nil
}

func (s *orderService) GetDashboard(ctx context.Context) (model.OrderDashboard, error) {
	var dashboard model.OrderDashboard
	if hit, err := s.statsCache.Get(ctx, cache.KeyOrderDashboard, &dashboard); err != nil {
		log.Warn().Err(err).Msg("order dashboard cache read failed")
	} else if hit {
		return dashboard, nil
	}

	dayStart, dayEnd := dayBounds(s.now())
	dashboard, err := s.orderRepo.Dashboard(ctx, dayStart, dayEnd)
	if err != nil {
		return model.OrderDashboard{}, fmt.Errorf("failed to compute order stats: %w", err)
	}
	if err := s.statsCache.Set(ctx, cache.KeyOrderDashboard, dashboard, s.cacheTTL); err != nil {
		log.Warn().Err(err).Msg("order dashboard cache write failed")
	}
	return dashboard, nil
}
