package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/projectblurimedia/Veggie-Tracker/internal/ledger"
	"github.com/projectblurimedia/Veggie-Tracker/internal/model"
	"github.com/projectblurimedia/Veggie-Tracker/internal/repository"
)

// --- DTOs ---

type CreateCustomerRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	UniqueID string `json:"uniqueId"`
}

type UpdateCustomerRequest struct {
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
}

// CustomerListResponse is a customer list with totals over the listed customers
type CustomerListResponse struct {
	Customers []repository.CustomerWithSummary `json:"customers"`
	Stats     ledger.CustomerStats             `json:"stats"`
}

// CustomerDetailResponse is one customer with its summary and orders
type CustomerDetailResponse struct {
	repository.CustomerWithSummary
	Orders []OrderResponse `json:"orders"`
}

// --- Interface ---

type CustomerService interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*model.Customer, error)
	ListCustomers(ctx context.Context) (CustomerListResponse, error)
	SearchCustomers(ctx context.Context, search string) ([]repository.CustomerWithSummary, error)
	ListCustomersByStatus(ctx context.Context, status string) (CustomerListResponse, error)
	GetCustomer(ctx context.Context, id string) (CustomerDetailResponse, error)
	ListCustomerOrders(ctx context.Context, id string) ([]OrderResponse, error)
	UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, orderRepo repository.OrderRepository) CustomerService {
	return &customerService{customerRepo: customerRepo, orderRepo: orderRepo}
}

const maxCustomerNameLength = 100

func validateCustomerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validationError("Customer full name is required")
	}
	if utf8.RuneCountInString(name) > maxCustomerNameLength {
		return "", validationError("Name cannot exceed %d characters", maxCustomerNameLength)
	}
	return name, nil
}

func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return model.PhoneNotProvided
	}
	return phone
}

// ensurePhoneFree rejects a real phone number already used by another customer.
func (s *customerService) ensurePhoneFree(ctx context.Context, phone string, self *model.Customer) error {
	if phone == model.PhoneNotProvided {
		return nil
	}
	existing, err := s.customerRepo.FindByPhone(ctx, phone)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check phone: %w", err)
	}
	if self != nil && existing.ID == self.ID {
		return nil
	}
	return conflict("Customer with this phone number already exists")
}

// --- Implementation ---

func (s *customerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*model.Customer, error) {
	uniqueID := strings.TrimSpace(req.UniqueID)
	if uniqueID == "" {
		return nil, validationError("Unique ID is required")
	}
	name, err := validateCustomerName(req.FullName)
	if err != nil {
		return nil, err
	}

	if _, err := s.customerRepo.FindByUniqueID(ctx, uniqueID); err == nil {
		return nil, conflict("Customer with this unique ID already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check unique ID: %w", err)
	}

	phone := normalizePhone(req.Phone)
	if err := s.ensurePhoneFree(ctx, phone, nil); err != nil {
		return nil, err
	}

	customer := &model.Customer{
		UniqueID: uniqueID,
		FullName: name,
		Phone:    phone,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("Customer with this unique ID already exists")
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) list(ctx context.Context, filter repository.CustomerFilter) (CustomerListResponse, error) {
	customers, err := s.customerRepo.ListWithSummary(ctx, filter)
	if err != nil {
		return CustomerListResponse{}, fmt.Errorf("failed to fetch customers: %w", err)
	}

	summaries := make([]ledger.CustomerSummary, 0, len(customers))
	for _, c := range customers {
		summaries = append(summaries, c.CustomerSummary)
	}
	return CustomerListResponse{
		Customers: customers,
		Stats:     ledger.SummarizeCustomers(summaries),
	}, nil
}

func (s *customerService) ListCustomers(ctx context.Context) (CustomerListResponse, error) {
	return s.list(ctx, repository.CustomerFilter{})
}

func (s *customerService) SearchCustomers(ctx context.Context, search string) ([]repository.CustomerWithSummary, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil, validationError("Search query is required")
	}
	res, err := s.list(ctx, repository.CustomerFilter{Search: search})
	if err != nil {
		return nil, err
	}
	return res.Customers, nil
}

func (s *customerService) ListCustomersByStatus(ctx context.Context, status string) (CustomerListResponse, error) {
	if !ledger.ValidSummaryStatus(status) {
		return CustomerListResponse{}, validationError("Invalid payment status")
	}
	return s.list(ctx, repository.CustomerFilter{PaymentSummary: status})
}

func (s *customerService) find(ctx context.Context, id string) (*model.Customer, error) {
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

func (s *customerService) GetCustomer(ctx context.Context, id string) (CustomerDetailResponse, error) {
	customer, err := s.find(ctx, id)
	if err != nil {
		return CustomerDetailResponse{}, err
	}

	orders, err := s.orderRepo.Find(ctx, repository.OrderFilter{CustomerUniqueID: customer.UniqueID})
	if err != nil {
		return CustomerDetailResponse{}, fmt.Errorf("failed to fetch customer orders: %w", err)
	}
	for i := range orders {
		ledger.Recalculate(&orders[i])
	}

	return CustomerDetailResponse{
		CustomerWithSummary: repository.CustomerWithSummary{
			Customer:        *customer,
			CustomerSummary: ledger.AggregateCustomer(orders),
		},
		Orders: toOrderResponses(orders),
	}, nil
}

func (s *customerService) ListCustomerOrders(ctx context.Context, id string) ([]OrderResponse, error) {
	customer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.Find(ctx, repository.OrderFilter{CustomerUniqueID: customer.UniqueID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer orders: %w", err)
	}
	return toOrderResponses(orders), nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest) (*model.Customer, error) {
	customer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		name, err := validateCustomerName(*req.FullName)
		if err != nil {
			return nil, err
		}
		customer.FullName = name
	}
	if req.Phone != nil {
		phone := normalizePhone(*req.Phone)
		if err := s.ensurePhoneFree(ctx, phone, customer); err != nil {
			return nil, err
		}
		customer.Phone = phone
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	customer, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.orderRepo.CountByCustomer(ctx, customer.UniqueID)
	if err != nil {
		return fmt.Errorf("failed to count customer orders: %w", err)
	}
	if count > 0 {
		return conflict("Cannot delete customer with existing orders. Please delete orders first.")
	}

	if err := s.customerRepo.Delete(ctx, customer.ID); err != nil {
		return lookupError(err, "Customer")
	}
	return nil
}
