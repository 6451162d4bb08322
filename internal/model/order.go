package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus values of an order. They are derived from the order amounts
// and never written directly by callers.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPartial  = "partial"
	PaymentStatusPaid     = "paid"
	PaymentStatusOverpaid = "overpaid"
)

// Order is one customer purchase on a date. Customer name and phone are a
// snapshot taken when the order was written.
type Order struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNo          string          `gorm:"type:varchar(40);uniqueIndex;not null" json:"orderNo"`
	CustomerID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"customerId"`
	CustomerUniqueID string          `gorm:"column:customer_unique_id;type:varchar(100);not null;index" json:"customerUniqueId"`
	CustomerName     string          `gorm:"type:varchar(100);not null" json:"customerName"`
	CustomerPhone    string          `gorm:"type:varchar(50);not null" json:"customerPhone"`
	Date             time.Time       `gorm:"not null;index" json:"date"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"totalAmount"`
	TotalPaid        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"totalPaid"`
	BalanceAmount    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"balanceAmount"` // negative means customer credit
	PaymentStatus    string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"paymentStatus"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// OrderItem is a line of an order. Amount is the line total; Quantity is
// informational and is never multiplied into the total.
type OrderItem struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Position int             `gorm:"type:int;not null;default:0" json:"-"`
	Name     string          `gorm:"type:varchar(255);not null" json:"name"`
	Quantity decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"quantity"`
	Amount   decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null" json:"price"`
}
