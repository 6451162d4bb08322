package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordType enum constants for owner records
const (
	RecordTypeSale     = "SALE"
	RecordTypePurchase = "PURCHASE"
	RecordTypeExpense  = "EXPENSE"
	RecordTypeIncome   = "INCOME"
)

// Expense is an owner-side record of goods bought or money spent on a date.
// It has no payment tracking; TotalPrice is the sum of item amounts.
type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RecordNo    string          `gorm:"type:varchar(40);uniqueIndex;not null" json:"recordNo"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Description string          `gorm:"type:varchar(200)" json:"description"`
	RecordType  string          `gorm:"type:varchar(20);not null;default:'SALE';index" json:"recordType"`
	Items       []ExpenseItem   `gorm:"foreignKey:ExpenseID;constraint:OnDelete:CASCADE" json:"items"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"totalPrice"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ExpenseItem is a line of an owner record; Amount is the line total.
type ExpenseItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ExpenseID uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Position  int             `gorm:"type:int;not null;default:0" json:"-"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Quantity  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"quantity"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null" json:"price"`
}
