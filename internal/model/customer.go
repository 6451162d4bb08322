package model

import (
	"time"

	"github.com/google/uuid"
)

// PhoneNotProvided is stored when a customer is created without a phone number.
// It is exempt from the phone uniqueness check.
const PhoneNotProvided = "Not Provided"

// Customer summary buckets derived from the aggregate of a customer's orders
const (
	CustomerSummaryNoOrders = "no-orders"
	CustomerSummaryPaid     = "paid"
	CustomerSummaryPartial  = "partial"
	CustomerSummaryPending  = "pending"
)

// Customer is a buyer of the vendor. Order counts, revenue and balances are
// computed from the customer's orders and never stored on this row.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UniqueID  string    `gorm:"column:unique_id;type:varchar(100);uniqueIndex;not null" json:"uniqueId"`
	FullName  string    `gorm:"type:varchar(100);not null" json:"fullName"`
	Phone     string    `gorm:"type:varchar(50);not null;index" json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
