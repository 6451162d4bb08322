package model

import (
	"time"

	"github.com/google/uuid"
)

// Item is an entry of the produce catalog used to fill order lines.
type Item struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ItemNo    string    `gorm:"type:varchar(40);uniqueIndex;not null" json:"itemNo"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
