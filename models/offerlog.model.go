package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OfferLog keeps the raw generator payload returned for a card so fetches
// can be inspected after the fact. Rows are purged by the retention job.
type OfferLog struct {
	gorm.Model
	OwnerID string         `gorm:"size:20;index" json:"owner_id"`
	CardID  string         `gorm:"size:36;index" json:"card_id"`
	Source  string         `gorm:"size:20" json:"source"`
	Payload datatypes.JSON `json:"payload"`
}
