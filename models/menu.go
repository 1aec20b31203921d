package models

import (
	"encoding/json"
	"time"
)

// Menu is one restaurant's offering for a single day. MenuData is kept as raw
// JSON; its structure belongs to the clients.
type Menu struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"type:varchar(100);not null" json:"name"`
	RestaurantID uint            `gorm:"not null;index" json:"restaurant"`
	Restaurant   Restaurant      `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuData     json.RawMessage `gorm:"type:json;serializer:json;not null" json:"menu_data"`
	MenuDate     Date            `gorm:"type:date;not null;index" json:"menu_date"`
	CreatedAt    time.Time       `gorm:"not null" json:"-"`
	UpdatedAt    time.Time       `gorm:"not null" json:"-"`
}

// MenuResult is a menu together with the number of votes it received.
type MenuResult struct {
	Menu
	VoteCount int64 `json:"vote_count"`
}
