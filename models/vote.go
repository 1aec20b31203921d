package models

import "time"

// Vote records one user's choice of a menu on a given day. The composite unique
// index makes (user, menu, vote_date) appear at most once.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_vote_user_menu_date,priority:1" json:"user"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuID    uint      `gorm:"not null;uniqueIndex:idx_vote_user_menu_date,priority:2;index" json:"menu"`
	Menu      Menu      `gorm:"foreignKey:MenuID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	VoteDate  Date      `gorm:"type:date;not null;uniqueIndex:idx_vote_user_menu_date,priority:3" json:"vote_date"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
}
