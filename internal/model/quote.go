package model

import "gorm.io/gorm"

// Quote is a motivational phrase surfaced on the participant dashboard.
type Quote struct {
	gorm.Model
	Content   string `gorm:"type:text;not null" json:"content"`
	IsEnabled bool   `gorm:"default:true" json:"isEnabled"`
}

func (Quote) TableName() string {
	return "quotes"
}
