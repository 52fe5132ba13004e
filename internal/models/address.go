package models

import (
	"time"

	"gorm.io/gorm"
)

type Address struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Label     string         `json:"label"`
	Street    string         `json:"street" gorm:"not null"`
	City      string         `json:"city" gorm:"not null"`
	State     string         `json:"state"`
	Phone     string         `json:"phone"`
	IsDefault bool           `json:"is_default" gorm:"default:false"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
