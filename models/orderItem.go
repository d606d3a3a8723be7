package models

import "gorm.io/gorm"

type OrderItem struct {
	gorm.Model
	OrderID   uint `gorm:"index;not null"`
	ProductID uint `gorm:"not null"`
	Quantity  uint `gorm:"not null"`
}
