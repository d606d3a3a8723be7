package models

import "gorm.io/gorm"

type Rate struct {
	gorm.Model
	UserID    uint `gorm:"index;not null" json:"userID"`
	ProductID uint `gorm:"index;not null" json:"productID"`
	Value     uint `gorm:"not null" json:"value"`
}
