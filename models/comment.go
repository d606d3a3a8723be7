package models

import "gorm.io/gorm"

type Comment struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null" json:"userID"`
	ProductID uint   `gorm:"index;not null" json:"productID"`
	Content   string `gorm:"type:text" json:"content"`
}
