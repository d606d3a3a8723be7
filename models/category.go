package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name     string    `gorm:"uniqueIndex;size:191;not null"`
	Products []Product `gorm:"many2many:category_products;" json:",omitempty"`
}
