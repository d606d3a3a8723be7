package models

import "gorm.io/gorm"

// 商品目錄，價格與庫存以此為準，購物車只保存比對當下的副本
type Product struct {
	gorm.Model
	Name        string     `gorm:"not null" json:"name"`
	Price       uint       `gorm:"not null" json:"price"`
	Stock       uint       `gorm:"not null" json:"stock"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageURL"`
	Categories  []Category `gorm:"many2many:category_products;" json:"categories,omitempty"`
}
