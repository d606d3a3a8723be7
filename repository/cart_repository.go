package repository

import (
	"Storefront/models"
	"context"
	"gorm.io/gorm"
)

type GormCartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Create user_id有唯一索引，同一使用者重複建立會回傳CONFLICT
func (r *GormCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	err := r.db.WithContext(ctx).Create(cart).Error
	return translate(err, "查無此購物車")
}

func (r *GormCartRepository) FindByOwner(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cart).
		Error
	if err != nil {
		return nil, translate(err, "查無此購物車")
	}
	return &cart, nil
}

// ReplaceProducts 整份替換快照，不做局部更新
func (r *GormCartRepository) ReplaceProducts(ctx context.Context, cartID uint, products string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("products", products).
		Error
	return translate(err, "查無此購物車")
}
