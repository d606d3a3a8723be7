package repository

import (
	"Storefront/models"
	"context"
	"gorm.io/gorm"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindMany 以單一查詢取回所有存在的商品，不存在的ID直接略過
func (r *GormProductRepository) FindMany(ctx context.Context, ids []uint) ([]models.Product, error) {
	products := []models.Product{}
	if len(ids) == 0 {
		return products, nil
	}

	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id").
		Find(&products).
		Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Categories").
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, translate(err, "查無此商品")
	}
	return &product, nil
}

func (r *GormProductRepository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Order("id").
		Find(&products).
		Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
