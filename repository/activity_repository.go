package repository

import (
	"Storefront/models"
	"context"
	"gorm.io/gorm"
)

type GormActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

func (r *GormActivityRepository) FindRates(ctx context.Context, userID uint) ([]models.Rate, error) {
	rates := []models.Rate{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *GormActivityRepository) FindComments(ctx context.Context, userID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
