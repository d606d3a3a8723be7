package repository

import (
	"Storefront/models"
	"context"
	"errors"
	"gorm.io/gorm"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create 同一個事務內建立使用者與收件地址
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		address := user.ShippingAddress
		if err := tx.Omit("ShippingAddress", "Cart", "Orders").Create(user).Error; err != nil {
			return err
		}

		address.UserID = user.ID
		if err := tx.Create(&address).Error; err != nil {
			return err
		}
		user.ShippingAddress = address
		return nil
	})
	return translate(err, "查無使用者")
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("ShippingAddress").
		First(&user, "id = ?", id).
		Error
	if err != nil {
		return nil, translate(err, "查無使用者")
	}
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, translate(err, "查無使用者")
	}
	return &user, nil
}

// FindProfile 查詢使用者完整資料，包含地址與訂單
func (r *GormUserRepository) FindProfile(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("ShippingAddress").
		Preload("Orders").
		Preload("Orders.OrderItems").
		First(&user, "id = ?", id).
		Error
	if err != nil {
		return nil, translate(err, "查無使用者")
	}
	return &user, nil
}

// 檢查Email是否已被其他使用者使用
func (r *GormUserRepository) EmailTaken(ctx context.Context, email string, exceptUserID uint) (bool, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select("id").
		Where("email = ? AND id <> ?", email, exceptUserID).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// UpdateProfile 以單一事務更新使用者欄位與收件地址，任一失敗則全部回滾
func (r *GormUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"email":      user.Email,
				"password":   user.Password,
				"first_name": user.FirstName,
				"last_name":  user.LastName,
				"phone":      user.Phone,
			}).
			Error
		if err != nil {
			return err
		}

		//舊資料可能沒有地址，沒有則建立
		var address models.ShippingAddress
		err = tx.
			Where(models.ShippingAddress{UserID: user.ID}).
			Attrs(models.ShippingAddress{FullName: models.DefaultAddressLabel}).
			FirstOrCreate(&address).
			Error
		if err != nil {
			return err
		}

		next := user.ShippingAddress
		err = tx.Model(&address).
			Updates(map[string]interface{}{
				"address_line1": next.AddressLine1,
				"city":          next.City,
				"state":         next.State,
				"zip_code":      next.ZipCode,
				"country":       next.Country,
			}).
			Error
		if err != nil {
			return err
		}

		user.ShippingAddress = address
		user.ShippingAddress.AddressLine1 = next.AddressLine1
		user.ShippingAddress.City = next.City
		user.ShippingAddress.State = next.State
		user.ShippingAddress.ZipCode = next.ZipCode
		user.ShippingAddress.Country = next.Country
		return nil
	})
	return translate(err, "查無使用者")
}

func (r *GormUserRepository) SetBillingCustomerID(ctx context.Context, userID uint, customerID string) error {
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("billing_customer_id", customerID).
		Error
	return translate(err, "查無使用者")
}
