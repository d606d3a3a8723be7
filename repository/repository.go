package repository

import (
	"Storefront/apperr"
	"Storefront/models"
	"context"
	"errors"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindProfile(ctx context.Context, id uint) (*models.User, error)
	EmailTaken(ctx context.Context, email string, exceptUserID uint) (bool, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	SetBillingCustomerID(ctx context.Context, userID uint, customerID string) error
}

type CartRepository interface {
	Create(ctx context.Context, cart *models.Cart) error
	FindByOwner(ctx context.Context, userID uint) (*models.Cart, error)
	ReplaceProducts(ctx context.Context, cartID uint, products string) error
}

// CatalogRepository 商品目錄只讀，FindMany一次取回所有指定商品
type CatalogRepository interface {
	FindMany(ctx context.Context, ids []uint) ([]models.Product, error)
}

type ProductRepository interface {
	CatalogRepository
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
}

type ActivityRepository interface {
	FindRates(ctx context.Context, userID uint) ([]models.Rate, error)
	FindComments(ctx context.Context, userID uint) ([]models.Comment, error)
}

// AutoMigrate 建立或更新資料表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.ShippingAddress{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Cart{},
		&models.Rate{},
		&models.Comment{},
	)
}

// 將gorm錯誤轉成apperr分類
func translate(err error, notFoundMessage string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.Wrap(apperr.KindNotFound, notFoundMessage, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Wrap(apperr.KindConflict, "資料已存在", err)
	default:
		return err
	}
}
