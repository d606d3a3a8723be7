package services

import (
	"Storefront/apperr"
	"Storefront/models"
	"Storefront/repository"
	"context"
	"fmt"
	"log/slog"
)

// CartReconciler 以商品目錄為準、用戶端只決定數量的方式更新購物車快照
type CartReconciler struct {
	carts   repository.CartRepository
	catalog repository.CatalogRepository
	logger  *slog.Logger
}

func NewCartReconciler(carts repository.CartRepository, catalog repository.CatalogRepository, logger *slog.Logger) *CartReconciler {
	return &CartReconciler{
		carts:   carts,
		catalog: catalog,
		logger:  logger.With("module", "services.cart"),
	}
}

// Create 建立空的購物車，每個使用者只能有一台
func (r *CartReconciler) Create(ctx context.Context, ownerID uint) (*models.Cart, error) {
	_, err := r.carts.FindByOwner(ctx, ownerID)
	if err == nil {
		return nil, apperr.New(apperr.KindConflict, "購物車已存在")
	}
	if apperr.KindOf(err) != apperr.KindNotFound {
		return nil, fmt.Errorf("find cart: %w", err)
	}

	cart := &models.Cart{UserID: ownerID}
	if err := r.carts.Create(ctx, cart); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return nil, apperr.Wrap(apperr.KindConflict, "購物車已存在", err)
		}
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return cart, nil
}

func (r *CartReconciler) Get(ctx context.Context, ownerID uint) (*models.Cart, error) {
	cart, err := r.carts.FindByOwner(ctx, ownerID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.Wrap(apperr.KindNotFound, "查無此購物車", err)
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return cart, nil
}

// Reconcile 解析用戶端內容，一次查詢商品目錄後整份替換購物車快照
// 目錄中不存在的商品直接捨棄，任何錯誤都不會改動原本的快照
func (r *CartReconciler) Reconcile(ctx context.Context, ownerID, cartID uint, raw []byte) (*models.Cart, []models.CartLine, error) {
	payload, err := ParseCartPayload(raw)
	if err != nil {
		return nil, nil, err
	}

	cart, err := r.Get(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	//只能更新自己的購物車
	if cartID != 0 && cart.ID != cartID {
		return nil, nil, apperr.New(apperr.KindNotFound, "查無此購物車")
	}

	products, err := r.catalog.FindMany(ctx, payload.ProductIDs())
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.KindUpstreamFailure, "查詢商品目錄失敗", err)
	}

	quantities := payload.Quantities()
	lines := make([]models.CartLine, 0, len(products))
	for _, product := range products {
		lines = append(lines, models.NewCartLine(product, quantities[product.ID]))
	}

	snapshot, err := models.EncodeCartLines(lines)
	if err != nil {
		return nil, nil, fmt.Errorf("encode cart lines: %w", err)
	}

	if err := r.carts.ReplaceProducts(ctx, cart.ID, snapshot); err != nil {
		return nil, nil, fmt.Errorf("replace cart products: %w", err)
	}
	cart.Products = snapshot

	if dropped := len(payload.ProductIDs()) - len(lines); dropped > 0 {
		r.logger.InfoContext(ctx, "unknown products dropped from cart",
			"cart_id", cart.ID,
			"user_id", ownerID,
			"dropped", dropped,
		)
	}
	return cart, lines, nil
}
