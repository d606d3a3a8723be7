package repository

import (
	"Storefront/models"
	"context"
	"encoding/json"
	"github.com/redis/go-redis/v9"
	"log/slog"
	"time"
)

const productsKey = "products"

// ProductCache 以Redis有序集合快取商品列表，score為商品ID
// 只供商品瀏覽使用，購物車比對一律讀資料庫
type ProductCache struct {
	rdb      *redis.Client
	products ProductRepository
	ttl      time.Duration
	logger   *slog.Logger
}

func NewProductCache(rdb *redis.Client, products ProductRepository, ttl time.Duration, logger *slog.Logger) *ProductCache {
	return &ProductCache{
		rdb:      rdb,
		products: products,
		ttl:      ttl,
		logger:   logger,
	}
}

// Page 讀取商品列表，快取為空或讀取失敗時從資料庫重建
// Redis無法使用時直接從資料庫分頁
func (c *ProductCache) Page(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	start, stop := int64(offset), int64(offset+limit-1)

	members, err := c.rdb.ZRange(ctx, productsKey, start, stop).Result()
	if err != nil || c.rdb.ZCard(ctx, productsKey).Val() == 0 {
		if err := c.Rebuild(ctx); err != nil {
			c.logger.WarnContext(ctx, "商品快取無法使用，改由資料庫讀取", "error", err)
			return c.pageFromDB(ctx, offset, limit)
		}

		//再次嘗試從Redis讀取商品列表
		members, err = c.rdb.ZRange(ctx, productsKey, start, stop).Result()
		if err != nil {
			c.logger.WarnContext(ctx, "商品快取無法使用，改由資料庫讀取", "error", err)
			return c.pageFromDB(ctx, offset, limit)
		}
	}

	products := make([]models.Product, 0, len(members))
	for _, member := range members {
		var product models.Product
		if err := json.Unmarshal([]byte(member), &product); err != nil {
			c.logger.WarnContext(ctx, "無法反序列化商品資料", "error", err)
			continue
		}
		products = append(products, product)
	}

	total, err := c.rdb.ZCard(ctx, productsKey).Result()
	if err != nil {
		c.logger.WarnContext(ctx, "商品快取無法使用，改由資料庫讀取", "error", err)
		return c.pageFromDB(ctx, offset, limit)
	}
	return products, total, nil
}

func (c *ProductCache) pageFromDB(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	all, err := c.products.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(all))
	if offset >= len(all) {
		return []models.Product{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// Rebuild 從資料庫讀取全部商品並重建快取
func (c *ProductCache) Rebuild(ctx context.Context) error {
	products, err := c.products.List(ctx)
	if err != nil {
		return err
	}

	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, productsKey)
	for _, product := range products {
		productJSON, err := json.Marshal(product)
		if err != nil {
			c.logger.WarnContext(ctx, "無法序列化商品資料", "product_id", product.ID, "error", err)
			continue
		}
		pipe.ZAdd(ctx, productsKey, redis.Z{
			Score:  float64(product.ID),
			Member: productJSON,
		})
	}
	pipe.Expire(ctx, productsKey, c.ttl)

	_, err = pipe.Exec(ctx)
	return err
}
