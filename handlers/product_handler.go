package handlers

import (
	"Storefront/apperr"
	"Storefront/repository"
	"Storefront/response"
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
)

const (
	defaultProductLimit = 10
	maxProductLimit     = 50
)

type productListView struct {
	Products   []productSummary `json:"products"`
	TotalCount int64            `json:"totalCount"`
}

type productSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Price    uint   `json:"price"`
	Stock    uint   `json:"stock"`
	ImageURL string `json:"imageURL"`
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	value := c.Query(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, apperr.New(apperr.KindInvalidPayload, key+"輸入錯誤")
	}
	return n, nil
}

// 查詢商品列表
func GetProductListHandler(c *gin.Context, cache *repository.ProductCache) {
	limit, err := queryInt(c, "limit", defaultProductLimit)
	if err != nil {
		response.Fail(c, err)
		return
	}
	//限制最高查詢數量
	if limit == 0 || limit > maxProductLimit {
		limit = maxProductLimit
	}

	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		response.Fail(c, err)
		return
	}

	products, total, err := cache.Page(c.Request.Context(), offset, limit)
	if err != nil {
		response.Fail(c, apperr.Wrap(apperr.KindInternal, "無法讀取商品列表", err))
		return
	}

	summaries := make([]productSummary, 0, len(products))
	for _, product := range products {
		summaries = append(summaries, productSummary{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Stock:    product.Stock,
			ImageURL: product.ImageURL,
		})
	}

	response.OK(c, http.StatusOK, productListView{
		Products:   summaries,
		TotalCount: total,
	})
}

// 查詢商品詳細資料
func GetProductDataHandler(c *gin.Context, products repository.ProductRepository) {
	productID, err := strconv.ParseUint(c.Param("productID"), 10, 32)
	if err != nil {
		response.Fail(c, apperr.New(apperr.KindNotFound, "查無此商品"))
		return
	}

	product, err := products.FindByID(c.Request.Context(), uint(productID))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, product)
}
