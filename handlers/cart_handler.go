package handlers

import (
	"Storefront/apperr"
	"Storefront/middleware"
	"Storefront/models"
	"Storefront/response"
	"Storefront/services"
	"encoding/json"
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
	"time"
)

// products可為陣列或序列化後的陣列字串，交由CartReconciler解析
type reconcileCartRequest struct {
	Products json.RawMessage `json:"products"`
}

type cartView struct {
	ID        uint              `json:"id"`
	UserID    uint              `json:"userID"`
	Products  []models.CartLine `json:"products"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func newCartView(cart *models.Cart, lines []models.CartLine) cartView {
	if lines == nil {
		lines = []models.CartLine{}
	}
	return cartView{
		ID:        cart.ID,
		UserID:    cart.UserID,
		Products:  lines,
		UpdatedAt: cart.UpdatedAt,
	}
}

// 建立空的購物車，每位使用者只有一台
func CreateCartHandler(c *gin.Context, carts *services.CartReconciler) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Fail(c, apperr.ErrUnauthorized)
		return
	}

	cart, err := carts.Create(c.Request.Context(), user.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusCreated, newCartView(cart, nil))
}

// 查詢購物車
func GetCartHandler(c *gin.Context, carts *services.CartReconciler) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Fail(c, apperr.ErrUnauthorized)
		return
	}

	cart, err := carts.Get(c.Request.Context(), user.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	lines, err := cart.Lines()
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, newCartView(cart, lines))
}

// 以商品目錄比對後整份替換購物車內容
func ReconcileCartHandler(c *gin.Context, carts *services.CartReconciler) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Fail(c, apperr.ErrUnauthorized)
		return
	}

	cartID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || cartID == 0 {
		response.Fail(c, apperr.New(apperr.KindNotFound, "查無此購物車"))
		return
	}

	var req reconcileCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindFail(c, err)
		return
	}
	if len(req.Products) == 0 {
		response.Fail(c, apperr.New(apperr.KindInvalidPayload, "缺少products欄位"))
		return
	}

	cart, lines, err := carts.Reconcile(c.Request.Context(), user.ID, uint(cartID), req.Products)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, newCartView(cart, lines))
}
