package middleware

import (
	"Storefront/apperr"
	"Storefront/models"
	"Storefront/response"
	"github.com/gin-gonic/gin"
)

// 檢查角色是否具備端點所需權限，沒有則中止請求
func RequireCapability(capability models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			response.Abort(c, apperr.ErrUnauthorized)
			return
		}
		if !user.Role.Can(capability) {
			response.Abort(c, apperr.ErrForbidden)
			return
		}

		c.Next()
	}
}
