package middleware

import (
	"Storefront/apperr"
	"Storefront/models"
	"Storefront/response"
	"context"
	"github.com/gin-gonic/gin"
	"log/slog"
	"strings"
)

const userKey = "User"

type TokenVerifier interface {
	VerifyToken(token string) (uint, error)
}

type UserLoader interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// Authenticate 驗證Bearer Token並載入使用者，任何失敗一律回傳401
func Authenticate(verifier TokenVerifier, users UserLoader, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			response.Abort(c, apperr.ErrUnauthorized)
			return
		}

		userID, err := verifier.VerifyToken(token)
		if err != nil {
			logger.DebugContext(c, "無法驗證Token", "error", err)
			response.Abort(c, apperr.ErrUnauthorized)
			return
		}

		//Token合法但使用者已被刪除
		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if apperr.KindOf(err) != apperr.KindNotFound {
				logger.ErrorContext(c, "load authenticated user failed", "user_id", userID, "error", err)
			}
			response.Abort(c, apperr.ErrUnauthorized)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser 取得Authenticate載入的使用者
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}
