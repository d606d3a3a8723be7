package response

import (
	"Storefront/apperr"
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"net/http"
)

// 錯誤分類對應的HTTP狀態碼
var kindStatus = map[apperr.Kind]int{
	apperr.KindUnauthorized:       http.StatusUnauthorized,
	apperr.KindForbidden:          http.StatusForbidden,
	apperr.KindInvalidCredentials: http.StatusUnauthorized,
	apperr.KindInvalidPayload:     http.StatusBadRequest,
	apperr.KindNotFound:           http.StatusNotFound,
	apperr.KindConflict:           http.StatusConflict,
	apperr.KindUpstreamFailure:    http.StatusBadGateway,
	apperr.KindInternal:           http.StatusInternalServerError,
}

func StatusOf(kind apperr.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// OK 成功回應 {status, data}
func OK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"status": status,
		"data":   data,
	})
}

// Fail 失敗回應 {status, code, message}，內部錯誤的細節不會帶給呼叫端
func Fail(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := StatusOf(kind)
	c.JSON(status, gin.H{
		"status":  status,
		"code":    kind,
		"message": apperr.MessageOf(err),
	})
}

// Abort 中介層用，回應後中止後續處理
func Abort(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}

// BindFail 請求資料綁定失敗時列出每個欄位的錯誤 {status, code, errors}
func BindFail(c *gin.Context, err error) {
	status := http.StatusBadRequest
	c.JSON(status, gin.H{
		"status": status,
		"code":   apperr.KindInvalidPayload,
		"errors": bindErrors(err),
	})
}

func bindErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{"綁定請求資料錯誤"}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fieldErr.Field()+": "+fieldErr.Tag())
	}
	return messages
}
