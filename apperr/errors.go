package apperr

import (
	"errors"
	"fmt"
)

// Kind 錯誤分類，回應時以code欄位讓呼叫端分辨
type Kind string

const (
	KindUnauthorized       Kind = "UNAUTHORIZED"
	KindForbidden          Kind = "FORBIDDEN"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	KindInvalidPayload     Kind = "INVALID_PAYLOAD"
	KindNotFound           Kind = "NOT_FOUND"
	KindConflict           Kind = "CONFLICT"
	KindUpstreamFailure    Kind = "UPSTREAM_FAILURE"
	KindInternal           Kind = "INTERNAL"
)

// 各分類的哨兵錯誤，可用errors.Is比對
var (
	ErrUnauthorized       = &Error{Kind: KindUnauthorized, Message: "尚未登入或Token無效"}
	ErrForbidden          = &Error{Kind: KindForbidden, Message: "沒有權限"}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "信箱或密碼錯誤"}
	ErrInvalidPayload     = &Error{Kind: KindInvalidPayload, Message: "請求資料格式錯誤"}
	ErrNotFound           = &Error{Kind: KindNotFound, Message: "查無資料"}
	ErrConflict           = &Error{Kind: KindConflict, Message: "資料已存在"}
	ErrUpstreamFailure    = &Error{Kind: KindUpstreamFailure, Message: "外部服務錯誤"}
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 同分類即視為相同錯誤
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf 回傳錯誤分類，非apperr錯誤一律視為INTERNAL
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf 回傳可公開給呼叫端的訊息
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "伺服器錯誤"
}
