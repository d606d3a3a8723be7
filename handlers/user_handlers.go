package handlers

import (
	"Storefront/apperr"
	"Storefront/middleware"
	"Storefront/repository"
	"Storefront/response"
	"Storefront/services"
	"github.com/gin-gonic/gin"
	"net/http"
)

type registerRequest struct {
	Email     string `json:"email" binding:"required,email,max=191"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstname" binding:"required,max=100"`
	LastName  string `json:"lastname" binding:"required,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// 欄位未提供代表不變更；提供空字串則覆蓋
type updateProfileRequest struct {
	Email      string  `json:"email" binding:"omitempty,email,max=191"`
	Password   string  `json:"password"`
	FirstName  *string `json:"firstname" binding:"omitempty,max=100"`
	LastName   *string `json:"lastname" binding:"omitempty,max=100"`
	Phone      *string `json:"phone" binding:"omitempty,max=32"`
	Address    *string `json:"address" binding:"omitempty,max=255"`
	City       *string `json:"city" binding:"omitempty,max=100"`
	State      *string `json:"state" binding:"omitempty,max=100"`
	PostalCode *string `json:"postalCode" binding:"omitempty,max=16"`
	Country    *string `json:"country" binding:"omitempty,max=100"`
}

// 註冊使用者帳戶
func RegisterHandler(c *gin.Context, sessions *services.SessionIssuer) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindFail(c, err)
		return
	}

	user, err := sessions.Register(c.Request.Context(), services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusCreated, user)
}

// 登入並發放Token
func LoginHandler(c *gin.Context, sessions *services.SessionIssuer) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindFail(c, err)
		return
	}

	session, err := sessions.Issue(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, session)
}

// 變更使用者資料
func UpdateUserProfileHandler(c *gin.Context, profiles *services.ProfileMutator) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Fail(c, apperr.ErrUnauthorized)
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindFail(c, err)
		return
	}

	updated, err := profiles.Update(c.Request.Context(), user.ID, services.ProfileUpdate{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, updated)
}

// 查詢使用者資料，包含地址與訂單
func GetUserProfileHandler(c *gin.Context, users repository.UserRepository) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Fail(c, apperr.ErrUnauthorized)
		return
	}

	profile, err := users.FindProfile(c.Request.Context(), user.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, profile)
}

// 查詢使用者的商品評分
func GetUserRatesHandler(c *gin.Context, activity repository.ActivityRepository) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Fail(c, apperr.ErrUnauthorized)
		return
	}

	rates, err := activity.FindRates(c.Request.Context(), user.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, rates)
}

// 查詢使用者的商品留言
func GetUserCommentsHandler(c *gin.Context, activity repository.ActivityRepository) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Fail(c, apperr.ErrUnauthorized)
		return
	}

	comments, err := activity.FindComments(c.Request.Context(), user.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, comments)
}
