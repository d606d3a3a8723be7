package routers

import (
	"Storefront/handlers"
	"Storefront/middleware"
	"Storefront/models"
	"Storefront/repository"
	"Storefront/services"
	"github.com/gin-gonic/gin"
	"log/slog"
)

// Dependencies 路由需要的服務與資料存取
type Dependencies struct {
	Sessions     *services.SessionIssuer
	Profiles     *services.ProfileMutator
	Carts        *services.CartReconciler
	Users        repository.UserRepository
	Activity     repository.ActivityRepository
	Products     repository.ProductRepository
	ProductCache *repository.ProductCache
	Verifier     middleware.TokenVerifier
	Logger       *slog.Logger
}

func SetupRouters(deps Dependencies) (*gin.Engine, error) {
	//建立Gin路由器
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(deps.Logger), middleware.CORS())
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	////無須登入
	//登入帳號
	router.POST("/auth", func(context *gin.Context) {
		handlers.LoginHandler(context, deps.Sessions)
	})
	//註冊帳號
	router.POST("/users", func(context *gin.Context) {
		handlers.RegisterHandler(context, deps.Sessions)
	})
	//查詢商品列表
	router.GET("/products", func(context *gin.Context) {
		handlers.GetProductListHandler(context, deps.ProductCache)
	})
	//查詢商品詳細資料
	router.GET("/products/:productID", func(context *gin.Context) {
		handlers.GetProductDataHandler(context, deps.Products)
	})

	////需要登入，使用中間件驗證Token並載入使用者
	loginRequired := router.Group("/")
	loginRequired.Use(middleware.Authenticate(deps.Verifier, deps.Users, deps.Logger))
	{
		//修改使用者資料
		loginRequired.PUT("/users", middleware.RequireCapability(models.CapabilityProfileWrite), func(context *gin.Context) {
			handlers.UpdateUserProfileHandler(context, deps.Profiles)
		})
		//查詢使用者資料
		loginRequired.GET("/users/me", func(context *gin.Context) {
			handlers.GetUserProfileHandler(context, deps.Users)
		})
		//查詢使用者評分
		loginRequired.GET("/users/me/rates", func(context *gin.Context) {
			handlers.GetUserRatesHandler(context, deps.Activity)
		})
		//查詢使用者留言
		loginRequired.GET("/users/me/comments", func(context *gin.Context) {
			handlers.GetUserCommentsHandler(context, deps.Activity)
		})
		//建立購物車
		loginRequired.POST("/carts", middleware.RequireCapability(models.CapabilityCartWrite), func(context *gin.Context) {
			handlers.CreateCartHandler(context, deps.Carts)
		})
		//查詢購物車，需要cart:read權限
		loginRequired.GET("/carts", middleware.RequireCapability(models.CapabilityCartRead), func(context *gin.Context) {
			handlers.GetCartHandler(context, deps.Carts)
		})
		//以商品目錄比對並替換購物車內容
		loginRequired.PUT("/carts/:id", middleware.RequireCapability(models.CapabilityCartWrite), func(context *gin.Context) {
			handlers.ReconcileCartHandler(context, deps.Carts)
		})
	}

	return router, nil
}
