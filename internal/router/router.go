package router

import (
	"github.com/gin-gonic/gin"

	"smoko_shop_v1_202608/internal/controller"
	"smoko_shop_v1_202608/internal/middleware"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	authCtl *controller.AuthController,
	catalogCtl *controller.CatalogController,
	cartCtl *controller.CartController,
	orderCtl *controller.OrderController,
	userCtl *controller.UserController,
	saleCtl *controller.SaleController,
	feedbackCtl *controller.FeedbackController) {

	api := r.Group("/api")
	{
		// auth 鉴权组
		auth := api.Group("/auth")
		{
			// POST /api/auth/login
			auth.POST("/login", authCtl.Login)
		}

		// catalog 目录浏览（会话层直接调）
		catalog := api.Group("/catalog")
		{
			// GET /api/catalog/children?parent_code=2_1
			catalog.GET("/children", catalogCtl.GetChildren)
			catalog.GET("/products/:code", catalogCtl.GetProduct)
		}

		// user 用户档案
		users := api.Group("/users")
		{
			users.POST("", userCtl.Register)
			users.GET("/:userId", userCtl.GetUser)
			users.POST("/:userId/first-discount", userCtl.ArmFirstOrderDiscount)
			users.GET("/:userId/history", userCtl.GetHistory)
			users.GET("/:userId/products", userCtl.GetOrderedProducts)

			// cart 购物车挂在用户下
			users.GET("/:userId/cart", cartCtl.GetCart)
			users.POST("/:userId/cart", cartCtl.AddLine)
			users.PUT("/:userId/cart/:code", cartCtl.SetQuantity)
			users.DELETE("/:userId/cart/:code", cartCtl.RemoveLine)
			users.DELETE("/:userId/cart", cartCtl.ClearCart)

			// order 下单
			users.POST("/:userId/orders", orderCtl.CommitOrder)
		}

		// sale 促销展示
		sales := api.Group("/sales")
		{
			sales.GET("", saleCtl.GetSaleList)
			sales.GET("/:id", saleCtl.GetSaleDetail)
		}

		// feedback 评价
		feedbacks := api.Group("/feedbacks")
		{
			feedbacks.POST("", feedbackCtl.SubmitFeedback)
			feedbacks.GET("", feedbackCtl.GetPublished)
		}

		// admin 运营管理组，JWT 保护
		admin := api.Group("/admin", middleware.AdminAuth())
		{
			admin.POST("/catalog/nodes", catalogCtl.CreateNode)
			admin.PUT("/catalog/nodes/:code", catalogCtl.RenameNode)
			admin.DELETE("/catalog/nodes/:code", catalogCtl.DeleteSubtree)
			admin.PUT("/catalog/products/:code", catalogCtl.UpsertAttributes)
			admin.DELETE("/catalog/variants/:code", catalogCtl.DeleteVariant)

			admin.POST("/sales", saleCtl.CreateSale)
			admin.DELETE("/sales/:id", saleCtl.DeleteSale)

			admin.GET("/feedbacks/pending", feedbackCtl.GetPending)
			admin.POST("/feedbacks/:id/publish", feedbackCtl.PublishFeedback)
			admin.DELETE("/feedbacks/:id", feedbackCtl.DiscardFeedback)
			admin.POST("/feedbacks/:id/ban-author", feedbackCtl.BanAuthor)

			admin.PUT("/users/:userId/ban", userCtl.SetBanned)
		}
	}
}
