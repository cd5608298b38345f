package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smoko_shop_v1_202608/internal/controller"
	"smoko_shop_v1_202608/internal/middleware"
	"smoko_shop_v1_202608/internal/model"
	"smoko_shop_v1_202608/internal/repository"
	"smoko_shop_v1_202608/internal/router"
	"smoko_shop_v1_202608/internal/service"
	"smoko_shop_v1_202608/internal/task"
	"smoko_shop_v1_202608/pkg/database"
)

func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	initTasks(deps)

	// 4. 初始化路由
	r := gin.Default()
	router.InitRoutes(r,
		deps.Controllers.Auth,
		deps.Controllers.Catalog,
		deps.Controllers.Cart,
		deps.Controllers.Order,
		deps.Controllers.User,
		deps.Controllers.Sale,
		deps.Controllers.Feedback,
	)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Node     repository.NodeRepository
	Attrs    repository.AttrsRepository
	Cart     repository.CartRepository
	User     repository.UserRepository
	Order    repository.OrderRepository
	Sale     repository.SaleRepository
	Feedback repository.FeedbackRepository
}

// Services 服务集合
type Services struct {
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Pricing  *service.PricingService
	Order    *service.OrderService
	User     *service.UserService
	Sale     *service.SaleService
	Feedback *service.FeedbackService
	Notify   *service.NotifyService
}

// Controllers 控制器集合
type Controllers struct {
	Auth     *controller.AuthController
	Catalog  *controller.CatalogController
	Cart     *controller.CartController
	Order    *controller.OrderController
	User     *controller.UserController
	Sale     *controller.SaleController
	Feedback *controller.FeedbackController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	return database.InitDB(
		getEnv("DB_DRIVER", "sqlite"),
		getEnv("DB_DSN", "smoko_shop.db"),
		// Catalog
		&model.TaxonomyNode{}, &model.CodeCounter{}, &model.ProductAttrs{},
		// Cart & User
		&model.CartLine{}, &model.UserAccount{},
		// Order
		&model.Order{}, &model.OrderItem{},
		// Promo & Feedback
		&model.Sale{}, &model.Feedback{}, &model.PublishedFeedback{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- 业务服务 --------
	// 购物车与下单共用同一把按用户互斥锁
	locks := service.NewKeyedMutex()

	services := &Services{
		Catalog: service.NewCatalogService(db, repos.Node, repos.Attrs),
		Pricing: service.NewPricingService(),
		Notify:  service.NewNotifyService(getEnv("OPERATOR_WEBHOOK_URL", "")),
	}
	services.Cart = service.NewCartService(repos.Cart, repos.Node, repos.User, locks)
	services.Order = service.NewOrderService(
		db,
		repos.Cart, repos.Node, repos.User, repos.Order,
		services.Cart, services.Pricing, services.Notify,
		locks,
	)
	services.User = service.NewUserService(repos.User)
	services.Sale = service.NewSaleService(repos.Sale)
	services.Feedback = service.NewFeedbackService(repos.Feedback, repos.User)

	// -------- JWT 配置 --------
	if secret := getEnv("JWT_SECRET_KEY", ""); secret != "" {
		cfg := middleware.DefaultJWTConfig()
		cfg.SecretKey = secret
		middleware.SetJWTConfig(cfg)
	}

	// -------- Controller 层 --------
	controllers := initControllers(services)

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Node:     repository.NewNodeRepository(db),
		Attrs:    repository.NewAttrsRepository(db),
		Cart:     repository.NewCartRepository(db),
		User:     repository.NewUserRepository(db),
		Order:    repository.NewOrderRepository(db),
		Sale:     repository.NewSaleRepository(db),
		Feedback: repository.NewFeedbackRepository(db),
	}
}

// initControllers 初始化所有控制器
func initControllers(svc *Services) *Controllers {
	return &Controllers{
		Auth:     controller.NewAuthController(getEnv("ADMIN_PASSWORD_HASH", "")),
		Catalog:  controller.NewCatalogController(svc.Catalog),
		Cart:     controller.NewCartController(svc.Cart, svc.Catalog, svc.User, svc.Pricing),
		Order:    controller.NewOrderController(svc.Order),
		User:     controller.NewUserController(svc.User),
		Sale:     controller.NewSaleController(svc.Sale),
		Feedback: controller.NewFeedbackController(svc.Feedback),
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// 购物车对账
	reconcileTask := task.NewReconcileTask(
		deps.Services.User,
		deps.Services.Cart,
	)
	reconcileTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 10 秒
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
