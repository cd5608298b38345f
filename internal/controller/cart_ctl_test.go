package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"smoko_shop_v1_202608/internal/api/dto"
	"smoko_shop_v1_202608/internal/model"
	"smoko_shop_v1_202608/internal/repository"
	"smoko_shop_v1_202608/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试辅助 ====================

// setupCartCtlFixture 全栈接线：真实服务 + 内存库，返回路由和口味编码
func setupCartCtlFixture(t *testing.T) (*gin.Engine, string) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.TaxonomyNode{}, &model.CodeCounter{}, &model.ProductAttrs{},
		&model.CartLine{}, &model.UserAccount{},
	); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}

	nodeRepo := repository.NewNodeRepository(db)
	attrsRepo := repository.NewAttrsRepository(db)
	cartRepo := repository.NewCartRepository(db)
	userRepo := repository.NewUserRepository(db)
	locks := service.NewKeyedMutex()

	catalogSvc := service.NewCatalogService(db, nodeRepo, attrsRepo)
	cartSvc := service.NewCartService(cartRepo, nodeRepo, userRepo, locks)
	userSvc := service.NewUserService(userRepo)
	pricingSvc := service.NewPricingService()

	ctx := context.Background()
	cat, _ := catalogSvc.FindOrCreateChild(ctx, "", "Жидкости")
	brand, _ := catalogSvc.FindOrCreateChild(ctx, cat, "Brusko")
	variant, err := catalogSvc.FindOrCreateChild(ctx, brand, "Мята")
	if err != nil {
		t.Fatalf("构建目录失败: %v", err)
	}

	ctl := NewCartController(cartSvc, catalogSvc, userSvc, pricingSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	users := r.Group("/api/users")
	{
		users.GET("/:userId/cart", ctl.GetCart)
		users.POST("/:userId/cart", ctl.AddLine)
		users.PUT("/:userId/cart/:code", ctl.SetQuantity)
		users.DELETE("/:userId/cart/:code", ctl.RemoveLine)
	}
	return r, variant
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("序列化请求失败: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== 测试用例 ====================

func TestCartController_AddAndGet(t *testing.T) {
	r, variant := setupCartCtlFixture(t)

	// 加购两次
	for want := 1; want <= 2; want++ {
		w := postJSON(t, r, "/api/users/100/cart", dto.CartAddReq{
			VariantCode: variant,
			UnitPrice:   "100",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("code = %d, body = %s", w.Code, w.Body.String())
		}
		var resp dto.CartAddResp
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Quantity != want {
			t.Errorf("quantity = %d, want %d", resp.Quantity, want)
		}
	}

	// 读车
	req := httptest.NewRequest(http.MethodGet, "/api/users/100/cart", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, body = %s", w.Code, w.Body.String())
	}
	var cart dto.CartListResp
	json.Unmarshal(w.Body.Bytes(), &cart)
	if len(cart.List) != 1 {
		t.Fatalf("len = %d, want 1", len(cart.List))
	}
	if cart.List[0].Description != "Жидкости Brusko Мята" {
		t.Errorf("description = %q", cart.List[0].Description)
	}
	if cart.Total != 200 {
		t.Errorf("total = %d, want 200", cart.Total)
	}
}

func TestCartController_SetQuantityRejectsZero(t *testing.T) {
	r, variant := setupCartCtlFixture(t)

	postJSON(t, r, "/api/users/100/cart", dto.CartAddReq{VariantCode: variant, UnitPrice: "100"})

	raw, _ := json.Marshal(dto.CartQuantityReq{Quantity: 0})
	req := httptest.NewRequest(http.MethodPut, "/api/users/100/cart/"+variant, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// binding required 把 0 挡在 400，负数走到服务层挡在 409
	if w.Code != http.StatusBadRequest && w.Code != http.StatusConflict {
		t.Errorf("code = %d, want 400/409", w.Code)
	}
}

func TestCartController_AddInvalidCode(t *testing.T) {
	r, _ := setupCartCtlFixture(t)

	w := postJSON(t, r, "/api/users/100/cart", dto.CartAddReq{
		VariantCode: "abc_def",
		UnitPrice:   "100",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("code = %d, want 404", w.Code)
	}
}

func TestCartController_RemoveLine(t *testing.T) {
	r, variant := setupCartCtlFixture(t)

	postJSON(t, r, "/api/users/100/cart", dto.CartAddReq{VariantCode: variant, UnitPrice: "100"})

	req := httptest.NewRequest(http.MethodDelete, "/api/users/100/cart/"+variant, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/users/100/cart", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var cart dto.CartListResp
	json.Unmarshal(w.Body.Bytes(), &cart)
	if len(cart.List) != 0 {
		t.Errorf("len = %d, want 0", len(cart.List))
	}
}
