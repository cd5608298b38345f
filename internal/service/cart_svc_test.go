package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"smoko_shop_v1_202608/internal/model"
	"smoko_shop_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupCartTestDB(t *testing.T) *gorm.DB {
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
	return db
}

// cartFixture 建好一条三级口味链，返回口味编码
func cartFixture(t *testing.T, db *gorm.DB) (*CartService, *CatalogService, string) {
	catalogSvc := newCatalogService(db)
	ctx := context.Background()

	cat, _ := catalogSvc.FindOrCreateChild(ctx, "", "Жидкости")
	brand, _ := catalogSvc.FindOrCreateChild(ctx, cat, "Brusko")
	variant, err := catalogSvc.FindOrCreateChild(ctx, brand, "Мята")
	if err != nil {
		t.Fatalf("构建目录失败: %v", err)
	}

	cartSvc := NewCartService(
		repository.NewCartRepository(db),
		repository.NewNodeRepository(db),
		repository.NewUserRepository(db),
		NewKeyedMutex(),
	)
	return cartSvc, catalogSvc, variant
}

// ==================== 单元测试 ====================

func TestCartService_AddOrIncrement(t *testing.T) {
	db := setupCartTestDB(t)
	cartSvc, _, variant := cartFixture(t, db)
	ctx := context.Background()

	if err := cartSvc.EnsureCart(ctx, 100); err != nil {
		t.Fatalf("建车失败: %v", err)
	}

	qty, err := cartSvc.AddOrIncrement(ctx, 100, variant, "100")
	if err != nil {
		t.Fatalf("加购失败: %v", err)
	}
	if qty != 1 {
		t.Errorf("qty = %d, want 1", qty)
	}

	qty, err = cartSvc.AddOrIncrement(ctx, 100, variant, "100")
	if err != nil {
		t.Fatalf("重复加购失败: %v", err)
	}
	if qty != 2 {
		t.Errorf("qty = %d, want 2", qty)
	}

	// 单行不翻倍
	lines, _ := cartSvc.List(ctx, 100)
	if len(lines) != 1 {
		t.Fatalf("len = %d, want 1", len(lines))
	}
	if lines[0].UnitPrice != "100₽" {
		t.Errorf("快照价格 = %s, want 100₽", lines[0].UnitPrice)
	}

	// 非法编码直接拒绝
	if _, err := cartSvc.AddOrIncrement(ctx, 100, "abc_def", "100"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCartService_AddOrIncrement_Concurrent(t *testing.T) {
	db := setupCartTestDB(t)
	cartSvc, _, variant := cartFixture(t, db)
	ctx := context.Background()

	cartSvc.EnsureCart(ctx, 100)

	// 两个并发加购不能丢数量
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cartSvc.AddOrIncrement(ctx, 100, variant, "100"); err != nil {
				t.Errorf("并发加购失败: %v", err)
			}
		}()
	}
	wg.Wait()

	lines, _ := cartSvc.List(ctx, 100)
	if len(lines) != 1 {
		t.Fatalf("len = %d, want 1", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Errorf("qty = %d, want 2", lines[0].Quantity)
	}
}

func TestCartService_SetQuantity(t *testing.T) {
	db := setupCartTestDB(t)
	cartSvc, _, variant := cartFixture(t, db)
	ctx := context.Background()

	cartSvc.EnsureCart(ctx, 100)
	cartSvc.AddOrIncrement(ctx, 100, variant, "100")

	if err := cartSvc.SetQuantity(ctx, 100, variant, 5); err != nil {
		t.Fatalf("设置数量失败: %v", err)
	}
	lines, _ := cartSvc.List(ctx, 100)
	if lines[0].Quantity != 5 {
		t.Errorf("qty = %d, want 5", lines[0].Quantity)
	}

	// 数量低于 1 一律拒绝，归零只能走删除
	if err := cartSvc.SetQuantity(ctx, 100, variant, 0); !errors.Is(err, ErrInvalidState) {
		t.Errorf("err = %v, want ErrInvalidState", err)
	}
	if err := cartSvc.SetQuantity(ctx, 100, variant, -3); !errors.Is(err, ErrInvalidState) {
		t.Errorf("err = %v, want ErrInvalidState", err)
	}

	// 不在车里的行
	if err := cartSvc.SetQuantity(ctx, 100, "1_1", 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCartService_RemoveAndClear(t *testing.T) {
	db := setupCartTestDB(t)
	cartSvc, catalogSvc, variant := cartFixture(t, db)
	ctx := context.Background()

	other, _ := catalogSvc.FindOrCreateChild(ctx, "1_1", "Вишня")

	cartSvc.EnsureCart(ctx, 100)
	cartSvc.AddOrIncrement(ctx, 100, variant, "100")
	cartSvc.AddOrIncrement(ctx, 100, other, "200")

	if err := cartSvc.Remove(ctx, 100, variant); err != nil {
		t.Fatalf("删行失败: %v", err)
	}
	lines, _ := cartSvc.List(ctx, 100)
	if len(lines) != 1 || lines[0].VariantCode != other {
		t.Errorf("lines = %v", lines)
	}

	if err := cartSvc.Clear(ctx, 100); err != nil {
		t.Fatalf("清空失败: %v", err)
	}
	lines, _ = cartSvc.List(ctx, 100)
	if len(lines) != 0 {
		t.Errorf("len = %d, want 0", len(lines))
	}
}

func TestCartService_ListOrderStable(t *testing.T) {
	db := setupCartTestDB(t)
	cartSvc, catalogSvc, variant := cartFixture(t, db)
	ctx := context.Background()

	second, _ := catalogSvc.FindOrCreateChild(ctx, "1_1", "Вишня")
	third, _ := catalogSvc.FindOrCreateChild(ctx, "1_1", "Арбуз")

	cartSvc.EnsureCart(ctx, 100)
	cartSvc.AddOrIncrement(ctx, 100, variant, "100")
	cartSvc.AddOrIncrement(ctx, 100, second, "200")
	cartSvc.AddOrIncrement(ctx, 100, third, "300")
	// 已有行再加购不改变位置
	cartSvc.AddOrIncrement(ctx, 100, variant, "100")

	lines, _ := cartSvc.List(ctx, 100)
	want := []string{variant, second, third}
	if len(lines) != 3 {
		t.Fatalf("len = %d, want 3", len(lines))
	}
	for i, code := range want {
		if lines[i].VariantCode != code {
			t.Errorf("lines[%d] = %s, want %s", i, lines[i].VariantCode, code)
		}
	}
}

func TestCartService_Reconcile(t *testing.T) {
	db := setupCartTestDB(t)
	cartSvc, catalogSvc, variant := cartFixture(t, db)
	ctx := context.Background()

	doomed, _ := catalogSvc.FindOrCreateChild(ctx, "1_1", "Вишня")

	cartSvc.EnsureCart(ctx, 100)
	cartSvc.AddOrIncrement(ctx, 100, variant, "100")
	cartSvc.AddOrIncrement(ctx, 100, doomed, "200")

	// 运营删掉一个口味
	if err := catalogSvc.DeleteLeaf(ctx, doomed); err != nil {
		t.Fatalf("删除口味失败: %v", err)
	}

	if err := cartSvc.ReconcileAgainstCatalog(ctx, 100); err != nil {
		t.Fatalf("对账失败: %v", err)
	}

	lines, _ := cartSvc.List(ctx, 100)
	if len(lines) != 1 {
		t.Fatalf("len = %d, want 1", len(lines))
	}
	if lines[0].VariantCode != variant {
		t.Errorf("幸存行 = %s, want %s", lines[0].VariantCode, variant)
	}
}
