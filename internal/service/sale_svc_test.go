package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"smoko_shop_v1_202608/internal/model"
	"smoko_shop_v1_202608/internal/repository"
)

func setupSaleService(t *testing.T) *SaleService {
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

	if err := db.AutoMigrate(&model.Sale{}); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
	return NewSaleService(repository.NewSaleRepository(db))
}

func TestSaleService_CRUD(t *testing.T) {
	svc := setupSaleService(t)
	ctx := context.Background()

	sale, err := svc.Create(ctx, "Скидка недели", "Вся линейка Brusko -15%")
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if sale.ID == 0 {
		t.Error("未分配 ID")
	}

	got, err := svc.Get(ctx, sale.ID)
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if got.Title != "Скидка недели" {
		t.Errorf("title = %s", got.Title)
	}

	list, _ := svc.List(ctx)
	if len(list) != 1 {
		t.Errorf("len = %d, want 1", len(list))
	}

	if err := svc.Delete(ctx, sale.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := svc.Get(ctx, sale.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, sale.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("重复删除 err = %v, want ErrNotFound", err)
	}
}
