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

// ==================== 测试辅助 ====================

func setupUserTestDB(t *testing.T) *gorm.DB {
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

	if err := db.AutoMigrate(&model.UserAccount{}); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
	return db
}

// ==================== 单元测试 ====================

func TestUserService_Register(t *testing.T) {
	db := setupUserTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	user, err := svc.Register(ctx, 100, 555)
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if !user.FirstClient {
		t.Error("新用户应为 first_client")
	}
	if user.StartMessageID != 555 {
		t.Errorf("start_message_id = %d, want 555", user.StartMessageID)
	}

	// 幂等：重复注册不重置档案
	db.Model(&model.UserAccount{}).Where("user_id = ?", 100).Update("spend", 700)
	again, err := svc.Register(ctx, 100, 556)
	if err != nil {
		t.Fatalf("重复注册失败: %v", err)
	}
	if again.Spend != 700 {
		t.Errorf("重复注册重置了 spend: %d", again.Spend)
	}
	if again.StartMessageID != 555 {
		t.Errorf("已有起始引用被覆盖: %d", again.StartMessageID)
	}
}

func TestUserService_ArmFirstOrderDiscount(t *testing.T) {
	db := setupUserTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	svc.Register(ctx, 100, 0)

	if err := svc.ArmFirstOrderDiscount(ctx, 100); err != nil {
		t.Fatalf("领取首单优惠失败: %v", err)
	}
	user, _ := svc.Get(ctx, 100)
	if !user.FirstPressed || user.FirstClient {
		t.Errorf("优惠状态错误: %+v", user)
	}

	// 只能领一次
	if err := svc.ArmFirstOrderDiscount(ctx, 100); !errors.Is(err, ErrInvalidState) {
		t.Errorf("err = %v, want ErrInvalidState", err)
	}

	if err := svc.ArmFirstOrderDiscount(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUserService_HistoryAndProducts(t *testing.T) {
	db := setupUserTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	svc.Register(ctx, 100, 0)

	// 从未下过单
	history, err := svc.History(ctx, 100)
	if err != nil {
		t.Fatalf("读取历史失败: %v", err)
	}
	if history != "" {
		t.Errorf("history = %q, want 空", history)
	}
	products, _ := svc.OrderedProducts(ctx, 100)
	if len(products) != 0 {
		t.Errorf("products = %v, want 空", products)
	}

	// 迁移过来的老数据里有字面量 "None"
	db.Model(&model.UserAccount{}).Where("user_id = ?", 100).Updates(map[string]interface{}{
		"history":  "None",
		"products": "None",
	})
	history, _ = svc.History(ctx, 100)
	if history != "" {
		t.Errorf("history = %q, want 空", history)
	}

	db.Model(&model.UserAccount{}).Where("user_id = ?", 100).Update("products", "Мята,Вишня,")
	products, _ = svc.OrderedProducts(ctx, 100)
	if len(products) != 2 || products[0] != "Мята" || products[1] != "Вишня" {
		t.Errorf("products = %v", products)
	}
}

func TestUserService_SetBanned(t *testing.T) {
	db := setupUserTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	svc.Register(ctx, 100, 0)

	if err := svc.SetBanned(ctx, 100, true); err != nil {
		t.Fatalf("封禁失败: %v", err)
	}
	user, _ := svc.Get(ctx, 100)
	if !user.Banned {
		t.Error("banned 未生效")
	}
	if user.CanReview() {
		t.Error("封禁用户不应允许评价")
	}

	if err := svc.SetBanned(ctx, 100, false); err != nil {
		t.Fatalf("解封失败: %v", err)
	}
	user, _ = svc.Get(ctx, 100)
	if user.Banned {
		t.Error("解封未生效")
	}
}
