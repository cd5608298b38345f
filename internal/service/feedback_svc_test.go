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

func setupFeedbackFixture(t *testing.T) (*gorm.DB, *FeedbackService) {
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
		&model.UserAccount{}, &model.Feedback{}, &model.PublishedFeedback{},
	); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}

	svc := NewFeedbackService(
		repository.NewFeedbackRepository(db),
		repository.NewUserRepository(db),
	)
	return db, svc
}

func seedUser(t *testing.T, db *gorm.DB, userID, spend int64, banned bool) {
	err := db.Create(&model.UserAccount{
		UserID: userID,
		Spend:  spend,
		Banned: banned,
	}).Error
	if err != nil {
		t.Fatalf("写入测试用户失败: %v", err)
	}
}

// ==================== 单元测试 ====================

func TestFeedbackService_Submit(t *testing.T) {
	db, svc := setupFeedbackFixture(t)
	ctx := context.Background()

	seedUser(t, db, 100, 300, false)

	fb, err := svc.Submit(ctx, 100, 42, "Мята")
	if err != nil {
		t.Fatalf("提交评价失败: %v", err)
	}
	if fb.ID == 0 {
		t.Error("评价未分配 ID")
	}

	pending, _ := svc.ListPending(ctx)
	if len(pending) != 1 {
		t.Errorf("待审核数 = %d, want 1", len(pending))
	}
}

func TestFeedbackService_Submit_Rejections(t *testing.T) {
	db, svc := setupFeedbackFixture(t)
	ctx := context.Background()

	seedUser(t, db, 1, 300, true)  // 被封禁
	seedUser(t, db, 2, 0, false)   // 没有消费记录

	if _, err := svc.Submit(ctx, 1, 42, "Мята"); !errors.Is(err, ErrBanned) {
		t.Errorf("err = %v, want ErrBanned", err)
	}
	if _, err := svc.Submit(ctx, 2, 42, "Мята"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("err = %v, want ErrInvalidState", err)
	}
	if _, err := svc.Submit(ctx, 999, 42, "Мята"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFeedbackService_Publish(t *testing.T) {
	db, svc := setupFeedbackFixture(t)
	ctx := context.Background()

	seedUser(t, db, 100, 300, false)
	fb, _ := svc.Submit(ctx, 100, 42, "Мята")

	published, err := svc.Publish(ctx, fb.ID)
	if err != nil {
		t.Fatalf("发布失败: %v", err)
	}
	if published.ChatID != 100 || published.MessageID != 42 || published.Product != "Мята" {
		t.Errorf("发布内容错误: %+v", published)
	}

	// 待审核队列清空，已发布列表出现
	pending, _ := svc.ListPending(ctx)
	if len(pending) != 0 {
		t.Errorf("待审核数 = %d, want 0", len(pending))
	}
	pubs, _ := svc.ListPublished(ctx)
	if len(pubs) != 1 {
		t.Errorf("已发布数 = %d, want 1", len(pubs))
	}

	if _, err := svc.Publish(ctx, fb.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("重复发布 err = %v, want ErrNotFound", err)
	}
}

func TestFeedbackService_Discard(t *testing.T) {
	db, svc := setupFeedbackFixture(t)
	ctx := context.Background()

	seedUser(t, db, 100, 300, false)
	fb, _ := svc.Submit(ctx, 100, 42, "Мята")

	if err := svc.Discard(ctx, fb.ID); err != nil {
		t.Fatalf("丢弃失败: %v", err)
	}
	pending, _ := svc.ListPending(ctx)
	if len(pending) != 0 {
		t.Errorf("待审核数 = %d, want 0", len(pending))
	}
	pubs, _ := svc.ListPublished(ctx)
	if len(pubs) != 0 {
		t.Errorf("丢弃不应发布: %d", len(pubs))
	}

	if err := svc.Discard(ctx, fb.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFeedbackService_BanAuthor(t *testing.T) {
	db, svc := setupFeedbackFixture(t)
	ctx := context.Background()

	seedUser(t, db, 100, 300, false)
	seedUser(t, db, 200, 300, false)

	fb1, _ := svc.Submit(ctx, 100, 41, "Мята")
	svc.Submit(ctx, 100, 42, "Вишня")
	other, _ := svc.Submit(ctx, 200, 43, "Арбуз")

	if err := svc.BanAuthor(ctx, fb1.ID); err != nil {
		t.Fatalf("封禁失败: %v", err)
	}

	// 作者被封，他排队中的评价全清，别人的不动
	var user model.UserAccount
	db.First(&user, 100)
	if !user.Banned {
		t.Error("作者未被封禁")
	}
	pending, _ := svc.ListPending(ctx)
	if len(pending) != 1 || pending[0].ID != other.ID {
		t.Errorf("队列清理错误: %+v", pending)
	}

	// 封禁后不能再提交
	if _, err := svc.Submit(ctx, 100, 44, "Мята"); !errors.Is(err, ErrBanned) {
		t.Errorf("err = %v, want ErrBanned", err)
	}
}
