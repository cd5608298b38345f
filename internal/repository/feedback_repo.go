package repository

import (
	"context"

	"gorm.io/gorm"

	"smoko_shop_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// FeedbackRepository 评价仓储接口（待审核队列 + 已发布列表）
type FeedbackRepository interface {
	// 待审核队列
	CreatePending(ctx context.Context, fb *model.Feedback) error
	GetPending(ctx context.Context, id int64) (*model.Feedback, error)
	ListPending(ctx context.Context) ([]model.Feedback, error)
	CountPending(ctx context.Context) (int64, error)
	DeletePending(ctx context.Context, id int64) error
	DeletePendingByChat(ctx context.Context, chatID int64) error

	// 已发布列表
	CreatePublished(ctx context.Context, fb *model.PublishedFeedback) error
	ListPublished(ctx context.Context) ([]model.PublishedFeedback, error)

	// 事务
	WithTx(tx *gorm.DB) FeedbackRepository
	Transaction(ctx context.Context, fn func(txRepo FeedbackRepository) error) error
}

// ==================== 仓储实现 ====================

type feedbackRepo struct {
	db *gorm.DB
}

// NewFeedbackRepository 创建评价仓储
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepo{db: db}
}

func (r *feedbackRepo) CreatePending(ctx context.Context, fb *model.Feedback) error {
	return r.db.WithContext(ctx).Create(fb).Error
}

func (r *feedbackRepo) GetPending(ctx context.Context, id int64) (*model.Feedback, error) {
	var fb model.Feedback
	err := r.db.WithContext(ctx).First(&fb, id).Error
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

func (r *feedbackRepo) ListPending(ctx context.Context) ([]model.Feedback, error) {
	var fbs []model.Feedback
	err := r.db.WithContext(ctx).Order("id ASC").Find(&fbs).Error
	return fbs, err
}

func (r *feedbackRepo) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Feedback{}).Count(&count).Error
	return count, err
}

func (r *feedbackRepo) DeletePending(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Feedback{}, id).Error
}

func (r *feedbackRepo) DeletePendingByChat(ctx context.Context, chatID int64) error {
	return r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Delete(&model.Feedback{}).Error
}

func (r *feedbackRepo) CreatePublished(ctx context.Context, fb *model.PublishedFeedback) error {
	return r.db.WithContext(ctx).Create(fb).Error
}

func (r *feedbackRepo) ListPublished(ctx context.Context) ([]model.PublishedFeedback, error) {
	var fbs []model.PublishedFeedback
	err := r.db.WithContext(ctx).Order("id ASC").Find(&fbs).Error
	return fbs, err
}

func (r *feedbackRepo) WithTx(tx *gorm.DB) FeedbackRepository {
	return &feedbackRepo{db: tx}
}

func (r *feedbackRepo) Transaction(ctx context.Context, fn func(txRepo FeedbackRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
