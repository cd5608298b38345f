package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"smoko_shop_v1_202608/internal/model"
	"smoko_shop_v1_202608/internal/repository"
)

// ==================== FeedbackService ====================

// FeedbackService 评价服务
// 用户提交的评价先进待审核队列，运营审核后发布或丢弃，
// 恶意刷评的可以连人带队列一起封掉。
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	userRepo     repository.UserRepository
}

// NewFeedbackService 创建评价服务
func NewFeedbackService(feedbackRepo repository.FeedbackRepository, userRepo repository.UserRepository) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		userRepo:     userRepo,
	}
}

// Submit 提交评价进待审核队列
// 被封禁的用户返回 ErrBanned，从未消费的用户返回 ErrInvalidState
func (s *FeedbackService) Submit(ctx context.Context, chatID, messageID int64, product string) (*model.Feedback, error) {
	user, err := s.userRepo.Get(ctx, chatID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("读取用户失败: %w", err)
	}
	if user.Banned {
		return nil, ErrBanned
	}
	if !user.CanReview() {
		return nil, fmt.Errorf("%w: 没有消费记录，不能评价", ErrInvalidState)
	}

	fb := &model.Feedback{
		ChatID:    chatID,
		MessageID: messageID,
		Product:   product,
	}
	if err := s.feedbackRepo.CreatePending(ctx, fb); err != nil {
		return nil, fmt.Errorf("写入待审核评价失败: %w", err)
	}
	return fb, nil
}

// Publish 审核通过：从待审核队列搬到已发布列表
func (s *FeedbackService) Publish(ctx context.Context, id int64) (*model.PublishedFeedback, error) {
	var published *model.PublishedFeedback
	err := s.feedbackRepo.Transaction(ctx, func(txRepo repository.FeedbackRepository) error {
		fb, err := txRepo.GetPending(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("读取待审核评价失败: %w", err)
		}

		published = &model.PublishedFeedback{
			ChatID:    fb.ChatID,
			MessageID: fb.MessageID,
			Product:   fb.Product,
		}
		if err := txRepo.CreatePublished(ctx, published); err != nil {
			return fmt.Errorf("写入已发布评价失败: %w", err)
		}
		if err := txRepo.DeletePending(ctx, id); err != nil {
			return fmt.Errorf("清理待审核评价失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return published, nil
}

// Discard 审核丢弃
func (s *FeedbackService) Discard(ctx context.Context, id int64) error {
	if _, err := s.feedbackRepo.GetPending(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("读取待审核评价失败: %w", err)
	}
	return s.feedbackRepo.DeletePending(ctx, id)
}

// BanAuthor 封禁评价人并清掉他排队中的全部评价
func (s *FeedbackService) BanAuthor(ctx context.Context, id int64) error {
	fb, err := s.feedbackRepo.GetPending(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("读取待审核评价失败: %w", err)
	}

	if err := s.userRepo.UpdateFields(ctx, fb.ChatID, map[string]interface{}{
		"banned": true,
	}); err != nil {
		return fmt.Errorf("封禁用户失败: %w", err)
	}
	return s.feedbackRepo.DeletePendingByChat(ctx, fb.ChatID)
}

// ListPending 列出待审核队列
func (s *FeedbackService) ListPending(ctx context.Context) ([]model.Feedback, error) {
	fbs, err := s.feedbackRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("枚举待审核评价失败: %w", err)
	}
	return fbs, nil
}

// ListPublished 列出已发布评价
func (s *FeedbackService) ListPublished(ctx context.Context) ([]model.PublishedFeedback, error) {
	fbs, err := s.feedbackRepo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("枚举已发布评价失败: %w", err)
	}
	return fbs, nil
}
