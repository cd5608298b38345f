package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"smoko_shop_v1_202608/internal/model"
	"smoko_shop_v1_202608/internal/repository"
)

// ==================== UserService ====================

// UserService 用户档案服务
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建用户档案服务
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register 注册用户（幂等），记录起始消息引用
func (s *UserService) Register(ctx context.Context, userID, startMessageID int64) (*model.UserAccount, error) {
	err := s.userRepo.CreateIfAbsent(ctx, &model.UserAccount{
		UserID:         userID,
		FirstClient:    true,
		StartMessageID: startMessageID,
	})
	if err != nil {
		return nil, fmt.Errorf("注册用户失败: %w", err)
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("读取用户失败: %w", err)
	}
	// 老用户没落过起始引用的补一次
	if user.StartMessageID == 0 && startMessageID != 0 {
		if err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{
			"start_message_id": startMessageID,
		}); err != nil {
			return nil, fmt.Errorf("更新起始引用失败: %w", err)
		}
		user.StartMessageID = startMessageID
	}
	return user, nil
}

// Get 读取用户档案
func (s *UserService) Get(ctx context.Context, userID int64) (*model.UserAccount, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("读取用户失败: %w", err)
	}
	return user, nil
}

// ArmFirstOrderDiscount 领取首单 9 折：只有 first_client 用户能领一次
func (s *UserService) ArmFirstOrderDiscount(ctx context.Context, userID int64) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !user.FirstClient {
		return fmt.Errorf("%w: 首单优惠已领取过", ErrInvalidState)
	}
	return s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{
		"first_pressed": true,
		"first_client":  false,
	})
}

// History 返回用户的订单历史文本，从未下过单返回空串
func (s *UserService) History(ctx context.Context, userID int64) (string, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if !user.HasHistory() {
		return "", nil
	}
	return user.History, nil
}

// OrderedProducts 返回可评价的商品名列表（来自已购清单）
func (s *UserService) OrderedProducts(ctx context.Context, userID int64) ([]string, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Products == "" || user.Products == "None" {
		return nil, nil
	}
	// 清单以逗号结尾，最后一个空段丢掉
	parts := strings.Split(user.Products, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

// SetBanned 设置封禁标记
func (s *UserService) SetBanned(ctx context.Context, userID int64, banned bool) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{
		"banned": banned,
	})
}

// ListUserIDs 枚举全部用户 ID（对账扫描、运营群发的数据入口）
func (s *UserService) ListUserIDs(ctx context.Context) ([]int64, error) {
	ids, err := s.userRepo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("枚举用户失败: %w", err)
	}
	return ids, nil
}
