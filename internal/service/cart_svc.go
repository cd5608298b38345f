package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"smoko_shop_v1_202608/internal/model"
	"smoko_shop_v1_202608/internal/repository"
	"smoko_shop_v1_202608/pkg/pathcode"
)

// ==================== CartService ====================

// CartService 购物车服务
//
// 同一用户的全部购物车变更（以及下单）经由 locks 串行，
// 两个并发加购不会丢数量，下单不会重复清车。
type CartService struct {
	cartRepo repository.CartRepository
	nodeRepo repository.NodeRepository
	userRepo repository.UserRepository
	locks    *KeyedMutex // 与 OrderService 共用同一把
}

// NewCartService 创建购物车服务
func NewCartService(
	cartRepo repository.CartRepository,
	nodeRepo repository.NodeRepository,
	userRepo repository.UserRepository,
	locks *KeyedMutex,
) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		nodeRepo: nodeRepo,
		userRepo: userRepo,
		locks:    locks,
	}
}

// ==================== 变更 ====================

// EnsureCart 幂等建车：保证用户档案行存在（单表购物车本身无需建表）
func (s *CartService) EnsureCart(ctx context.Context, userID int64) error {
	err := s.userRepo.CreateIfAbsent(ctx, &model.UserAccount{
		UserID:      userID,
		FirstClient: true,
	})
	if err != nil {
		return fmt.Errorf("初始化用户购物车失败: %w", err)
	}
	return nil
}

// AddOrIncrement 加购：无此口味则插入数量 1，有则数量 +1，返回新数量
// unitPrice 是加购瞬间的快照价格，之后商品改价不影响已有行
func (s *CartService) AddOrIncrement(ctx context.Context, userID int64, variantCode, unitPrice string) (int, error) {
	if !pathcode.Valid(variantCode) {
		return 0, ErrNotFound
	}

	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	line, err := s.cartRepo.GetLine(ctx, userID, variantCode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		newLine := &model.CartLine{
			UserID:      userID,
			VariantCode: variantCode,
			UnitPrice:   model.NormalizePrice(unitPrice),
			Quantity:    1,
		}
		if err := s.cartRepo.Insert(ctx, newLine); err != nil {
			return 0, fmt.Errorf("加入购物车失败: %w", err)
		}
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("查询购物车失败: %w", err)
	}

	newQty := line.Quantity + 1
	if err := s.cartRepo.UpdateQuantity(ctx, userID, variantCode, newQty); err != nil {
		return 0, fmt.Errorf("更新购物车数量失败: %w", err)
	}
	return newQty, nil
}

// SetQuantity 直接设置数量，quantity < 1 一律拒绝
// 数量为 1 时继续减不是静默钳到 1，而是 ErrInvalidState，
// 界面要提示「меньше некуда」并引导用户删行
func (s *CartService) SetQuantity(ctx context.Context, userID int64, variantCode string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: 数量不能低于 1，请改用删除", ErrInvalidState)
	}

	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	if _, err := s.cartRepo.GetLine(ctx, userID, variantCode); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("查询购物车失败: %w", err)
	}
	if err := s.cartRepo.UpdateQuantity(ctx, userID, variantCode, quantity); err != nil {
		return fmt.Errorf("更新购物车数量失败: %w", err)
	}
	return nil
}

// Remove 删除购物车行，归零的唯一合法途径
func (s *CartService) Remove(ctx context.Context, userID int64, variantCode string) error {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	if err := s.cartRepo.DeleteLine(ctx, userID, variantCode); err != nil {
		return fmt.Errorf("删除购物车行失败: %w", err)
	}
	return nil
}

// Clear 清空购物车（下单提交后调用）
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	if err := s.cartRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("清空购物车失败: %w", err)
	}
	return nil
}

// ==================== 枚举与对账 ====================

// List 枚举购物车行，顺序稳定（插入顺序），导航控件依赖它
func (s *CartService) List(ctx context.Context, userID int64) ([]model.CartLine, error) {
	lines, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("枚举购物车失败: %w", err)
	}
	return lines, nil
}

// ReconcileAgainstCatalog 对账：口味节点已被运营删掉的行静默丢弃
// 任何购物车渲染之前都要先跑一遍
func (s *CartService) ReconcileAgainstCatalog(ctx context.Context, userID int64) error {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	return s.reconcileLocked(ctx, s.cartRepo, s.nodeRepo, userID)
}

// reconcileLocked 对账核心，调用方必须已持有该用户的锁
// 仓储由调用方传入，下单事务里传的是事务内的仓储
func (s *CartService) reconcileLocked(ctx context.Context, cartRepo repository.CartRepository, nodeRepo repository.NodeRepository, userID int64) error {
	lines, err := cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("枚举购物车失败: %w", err)
	}
	for _, line := range lines {
		localID, err := pathcode.LastSegment(line.VariantCode)
		if err != nil {
			// 编码都解析不了，直接当孤儿删掉
			if err := cartRepo.DeleteLine(ctx, userID, line.VariantCode); err != nil {
				return fmt.Errorf("清理孤儿购物车行失败: %w", err)
			}
			continue
		}
		exists, err := nodeRepo.Exists(ctx, pathcode.Parent(line.VariantCode), localID)
		if err != nil {
			return fmt.Errorf("校验口味节点失败: %w", err)
		}
		if !exists {
			if err := cartRepo.DeleteLine(ctx, userID, line.VariantCode); err != nil {
				return fmt.Errorf("清理孤儿购物车行失败: %w", err)
			}
		}
	}
	return nil
}
