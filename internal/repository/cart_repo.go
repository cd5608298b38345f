package repository

import (
	"context"

	"gorm.io/gorm"

	"smoko_shop_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// CartRepository 购物车仓储接口
type CartRepository interface {
	GetLine(ctx context.Context, userID int64, variantCode string) (*model.CartLine, error)
	Insert(ctx context.Context, line *model.CartLine) error
	UpdateQuantity(ctx context.Context, userID int64, variantCode string, quantity int) error
	DeleteLine(ctx context.Context, userID int64, variantCode string) error
	ListByUser(ctx context.Context, userID int64) ([]model.CartLine, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	DeleteByUser(ctx context.Context, userID int64) error

	// 事务
	WithTx(tx *gorm.DB) CartRepository
	Transaction(ctx context.Context, fn func(txRepo CartRepository) error) error
}

// ==================== 仓储实现 ====================

type cartRepo struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) GetLine(ctx context.Context, userID int64, variantCode string) (*model.CartLine, error) {
	var line model.CartLine
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND variant_code = ?", userID, variantCode).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *cartRepo) Insert(ctx context.Context, line *model.CartLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *cartRepo) UpdateQuantity(ctx context.Context, userID int64, variantCode string, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&model.CartLine{}).
		Where("user_id = ? AND variant_code = ?", userID, variantCode).
		Update("quantity", quantity).Error
}

func (r *cartRepo) DeleteLine(ctx context.Context, userID int64, variantCode string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND variant_code = ?", userID, variantCode).
		Delete(&model.CartLine{}).Error
}

func (r *cartRepo) ListByUser(ctx context.Context, userID int64) ([]model.CartLine, error) {
	var lines []model.CartLine
	// 主键自增，按它排序即插入顺序，"N из M" 导航依赖这一点
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&lines).Error
	return lines, err
}

func (r *cartRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CartLine{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *cartRepo) DeleteByUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartLine{}).Error
}

func (r *cartRepo) WithTx(tx *gorm.DB) CartRepository {
	return &cartRepo{db: tx}
}

func (r *cartRepo) Transaction(ctx context.Context, fn func(txRepo CartRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
