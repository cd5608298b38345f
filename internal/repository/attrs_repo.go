package repository

import (
	"context"

	"gorm.io/gorm"

	"smoko_shop_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// AttrsRepository 商品属性仓储接口
type AttrsRepository interface {
	Create(ctx context.Context, attrs *model.ProductAttrs) error
	GetByCode(ctx context.Context, code string) (*model.ProductAttrs, error)
	UpdateFields(ctx context.Context, code string, fields map[string]interface{}) error
	DeleteByCode(ctx context.Context, code string) error
	DeleteByCodes(ctx context.Context, codes []string) error

	// 事务
	WithTx(tx *gorm.DB) AttrsRepository
}

// ==================== 仓储实现 ====================

type attrsRepo struct {
	db *gorm.DB
}

// NewAttrsRepository 创建商品属性仓储
func NewAttrsRepository(db *gorm.DB) AttrsRepository {
	return &attrsRepo{db: db}
}

func (r *attrsRepo) Create(ctx context.Context, attrs *model.ProductAttrs) error {
	return r.db.WithContext(ctx).Create(attrs).Error
}

func (r *attrsRepo) GetByCode(ctx context.Context, code string) (*model.ProductAttrs, error) {
	var attrs model.ProductAttrs
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&attrs).Error
	if err != nil {
		return nil, err
	}
	return &attrs, nil
}

func (r *attrsRepo) UpdateFields(ctx context.Context, code string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.ProductAttrs{}).
		Where("code = ?", code).
		Updates(fields).Error
}

func (r *attrsRepo) DeleteByCode(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).
		Where("code = ?", code).
		Delete(&model.ProductAttrs{}).Error
}

func (r *attrsRepo) DeleteByCodes(ctx context.Context, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("code IN ?", codes).
		Delete(&model.ProductAttrs{}).Error
}

func (r *attrsRepo) WithTx(tx *gorm.DB) AttrsRepository {
	return &attrsRepo{db: tx}
}
