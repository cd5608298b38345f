package repository

import (
	"context"

	"gorm.io/gorm"

	"smoko_shop_v1_202608/internal/model"
)

// OrderRepository 订单存档仓储接口
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByReceiptID(ctx context.Context, receiptID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)

	// 事务
	WithTx(tx *gorm.DB) OrderRepository
}

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单存档仓储
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *model.Order) error {
	// Items 随主表一并写入
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepo) GetByReceiptID(ctx context.Context, receiptID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("receipt_id = ?", receiptID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) WithTx(tx *gorm.DB) OrderRepository {
	return &orderRepo{db: tx}
}
