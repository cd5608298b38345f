package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smoko_shop_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// UserRepository 用户仓储接口
type UserRepository interface {
	Get(ctx context.Context, userID int64) (*model.UserAccount, error)
	CreateIfAbsent(ctx context.Context, user *model.UserAccount) error
	UpdateFields(ctx context.Context, userID int64, fields map[string]interface{}) error
	IncrementSpend(ctx context.Context, userID int64, delta int64) error
	ListIDs(ctx context.Context) ([]int64, error)

	// 事务
	WithTx(tx *gorm.DB) UserRepository
}

// ==================== 仓储实现 ====================

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Get(ctx context.Context, userID int64) (*model.UserAccount, error) {
	var user model.UserAccount
	err := r.db.WithContext(ctx).First(&user, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) CreateIfAbsent(ctx context.Context, user *model.UserAccount) error {
	// 重复注册直接忽略，首次注册落默认值
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(user).Error
}

func (r *userRepo) UpdateFields(ctx context.Context, userID int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.UserAccount{}).
		Where("user_id = ?", userID).
		Updates(fields).Error
}

func (r *userRepo) IncrementSpend(ctx context.Context, userID int64, delta int64) error {
	return r.db.WithContext(ctx).
		Model(&model.UserAccount{}).
		Where("user_id = ?", userID).
		Update("spend", gorm.Expr("spend + ?", delta)).Error
}

func (r *userRepo) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.UserAccount{}).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *userRepo) WithTx(tx *gorm.DB) UserRepository {
	return &userRepo{db: tx}
}
