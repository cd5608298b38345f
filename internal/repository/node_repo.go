package repository

import (
	"context"

	"gorm.io/gorm"

	"smoko_shop_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// NodeRepository 目录节点仓储接口
type NodeRepository interface {
	// 基础 CRUD
	Create(ctx context.Context, node *model.TaxonomyNode) error
	FindByLabel(ctx context.Context, parentCode, label string) (*model.TaxonomyNode, error)
	FindByLocalID(ctx context.Context, parentCode string, localID int) (*model.TaxonomyNode, error)
	ListChildren(ctx context.Context, parentCode string) ([]model.TaxonomyNode, error)
	Exists(ctx context.Context, parentCode string, localID int) (bool, error)
	Delete(ctx context.Context, parentCode string, localID int) error
	UpdateLabel(ctx context.Context, parentCode string, localID int, label string) error

	// 编号分配（计数器只增不减，编号删除后不复用）
	NextLocalID(ctx context.Context, parentCode string) (int, error)
	DeleteCounter(ctx context.Context, parentCode string) error

	// 事务
	WithTx(tx *gorm.DB) NodeRepository
	Transaction(ctx context.Context, fn func(txRepo NodeRepository) error) error
}

// ==================== 仓储实现 ====================

type nodeRepo struct {
	db *gorm.DB
}

// NewNodeRepository 创建目录节点仓储
func NewNodeRepository(db *gorm.DB) NodeRepository {
	return &nodeRepo{db: db}
}

func (r *nodeRepo) Create(ctx context.Context, node *model.TaxonomyNode) error {
	return r.db.WithContext(ctx).Create(node).Error
}

func (r *nodeRepo) FindByLabel(ctx context.Context, parentCode, label string) (*model.TaxonomyNode, error) {
	var node model.TaxonomyNode
	err := r.db.WithContext(ctx).
		Where("parent_code = ? AND label = ?", parentCode, label).
		First(&node).Error
	if err != nil {
		return nil, err
	}
	return &node, nil
}

func (r *nodeRepo) FindByLocalID(ctx context.Context, parentCode string, localID int) (*model.TaxonomyNode, error) {
	var node model.TaxonomyNode
	err := r.db.WithContext(ctx).
		Where("parent_code = ? AND local_id = ?", parentCode, localID).
		First(&node).Error
	if err != nil {
		return nil, err
	}
	return &node, nil
}

func (r *nodeRepo) ListChildren(ctx context.Context, parentCode string) ([]model.TaxonomyNode, error) {
	var nodes []model.TaxonomyNode
	// local_id 单调递增，按它排序即插入顺序
	err := r.db.WithContext(ctx).
		Where("parent_code = ?", parentCode).
		Order("local_id ASC").
		Find(&nodes).Error
	return nodes, err
}

func (r *nodeRepo) Exists(ctx context.Context, parentCode string, localID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TaxonomyNode{}).
		Where("parent_code = ? AND local_id = ?", parentCode, localID).
		Count(&count).Error
	return count == 1, err
}

func (r *nodeRepo) Delete(ctx context.Context, parentCode string, localID int) error {
	return r.db.WithContext(ctx).
		Where("parent_code = ? AND local_id = ?", parentCode, localID).
		Delete(&model.TaxonomyNode{}).Error
}

func (r *nodeRepo) UpdateLabel(ctx context.Context, parentCode string, localID int, label string) error {
	return r.db.WithContext(ctx).
		Model(&model.TaxonomyNode{}).
		Where("parent_code = ? AND local_id = ?", parentCode, localID).
		Update("label", label).Error
}

func (r *nodeRepo) NextLocalID(ctx context.Context, parentCode string) (int, error) {
	var counter model.CodeCounter
	err := r.db.WithContext(ctx).
		Where("parent_code = ?", parentCode).
		First(&counter).Error
	if err == gorm.ErrRecordNotFound {
		counter = model.CodeCounter{ParentCode: parentCode, NextID: 1}
		if err := r.db.WithContext(ctx).Create(&counter).Error; err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}

	allocated := counter.NextID
	err = r.db.WithContext(ctx).
		Model(&model.CodeCounter{}).
		Where("parent_code = ?", parentCode).
		Update("next_id", allocated+1).Error
	if err != nil {
		return 0, err
	}
	return allocated, nil
}

func (r *nodeRepo) DeleteCounter(ctx context.Context, parentCode string) error {
	return r.db.WithContext(ctx).
		Where("parent_code = ?", parentCode).
		Delete(&model.CodeCounter{}).Error
}

func (r *nodeRepo) WithTx(tx *gorm.DB) NodeRepository {
	return &nodeRepo{db: tx}
}

func (r *nodeRepo) Transaction(ctx context.Context, fn func(txRepo NodeRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
