package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"gorm.io/gorm"

	"smoko_shop_v1_202608/internal/model"
	"smoko_shop_v1_202608/internal/repository"
	"smoko_shop_v1_202608/pkg/pathcode"
)

// ==================== CatalogService ====================

// CatalogService 目录服务
//
// 目录全店共享一棵树。写操作（建节点、级联删除）并发量只有几个
// 运营，一把全局锁足够，同时保证读方不会看到删了一半的子树。
type CatalogService struct {
	db        *gorm.DB // 跨仓储事务用
	nodeRepo  repository.NodeRepository
	attrsRepo repository.AttrsRepository

	mu sync.Mutex // 保护 FindOrCreateChild / DeleteSubtree / DeleteLeaf
}

// NewCatalogService 创建目录服务
func NewCatalogService(db *gorm.DB, nodeRepo repository.NodeRepository, attrsRepo repository.AttrsRepository) *CatalogService {
	return &CatalogService{
		db:        db,
		nodeRepo:  nodeRepo,
		attrsRepo: attrsRepo,
	}
}

// ==================== 浏览 ====================

// ChildEntry 子节点条目
type ChildEntry struct {
	Label   string
	LocalID int
	Code    string
}

// ListChildren 列出某节点的直接子节点，parentCode 为空串表示根层级
// 节点不存在或从未有过子节点时返回空列表，浏览路径不报错
func (s *CatalogService) ListChildren(ctx context.Context, parentCode string) ([]ChildEntry, error) {
	nodes, err := s.nodeRepo.ListChildren(ctx, parentCode)
	if err != nil {
		return nil, fmt.Errorf("查询子节点失败: %w", err)
	}
	entries := make([]ChildEntry, 0, len(nodes))
	for _, n := range nodes {
		entries = append(entries, ChildEntry{
			Label:   n.Label,
			LocalID: n.LocalID,
			Code:    n.Code(),
		})
	}
	return entries, nil
}

// ResolveLabel 根据编码解析节点的显示名称
func (s *CatalogService) ResolveLabel(ctx context.Context, code string) (string, error) {
	localID, err := pathcode.LastSegment(code)
	if err != nil {
		return "", ErrNotFound
	}
	node, err := s.nodeRepo.FindByLocalID(ctx, pathcode.Parent(code), localID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("解析编码 %s 失败: %w", code, err)
	}
	return node.Label, nil
}

// DescribeVariant 把口味编码解码成可读名称链
// 取最后三级（产品线的上两级 + 口味本身），缺失的层级跳过，
// 下单摘要和评价入口用的就是这个格式
func (s *CatalogService) DescribeVariant(ctx context.Context, code string) (string, error) {
	chain := pathcode.Ancestors(code) // 由深到浅
	if len(chain) > 3 {
		chain = chain[:3]
	}
	labels := make([]string, 0, len(chain))
	// 反转为由浅到深
	for i := len(chain) - 1; i >= 0; i-- {
		label, err := s.ResolveLabel(ctx, chain[i])
		if err != nil {
			return "", err
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, " "), nil
}

// ==================== 编辑 ====================

// FindOrCreateChild 按名称查找子节点，不存在则创建，返回其编码
// 对同一 (父编码, 名称) 幂等；全局锁挡住并发重复创建
func (s *CatalogService) FindOrCreateChild(ctx context.Context, parentCode, label string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 名称精确匹配，大小写敏感
	if node, err := s.nodeRepo.FindByLabel(ctx, parentCode, label); err == nil {
		return node.Code(), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("查找节点失败: %w", err)
	}

	var code string
	err := s.nodeRepo.Transaction(ctx, func(txRepo repository.NodeRepository) error {
		localID, err := txRepo.NextLocalID(ctx, parentCode)
		if err != nil {
			return err
		}
		node := &model.TaxonomyNode{
			ParentCode: parentCode,
			LocalID:    localID,
			Label:      label,
		}
		if err := txRepo.Create(ctx, node); err != nil {
			return err
		}
		code = node.Code()
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("创建节点失败: %w", err)
	}
	return code, nil
}

// RenameNode 修改节点显示名称（运营低频操作）
func (s *CatalogService) RenameNode(ctx context.Context, code, label string) error {
	localID, err := pathcode.LastSegment(code)
	if err != nil {
		return ErrNotFound
	}
	parent := pathcode.Parent(code)
	if _, err := s.nodeRepo.FindByLocalID(ctx, parent, localID); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("查找节点失败: %w", err)
	}
	if err := s.nodeRepo.UpdateLabel(ctx, parent, localID, label); err != nil {
		return fmt.Errorf("更新节点名称失败: %w", err)
	}
	return nil
}

// ==================== 商品属性 ====================

// AttrsUpdate 商品属性更新，nil 字段表示保持不变
type AttrsUpdate struct {
	PhotoURL    *string
	Description *string
	Price       *string
}

// GetAttributes 获取商品属性，不存在返回 nil（浏览路径不报错）
func (s *CatalogService) GetAttributes(ctx context.Context, productCode string) (*model.ProductAttrs, error) {
	attrs, err := s.attrsRepo.GetByCode(ctx, productCode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询商品属性失败: %w", err)
	}
	return attrs, nil
}

// UpsertAttributes 创建或部分更新商品属性
// 再次编辑时运营只改动部分字段，nil 字段跳过
func (s *CatalogService) UpsertAttributes(ctx context.Context, productCode string, update AttrsUpdate) error {
	existing, err := s.attrsRepo.GetByCode(ctx, productCode)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("查询商品属性失败: %w", err)
	}

	if existing == nil {
		attrs := &model.ProductAttrs{
			Code:     productCode,
			PhotoURL: model.NoPhoto,
		}
		if update.PhotoURL != nil {
			attrs.PhotoURL = *update.PhotoURL
		}
		if update.Description != nil {
			attrs.Description = *update.Description
		}
		if update.Price != nil {
			attrs.Price = model.NormalizePrice(*update.Price)
		}
		if err := s.attrsRepo.Create(ctx, attrs); err != nil {
			return fmt.Errorf("创建商品属性失败: %w", err)
		}
		return nil
	}

	fields := map[string]interface{}{}
	if update.PhotoURL != nil {
		fields["photo_url"] = *update.PhotoURL
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Price != nil {
		fields["price"] = model.NormalizePrice(*update.Price)
	}
	if len(fields) == 0 {
		return nil
	}
	if err := s.attrsRepo.UpdateFields(ctx, productCode, fields); err != nil {
		return fmt.Errorf("更新商品属性失败: %w", err)
	}
	return nil
}

// ==================== 删除 ====================

// DeleteSubtree 级联删除节点及其全部后代
// 一个事务内完成：后代的商品属性、后代节点、各级计数器、
// 最后是节点自身在父层的行。失败必须上抛，孤儿数据会让
// 后续 FindOrCreateChild 在同一编码上出错
func (s *CatalogService) DeleteSubtree(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	localID, err := pathcode.LastSegment(code)
	if err != nil {
		return ErrNotFound
	}
	parent := pathcode.Parent(code)
	if _, err := s.nodeRepo.FindByLocalID(ctx, parent, localID); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("查找节点失败: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.nodeRepo.WithTx(tx)

		// 自顶向下收集整棵子树的编码
		subtree, err := collectSubtree(ctx, txRepo, code)
		if err != nil {
			return err
		}

		// 商品属性先删，任何后代层级都可能挂有属性行
		if err := s.attrsRepo.WithTx(tx).DeleteByCodes(ctx, subtree); err != nil {
			return err
		}

		// 由深到浅删节点行和计数器
		for i := len(subtree) - 1; i >= 0; i-- {
			c := subtree[i]
			lid, err := pathcode.LastSegment(c)
			if err != nil {
				return err
			}
			if err := txRepo.Delete(ctx, pathcode.Parent(c), lid); err != nil {
				return err
			}
			if err := txRepo.DeleteCounter(ctx, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("级联删除失败 code=%s: %v", code, err)
		return fmt.Errorf("%w: 级联删除 %s: %v", ErrIntegrityViolation, code, err)
	}
	return nil
}

// DeleteLeaf 删除单个口味节点，不级联（叶子没有子树）
func (s *CatalogService) DeleteLeaf(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	localID, err := pathcode.LastSegment(code)
	if err != nil {
		return ErrNotFound
	}
	parent := pathcode.Parent(code)
	if _, err := s.nodeRepo.FindByLocalID(ctx, parent, localID); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("查找节点失败: %w", err)
	}
	if err := s.nodeRepo.Delete(ctx, parent, localID); err != nil {
		return fmt.Errorf("删除节点失败: %w", err)
	}
	return nil
}

// collectSubtree 广度优先收集 code 及其全部后代的编码，浅层在前
func collectSubtree(ctx context.Context, repo repository.NodeRepository, code string) ([]string, error) {
	out := []string{code}
	queue := []string{code}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		children, err := repo.ListChildren(ctx, cur)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			c := child.Code()
			out = append(out, c)
			queue = append(queue, c)
		}
	}
	return out, nil
}
