package model

import (
	"time"

	"smoko_shop_v1_202608/pkg/pathcode"
)

// ==================== TaxonomyNode 目录节点 ====================

// TaxonomyNode 目录树节点，单表邻接模型
//
// 原始实现为每个节点动态建一张子表，这里收敛成单表：
// parent_code 指向父节点编码（根层级为空串），(parent_code, local_id)
// 唯一。节点自身编码不落列，由 parent_code + local_id 拼出。
type TaxonomyNode struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	ParentCode string `gorm:"size:255;uniqueIndex:idx_parent_local;index:idx_parent_label;not null;default:''"`
	LocalID    int    `gorm:"uniqueIndex:idx_parent_local;not null"` // 父层级内的本地编号，只增不复用
	Label      string `gorm:"size:255;index:idx_parent_label;not null"`

	CreatedAt time.Time
}

func (TaxonomyNode) TableName() string {
	return "taxonomy_nodes"
}

// Code 节点自身的完整编码
func (n *TaxonomyNode) Code() string {
	return pathcode.Compose(n.ParentCode, n.LocalID)
}

// ==================== CodeCounter 编号计数器 ====================

// CodeCounter 每个父编码一行，分配下一个本地编号
// 删除子节点时计数器不回退，保证已删除的编码永不复用
type CodeCounter struct {
	ParentCode string `gorm:"primaryKey;size:255"`
	NextID     int    `gorm:"not null;default:1"`
}

func (CodeCounter) TableName() string {
	return "code_counters"
}
