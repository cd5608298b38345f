package model

import "time"

// ==================== CartLine 购物车行 ====================

// CartLine 购物车行，每个 (用户, 口味编码) 一行
//
// 原始实现为每个用户动态建一张购物车表，这里收敛成单表，
// user_id 做分区键。自增主键保证枚举顺序稳定（"N из M" 导航
// 依赖插入顺序）。
type CartLine struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"` // 插入顺序即展示顺序
	UserID      int64  `gorm:"uniqueIndex:idx_user_variant;index;not null"`
	VariantCode string `gorm:"size:255;uniqueIndex:idx_user_variant;not null"` // 口味节点编码，如 "2_1_1_2"
	UnitPrice   string `gorm:"size:32;not null"`                               // 加购时从商品属性快照的文本价格，不随商品改价联动
	Quantity    int    `gorm:"not null;default:1"`                             // 恒 >= 1，归零必须删行

	CreatedAt time.Time
}

func (CartLine) TableName() string {
	return "cart_lines"
}

// UnitPriceValue 解析快照价格
func (l *CartLine) UnitPriceValue() (int64, error) {
	return ParsePrice(l.UnitPrice)
}

// Subtotal 行小计（未折扣）
func (l *CartLine) Subtotal() int64 {
	v, err := l.UnitPriceValue()
	if err != nil {
		return 0
	}
	return v * int64(l.Quantity)
}
