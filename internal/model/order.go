package model

import (
	"time"

	"gorm.io/datatypes"
)

// ==================== Order 订单存档 ====================

// Order 已提交订单的存档
//
// 用户侧的订单痕迹在 UserAccount.History 文本里；这里另存一份
// 结构化记录，运营转发失败时可以重放。
type Order struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	ReceiptID string `gorm:"size:64;uniqueIndex;not null"` // 回执号
	UserID    int64  `gorm:"index;not null"`

	Total   int64  `gorm:"not null"`  // 折后总额
	Summary string `gorm:"type:text"` // 转发给运营的成品文案

	// 提交瞬间的原始购物车内容
	RawPayload datatypes.JSON

	CreatedAt time.Time

	// 关联
	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

// ==================== OrderItem 订单项 ====================

// OrderItem 订单项，商品名与价格在提交时定格
type OrderItem struct {
	ID      int64 `gorm:"primaryKey;autoIncrement"`
	OrderID int64 `gorm:"index;not null"`

	VariantCode string `gorm:"size:255;not null"` // 提交时的口味编码
	Description string `gorm:"size:500"`          // 解码后的可读名称链
	UnitPrice   string `gorm:"size:32"`           // 快照文本价格
	Quantity    int    `gorm:"not null;default:1"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
