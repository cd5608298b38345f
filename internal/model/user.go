package model

import "time"

// ==================== UserAccount 用户档案 ====================

// UserAccount 终端用户，一人一行，只增不删
type UserAccount struct {
	UserID int64 `gorm:"primaryKey"` // 会话层传入的稳定用户标识

	// 订单痕迹
	History  string `gorm:"type:text"` // 订单历史，最新在前，条目间用分隔线隔开
	Products string `gorm:"type:text"` // 最近下单的商品名清单，逗号拼接，供评价入口使用
	Spend    int64  `gorm:"not null;default:0"`

	// 优惠状态
	FirstClient  bool `gorm:"not null;default:true"`  // 还没领过首单优惠
	FirstPressed bool `gorm:"not null;default:false"` // 首单 9 折已领取且未消耗

	// 会话引用与风控
	StartMessageID int64 // 起始消息引用，透传给运营转发用
	Banned         bool  `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserAccount) TableName() string {
	return "users"
}

// DiscountEligibleSpend 累计消费达到该值后享受追加 95 折
const DiscountEligibleSpend = 5000

// HasHistory 是否已有订单历史
func (u *UserAccount) HasHistory() bool {
	return u.History != "" && u.History != "None"
}

// CanReview 是否允许发表评价（有消费且未被封禁）
func (u *UserAccount) CanReview() bool {
	return u.Spend > 0 && !u.Banned
}
