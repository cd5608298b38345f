package model

import "time"

// ==================== Feedback 评价 ====================

// Feedback 待审核评价，审核通过后搬到 published_feedbacks
type Feedback struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	ChatID    int64  `gorm:"index;not null"` // 评价人
	MessageID int64  `gorm:"not null"`       // 会话层的消息引用，展示时原样转发
	Product   string `gorm:"size:255"`       // 被评价的商品名（来自用户的已购清单）

	CreatedAt time.Time
}

func (Feedback) TableName() string {
	return "feedbacks"
}

// PublishedFeedback 已发布评价
type PublishedFeedback struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	ChatID    int64  `gorm:"index;not null"`
	MessageID int64  `gorm:"not null"`
	Product   string `gorm:"size:255"`

	CreatedAt time.Time
}

func (PublishedFeedback) TableName() string {
	return "published_feedbacks"
}
