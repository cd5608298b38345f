package model

import "time"

// ==================== Sale 促销活动 ====================

// Sale 促销活动，独立于目录树的简单 CRUD
type Sale struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Title string `gorm:"size:255;not null"`
	Body  string `gorm:"type:text"`

	CreatedAt time.Time
}

func (Sale) TableName() string {
	return "sales"
}
