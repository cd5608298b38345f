package dto

import "time"

// ================== Feedback DTO ==================

// FeedbackSubmitReq 评价提交请求
type FeedbackSubmitReq struct {
	ChatID    int64  `json:"chat_id" binding:"required"`
	MessageID int64  `json:"message_id" binding:"required"`
	Product   string `json:"product" binding:"max=255"`
}

// FeedbackResp 待审核评价响应
type FeedbackResp struct {
	ID        int64     `json:"id"`
	ChatID    int64     `json:"chat_id"`
	MessageID int64     `json:"message_id"`
	Product   string    `json:"product"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedbackListResp 待审核队列响应
type FeedbackListResp struct {
	Total int            `json:"total"`
	List  []FeedbackResp `json:"list"`
}

// PublishedFeedbackResp 已发布评价响应
type PublishedFeedbackResp struct {
	ID        int64     `json:"id"`
	ChatID    int64     `json:"chat_id"`
	MessageID int64     `json:"message_id"`
	Product   string    `json:"product"`
	CreatedAt time.Time `json:"created_at"`
}

// PublishedFeedbackListResp 已发布评价列表响应
type PublishedFeedbackListResp struct {
	Total int                     `json:"total"`
	List  []PublishedFeedbackResp `json:"list"`
}
