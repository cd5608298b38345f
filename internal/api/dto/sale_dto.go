package dto

import "time"

// ================== Sale DTO ==================

// SaleCreateReq 促销活动创建请求
type SaleCreateReq struct {
	Title string `json:"title" binding:"required,max=255"`
	Body  string `json:"body" binding:"required"`
}

// SaleResp 促销活动响应
type SaleResp struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// SaleListResp 促销活动列表响应
type SaleListResp struct {
	Total int        `json:"total"`
	List  []SaleResp `json:"list"`
}
