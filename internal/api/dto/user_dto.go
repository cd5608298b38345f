package dto

// ================== User DTO ==================

// UserRegisterReq 用户注册请求（幂等）
type UserRegisterReq struct {
	UserID         int64 `json:"user_id" binding:"required"`
	StartMessageID int64 `json:"start_message_id"`
}

// UserResp 用户档案响应
type UserResp struct {
	UserID         int64 `json:"user_id"`
	Spend          int64 `json:"spend"`
	FirstClient    bool  `json:"first_client"`
	FirstPressed   bool  `json:"first_pressed"`
	StartMessageID int64 `json:"start_message_id"`
	Banned         bool  `json:"banned"`
}

// UserBanReq 封禁设置请求
type UserBanReq struct {
	Banned bool `json:"banned"`
}

// UserHistoryResp 订单历史响应
type UserHistoryResp struct {
	UserID  int64  `json:"user_id"`
	History string `json:"history"`
}

// UserProductsResp 已购商品清单响应
type UserProductsResp struct {
	UserID int64    `json:"user_id"`
	List   []string `json:"list"`
}
