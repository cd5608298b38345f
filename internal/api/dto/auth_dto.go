package dto

// ================== Auth DTO ==================

// AdminLoginReq 管理端登录请求
type AdminLoginReq struct {
	Operator string `json:"operator" binding:"required,max=64"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginResp 管理端登录响应
type AdminLoginResp struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"` // 秒
}
