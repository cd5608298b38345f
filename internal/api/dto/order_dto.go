package dto

// ================== Order DTO ==================

// OrderCommitReq 下单请求
type OrderCommitReq struct {
	Username string `json:"username" binding:"max=64"`
}

// OrderReceiptResp 下单回执响应
type OrderReceiptResp struct {
	ReceiptID string `json:"receipt_id"`
	Total     int64  `json:"total"`
	Summary   string `json:"summary"`
	LineCount int    `json:"line_count"`
}
