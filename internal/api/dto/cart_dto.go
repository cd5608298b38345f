package dto

// ================== Cart DTO ==================

// CartAddReq 加购请求
type CartAddReq struct {
	VariantCode string `json:"variant_code" binding:"required"`
	UnitPrice   string `json:"unit_price" binding:"required"`
}

// CartAddResp 加购响应
type CartAddResp struct {
	VariantCode string `json:"variant_code"`
	Quantity    int    `json:"quantity"`
}

// CartQuantityReq 数量设置请求
type CartQuantityReq struct {
	Quantity int `json:"quantity" binding:"required"`
}

// CartLineResp 购物车行响应
type CartLineResp struct {
	VariantCode string `json:"variant_code"`
	Description string `json:"description"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
}

// CartListResp 购物车响应，Total 是整单折后价
type CartListResp struct {
	UserID int64          `json:"user_id"`
	Total  int64          `json:"total"`
	List   []CartLineResp `json:"list"`
}
