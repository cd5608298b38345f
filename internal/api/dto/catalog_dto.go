package dto

// ================== Catalog DTO ==================

// NodeChildrenReq 子节点列表请求，parent_code 为空表示根层级
type NodeChildrenReq struct {
	ParentCode string `form:"parent_code"`
}

// NodeResp 目录节点响应
type NodeResp struct {
	Code    string `json:"code"`
	LocalID int    `json:"local_id"`
	Label   string `json:"label"`
}

// NodeChildrenResp 子节点列表响应
type NodeChildrenResp struct {
	ParentCode string     `json:"parent_code"`
	Total      int        `json:"total"`
	List       []NodeResp `json:"list"`
}

// NodeCreateReq 节点创建请求（同名幂等返回已有节点）
type NodeCreateReq struct {
	ParentCode string `json:"parent_code"`
	Label      string `json:"label" binding:"required,max=255"`
}

// NodeRenameReq 节点改名请求
type NodeRenameReq struct {
	Label string `json:"label" binding:"required,max=255"`
}

// AttrsUpdateReq 商品属性更新请求，nil 字段保持不变
type AttrsUpdateReq struct {
	PhotoURL    *string `json:"photo_url"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
}

// ProductResp 商品卡片响应
type ProductResp struct {
	Code        string `json:"code"`
	Label       string `json:"label"`
	PhotoURL    string `json:"photo_url"`
	HasPhoto    bool   `json:"has_photo"`
	Description string `json:"description"`
	Price       string `json:"price"`
}
