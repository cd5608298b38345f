package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smoko_shop_v1_202608/internal/api/dto"
	"smoko_shop_v1_202608/internal/model"
	"smoko_shop_v1_202608/internal/service"
)

type CatalogController struct {
	catalogSvc *service.CatalogService
}

func NewCatalogController(catalogSvc *service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogSvc: catalogSvc,
	}
}

// GetChildren 列出子节点
// @Summary 列出子节点
// @Description 列出某节点的直接子节点，parent_code 为空表示根层级
// @Tags Catalog (目录)
// @Produce json
// @Param parent_code query string false "父节点编码"
// @Success 200 {object} dto.NodeChildrenResp "子节点列表"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/catalog/children [get]
func (c *CatalogController) GetChildren(ctx *gin.Context) {
	var req dto.NodeChildrenReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	entries, err := c.catalogSvc.ListChildren(ctx.Request.Context(), req.ParentCode)
	if err != nil {
		respondError(ctx, err)
		return
	}

	list := make([]dto.NodeResp, 0, len(entries))
	for _, e := range entries {
		list = append(list, dto.NodeResp{
			Code:    e.Code,
			LocalID: e.LocalID,
			Label:   e.Label,
		})
	}
	ctx.JSON(http.StatusOK, dto.NodeChildrenResp{
		ParentCode: req.ParentCode,
		Total:      len(list),
		List:       list,
	})
}

// GetProduct 获取商品卡片
// @Summary 获取商品卡片
// @Description 名称 + 图片 + 描述 + 价格，属性未填写的字段给默认值
// @Tags Catalog (目录)
// @Produce json
// @Param code path string true "商品编码"
// @Success 200 {object} dto.ProductResp "商品卡片"
// @Failure 404 {object} map[string]string "编码不存在"
// @Router /api/catalog/products/{code} [get]
func (c *CatalogController) GetProduct(ctx *gin.Context) {
	code := ctx.Param("code")

	label, err := c.catalogSvc.ResolveLabel(ctx.Request.Context(), code)
	if err != nil {
		respondError(ctx, err)
		return
	}

	resp := dto.ProductResp{
		Code:     code,
		Label:    label,
		PhotoURL: model.NoPhoto,
	}
	attrs, err := c.catalogSvc.GetAttributes(ctx.Request.Context(), code)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if attrs != nil {
		resp.PhotoURL = attrs.PhotoURL
		resp.HasPhoto = attrs.HasPhoto()
		resp.Description = attrs.Description
		resp.Price = attrs.Price
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateNode 创建目录节点
// @Summary 创建目录节点
// @Description 按名称查找或创建子节点，同名幂等返回已有编码
// @Tags Catalog (目录)
// @Accept json
// @Produce json
// @Param request body dto.NodeCreateReq true "节点参数"
// @Success 201 {object} dto.NodeResp "节点编码"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 500 {object} map[string]string "创建失败"
// @Router /api/admin/catalog/nodes [post]
func (c *CatalogController) CreateNode(ctx *gin.Context) {
	var req dto.NodeCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	code, err := c.catalogSvc.FindOrCreateChild(ctx.Request.Context(), req.ParentCode, req.Label)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"code": code, "label": req.Label})
}

// RenameNode 修改节点名称
// @Summary 修改节点名称
// @Tags Catalog (目录)
// @Accept json
// @Produce json
// @Param code path string true "节点编码"
// @Param request body dto.NodeRenameReq true "新名称"
// @Success 200 {object} map[string]string "{"message": "更新成功"}"
// @Failure 404 {object} map[string]string "编码不存在"
// @Router /api/admin/catalog/nodes/{code} [put]
func (c *CatalogController) RenameNode(ctx *gin.Context) {
	code := ctx.Param("code")

	var req dto.NodeRenameReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if err := c.catalogSvc.RenameNode(ctx.Request.Context(), code, req.Label); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "更新成功"})
}

// UpsertAttributes 创建或部分更新商品属性
// @Summary 更新商品属性
// @Description 未提供的字段保持原值，价格自动归一化货币符号
// @Tags Catalog (目录)
// @Accept json
// @Produce json
// @Param code path string true "商品编码"
// @Param request body dto.AttrsUpdateReq true "属性字段"
// @Success 200 {object} map[string]string "{"message": "更新成功"}"
// @Failure 400 {object} map[string]string "参数错误"
// @Router /api/admin/catalog/products/{code} [put]
func (c *CatalogController) UpsertAttributes(ctx *gin.Context) {
	code := ctx.Param("code")

	var req dto.AttrsUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	err := c.catalogSvc.UpsertAttributes(ctx.Request.Context(), code, service.AttrsUpdate{
		PhotoURL:    req.PhotoURL,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "更新成功"})
}

// DeleteSubtree 级联删除节点及其后代
// @Summary 级联删除节点
// @Description 一个事务内删除节点、全部后代、挂靠的商品属性和计数器
// @Tags Catalog (目录)
// @Produce json
// @Param code path string true "节点编码"
// @Success 200 {object} map[string]string "{"message": "删除成功"}"
// @Failure 404 {object} map[string]string "编码不存在"
// @Failure 500 {object} map[string]string "级联删除失败"
// @Router /api/admin/catalog/nodes/{code} [delete]
func (c *CatalogController) DeleteSubtree(ctx *gin.Context) {
	code := ctx.Param("code")

	if err := c.catalogSvc.DeleteSubtree(ctx.Request.Context(), code); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// DeleteVariant 删除单个口味节点
// @Summary 删除口味节点
// @Tags Catalog (目录)
// @Produce json
// @Param code path string true "口味编码"
// @Success 200 {object} map[string]string "{"message": "删除成功"}"
// @Failure 404 {object} map[string]string "编码不存在"
// @Router /api/admin/catalog/variants/{code} [delete]
func (c *CatalogController) DeleteVariant(ctx *gin.Context) {
	code := ctx.Param("code")

	if err := c.catalogSvc.DeleteLeaf(ctx.Request.Context(), code); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
