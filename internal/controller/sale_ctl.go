package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smoko_shop_v1_202608/internal/api/dto"
	"smoko_shop_v1_202608/internal/service"
)

type SaleController struct {
	saleSvc *service.SaleService
}

func NewSaleController(saleSvc *service.SaleService) *SaleController {
	return &SaleController{
		saleSvc: saleSvc,
	}
}

// GetSaleList 促销活动列表
// @Summary 促销活动列表
// @Tags Sale (促销)
// @Produce json
// @Success 200 {object} dto.SaleListResp "促销活动列表"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/sales [get]
func (c *SaleController) GetSaleList(ctx *gin.Context) {
	sales, err := c.saleSvc.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	list := make([]dto.SaleResp, 0, len(sales))
	for _, s := range sales {
		list = append(list, dto.SaleResp{
			ID:        s.ID,
			Title:     s.Title,
			Body:      s.Body,
			CreatedAt: s.CreatedAt,
		})
	}
	ctx.JSON(http.StatusOK, dto.SaleListResp{
		Total: len(list),
		List:  list,
	})
}

// GetSaleDetail 促销活动详情
// @Summary 促销活动详情
// @Tags Sale (促销)
// @Produce json
// @Param id path int true "活动ID"
// @Success 200 {object} dto.SaleResp "促销活动"
// @Failure 404 {object} map[string]string "活动不存在"
// @Router /api/sales/{id} [get]
func (c *SaleController) GetSaleDetail(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的活动ID"})
		return
	}

	sale, err := c.saleSvc.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SaleResp{
		ID:        sale.ID,
		Title:     sale.Title,
		Body:      sale.Body,
		CreatedAt: sale.CreatedAt,
	})
}

// CreateSale 创建促销活动
// @Summary 创建促销活动
// @Tags Sale (促销)
// @Accept json
// @Produce json
// @Param request body dto.SaleCreateReq true "活动参数"
// @Success 201 {object} dto.SaleResp "创建结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Router /api/admin/sales [post]
func (c *SaleController) CreateSale(ctx *gin.Context) {
	var req dto.SaleCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	sale, err := c.saleSvc.Create(ctx.Request.Context(), req.Title, req.Body)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.SaleResp{
		ID:        sale.ID,
		Title:     sale.Title,
		Body:      sale.Body,
		CreatedAt: sale.CreatedAt,
	})
}

// DeleteSale 删除促销活动
// @Summary 删除促销活动
// @Tags Sale (促销)
// @Produce json
// @Param id path int true "活动ID"
// @Success 200 {object} map[string]string "{"message": "删除成功"}"
// @Failure 404 {object} map[string]string "活动不存在"
// @Router /api/admin/sales/{id} [delete]
func (c *SaleController) DeleteSale(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的活动ID"})
		return
	}

	if err := c.saleSvc.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
