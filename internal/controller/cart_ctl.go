package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smoko_shop_v1_202608/internal/api/dto"
	"smoko_shop_v1_202608/internal/service"
)

type CartController struct {
	cartSvc    *service.CartService
	catalogSvc *service.CatalogService
	userSvc    *service.UserService
	pricingSvc *service.PricingService
}

func NewCartController(
	cartSvc *service.CartService,
	catalogSvc *service.CatalogService,
	userSvc *service.UserService,
	pricingSvc *service.PricingService,
) *CartController {
	return &CartController{
		cartSvc:    cartSvc,
		catalogSvc: catalogSvc,
		userSvc:    userSvc,
		pricingSvc: pricingSvc,
	}
}

// GetCart 获取购物车
// @Summary 获取购物车
// @Description 先对账丢掉目录里已删除的口味，再返回逐行明细和整单折后价
// @Tags Cart (购物车)
// @Produce json
// @Param userId path int true "用户ID"
// @Success 200 {object} dto.CartListResp "购物车明细"
// @Failure 400 {object} map[string]string "ID格式错误"
// @Failure 404 {object} map[string]string "用户不存在"
// @Router /api/users/{userId}/cart [get]
func (c *CartController) GetCart(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return
	}

	if err := c.cartSvc.ReconcileAgainstCatalog(ctx.Request.Context(), userID); err != nil {
		respondError(ctx, err)
		return
	}

	lines, err := c.cartSvc.List(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	user, err := c.userSvc.Get(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	list := make([]dto.CartLineResp, 0, len(lines))
	for _, line := range lines {
		desc, err := c.catalogSvc.DescribeVariant(ctx.Request.Context(), line.VariantCode)
		if err != nil {
			// 对账后仍解析失败的行不展示
			continue
		}
		list = append(list, dto.CartLineResp{
			VariantCode: line.VariantCode,
			Description: desc,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			Subtotal:    line.Subtotal(),
		})
	}

	ctx.JSON(http.StatusOK, dto.CartListResp{
		UserID: userID,
		Total:  c.pricingSvc.QuoteOrder(lines, user),
		List:   list,
	})
}

// AddLine 加购
// @Summary 加购
// @Description 无此口味插入数量 1，有则数量 +1
// @Tags Cart (购物车)
// @Accept json
// @Produce json
// @Param userId path int true "用户ID"
// @Param request body dto.CartAddReq true "加购参数"
// @Success 200 {object} dto.CartAddResp "新数量"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 404 {object} map[string]string "编码无效"
// @Router /api/users/{userId}/cart [post]
func (c *CartController) AddLine(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return
	}

	var req dto.CartAddReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if err := c.cartSvc.EnsureCart(ctx.Request.Context(), userID); err != nil {
		respondError(ctx, err)
		return
	}

	qty, err := c.cartSvc.AddOrIncrement(ctx.Request.Context(), userID, req.VariantCode, req.UnitPrice)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CartAddResp{
		VariantCode: req.VariantCode,
		Quantity:    qty,
	})
}

// SetQuantity 设置数量
// @Summary 设置数量
// @Description 数量低于 1 返回 409，归零只能走删除
// @Tags Cart (购物车)
// @Accept json
// @Produce json
// @Param userId path int true "用户ID"
// @Param code path string true "口味编码"
// @Param request body dto.CartQuantityReq true "数量"
// @Success 200 {object} map[string]string "{"message": "更新成功"}"
// @Failure 404 {object} map[string]string "购物车里没有该行"
// @Failure 409 {object} map[string]string "数量非法"
// @Router /api/users/{userId}/cart/{code} [put]
func (c *CartController) SetQuantity(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return
	}

	var req dto.CartQuantityReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if err := c.cartSvc.SetQuantity(ctx.Request.Context(), userID, ctx.Param("code"), req.Quantity); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "更新成功"})
}

// RemoveLine 删除购物车行
// @Summary 删除购物车行
// @Tags Cart (购物车)
// @Produce json
// @Param userId path int true "用户ID"
// @Param code path string true "口味编码"
// @Success 200 {object} map[string]string "{"message": "删除成功"}"
// @Failure 400 {object} map[string]string "ID格式错误"
// @Router /api/users/{userId}/cart/{code} [delete]
func (c *CartController) RemoveLine(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return
	}

	if err := c.cartSvc.Remove(ctx.Request.Context(), userID, ctx.Param("code")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// ClearCart 清空购物车
// @Summary 清空购物车
// @Tags Cart (购物车)
// @Produce json
// @Param userId path int true "用户ID"
// @Success 200 {object} map[string]string "{"message": "已清空"}"
// @Failure 400 {object} map[string]string "ID格式错误"
// @Router /api/users/{userId}/cart [delete]
func (c *CartController) ClearCart(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return
	}

	if err := c.cartSvc.Clear(ctx.Request.Context(), userID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "已清空"})
}
