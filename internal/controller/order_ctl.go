package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smoko_shop_v1_202608/internal/api/dto"
	"smoko_shop_v1_202608/internal/service"
)

type OrderController struct {
	orderSvc *service.OrderService
}

func NewOrderController(orderSvc *service.OrderService) *OrderController {
	return &OrderController{
		orderSvc: orderSvc,
	}
}

// CommitOrder 提交订单
// @Summary 提交订单
// @Description 把购物车整体转成订单：写历史、累计消费、清车、通知运营
// @Tags Order (订单)
// @Accept json
// @Produce json
// @Param userId path int true "用户ID"
// @Param request body dto.OrderCommitReq true "下单参数"
// @Success 200 {object} dto.OrderReceiptResp "下单回执"
// @Failure 400 {object} map[string]string "ID格式错误"
// @Failure 404 {object} map[string]string "用户不存在"
// @Failure 409 {object} map[string]string "购物车为空"
// @Router /api/users/{userId}/orders [post]
func (c *OrderController) CommitOrder(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return
	}

	var req dto.OrderCommitReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	receipt, err := c.orderSvc.Commit(ctx.Request.Context(), userID, req.Username)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OrderReceiptResp{
		ReceiptID: receipt.ReceiptID,
		Total:     receipt.Total,
		Summary:   receipt.Summary,
		LineCount: receipt.LineCount,
	})
}
