package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smoko_shop_v1_202608/internal/api/dto"
	"smoko_shop_v1_202608/internal/service"
)

type UserController struct {
	userSvc *service.UserService
}

func NewUserController(userSvc *service.UserService) *UserController {
	return &UserController{
		userSvc: userSvc,
	}
}

// Register 注册用户
// @Summary 注册用户
// @Description 幂等注册，重复注册返回已有档案
// @Tags User (用户)
// @Accept json
// @Produce json
// @Param request body dto.UserRegisterReq true "注册参数"
// @Success 200 {object} dto.UserResp "用户档案"
// @Failure 400 {object} map[string]string "参数错误"
// @Router /api/users [post]
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.UserRegisterReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	user, err := c.userSvc.Register(ctx.Request.Context(), req.UserID, req.StartMessageID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserResp{
		UserID:         user.UserID,
		Spend:          user.Spend,
		FirstClient:    user.FirstClient,
		FirstPressed:   user.FirstPressed,
		StartMessageID: user.StartMessageID,
		Banned:         user.Banned,
	})
}

// GetUser 获取用户档案
// @Summary 获取用户档案
// @Tags User (用户)
// @Produce json
// @Param userId path int true "用户ID"
// @Success 200 {object} dto.UserResp "用户档案"
// @Failure 404 {object} map[string]string "用户不存在"
// @Router /api/users/{userId} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return
	}

	user, err := c.userSvc.Get(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserResp{
		UserID:         user.UserID,
		Spend:          user.Spend,
		FirstClient:    user.FirstClient,
		FirstPressed:   user.FirstPressed,
		StartMessageID: user.StartMessageID,
		Banned:         user.Banned,
	})
}

// ArmFirstOrderDiscount 领取首单优惠
// @Summary 领取首单优惠
// @Description 只有新客能领一次，下一单享 9 折
// @Tags User (用户)
// @Produce json
// @Param userId path int true "用户ID"
// @Success 200 {object} map[string]string "{"message": "首单优惠已生效"}"
// @Failure 404 {object} map[string]string "用户不存在"
// @Failure 409 {object} map[string]string "已领取过"
// @Router /api/users/{userId}/first-discount [post]
func (c *UserController) ArmFirstOrderDiscount(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return
	}

	if err := c.userSvc.ArmFirstOrderDiscount(ctx.Request.Context(), userID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "首单优惠已生效"})
}

// GetHistory 获取订单历史
// @Summary 获取订单历史
// @Description 最新在前的历史文本，从未下过单返回空串
// @Tags User (用户)
// @Produce json
// @Param userId path int true "用户ID"
// @Success 200 {object} dto.UserHistoryResp "历史文本"
// @Failure 404 {object} map[string]string "用户不存在"
// @Router /api/users/{userId}/history [get]
func (c *UserController) GetHistory(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return
	}

	history, err := c.userSvc.History(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserHistoryResp{
		UserID:  userID,
		History: history,
	})
}

// GetOrderedProducts 获取已购商品清单
// @Summary 获取已购商品清单
// @Description 评价入口用，最新在前
// @Tags User (用户)
// @Produce json
// @Param userId path int true "用户ID"
// @Success 200 {object} dto.UserProductsResp "商品名列表"
// @Failure 404 {object} map[string]string "用户不存在"
// @Router /api/users/{userId}/products [get]
func (c *UserController) GetOrderedProducts(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return
	}

	products, err := c.userSvc.OrderedProducts(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserProductsResp{
		UserID: userID,
		List:   products,
	})
}

// SetBanned 设置封禁标记
// @Summary 设置封禁标记
// @Tags User (用户)
// @Accept json
// @Produce json
// @Param userId path int true "用户ID"
// @Param request body dto.UserBanReq true "封禁参数"
// @Success 200 {object} map[string]string "{"message": "更新成功"}"
// @Failure 404 {object} map[string]string "用户不存在"
// @Router /api/admin/users/{userId}/ban [put]
func (c *UserController) SetBanned(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return
	}

	var req dto.UserBanReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if err := c.userSvc.SetBanned(ctx.Request.Context(), userID, req.Banned); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "更新成功"})
}
