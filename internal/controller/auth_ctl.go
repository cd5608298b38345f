package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smoko_shop_v1_202608/internal/api/dto"
	"smoko_shop_v1_202608/internal/middleware"
)

type AuthController struct {
	adminPasswordHash string
}

func NewAuthController(adminPasswordHash string) *AuthController {
	return &AuthController{
		adminPasswordHash: adminPasswordHash,
	}
}

// Login 管理端登录
// @Summary 管理端登录
// @Description 口令登录，返回管理端 JWT
// @Tags Auth (鉴权)
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginReq true "登录参数"
// @Success 200 {object} dto.AdminLoginResp "登录成功"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 401 {object} map[string]string "口令错误"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.AdminLoginReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if c.adminPasswordHash == "" || !middleware.CheckAdminPassword(c.adminPasswordHash, req.Password) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "口令错误"})
		return
	}

	token, err := middleware.GenerateAdminToken(req.Operator)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, dto.AdminLoginResp{
		Token:     token,
		ExpiresIn: int64(middleware.GetJWTConfig().AccessTokenTTL.Seconds()),
	})
}
