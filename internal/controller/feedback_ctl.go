package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smoko_shop_v1_202608/internal/api/dto"
	"smoko_shop_v1_202608/internal/service"
)

type FeedbackController struct {
	feedbackSvc *service.FeedbackService
}

func NewFeedbackController(feedbackSvc *service.FeedbackService) *FeedbackController {
	return &FeedbackController{
		feedbackSvc: feedbackSvc,
	}
}

// SubmitFeedback 提交评价
// @Summary 提交评价
// @Description 进待审核队列，被封禁或从未消费的用户拒绝
// @Tags Feedback (评价)
// @Accept json
// @Produce json
// @Param request body dto.FeedbackSubmitReq true "评价参数"
// @Success 201 {object} dto.FeedbackResp "已入队"
// @Failure 403 {object} map[string]string "用户被封禁"
// @Failure 409 {object} map[string]string "没有消费记录"
// @Router /api/feedbacks [post]
func (c *FeedbackController) SubmitFeedback(ctx *gin.Context) {
	var req dto.FeedbackSubmitReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	fb, err := c.feedbackSvc.Submit(ctx.Request.Context(), req.ChatID, req.MessageID, req.Product)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.FeedbackResp{
		ID:        fb.ID,
		ChatID:    fb.ChatID,
		MessageID: fb.MessageID,
		Product:   fb.Product,
		CreatedAt: fb.CreatedAt,
	})
}

// GetPublished 已发布评价列表
// @Summary 已发布评价列表
// @Tags Feedback (评价)
// @Produce json
// @Success 200 {object} dto.PublishedFeedbackListResp "已发布评价"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/feedbacks [get]
func (c *FeedbackController) GetPublished(ctx *gin.Context) {
	fbs, err := c.feedbackSvc.ListPublished(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	list := make([]dto.PublishedFeedbackResp, 0, len(fbs))
	for _, fb := range fbs {
		list = append(list, dto.PublishedFeedbackResp{
			ID:        fb.ID,
			ChatID:    fb.ChatID,
			MessageID: fb.MessageID,
			Product:   fb.Product,
			CreatedAt: fb.CreatedAt,
		})
	}
	ctx.JSON(http.StatusOK, dto.PublishedFeedbackListResp{
		Total: len(list),
		List:  list,
	})
}

// GetPending 待审核队列
// @Summary 待审核队列
// @Tags Feedback (评价)
// @Produce json
// @Success 200 {object} dto.FeedbackListResp "待审核评价"
// @Failure 500 {object} map[string]string "查询失败"
// @Router /api/admin/feedbacks/pending [get]
func (c *FeedbackController) GetPending(ctx *gin.Context) {
	fbs, err := c.feedbackSvc.ListPending(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	list := make([]dto.FeedbackResp, 0, len(fbs))
	for _, fb := range fbs {
		list = append(list, dto.FeedbackResp{
			ID:        fb.ID,
			ChatID:    fb.ChatID,
			MessageID: fb.MessageID,
			Product:   fb.Product,
			CreatedAt: fb.CreatedAt,
		})
	}
	ctx.JSON(http.StatusOK, dto.FeedbackListResp{
		Total: len(list),
		List:  list,
	})
}

// PublishFeedback 审核通过
// @Summary 审核通过
// @Description 从待审核队列搬到已发布列表
// @Tags Feedback (评价)
// @Produce json
// @Param id path int true "评价ID"
// @Success 200 {object} dto.PublishedFeedbackResp "已发布"
// @Failure 404 {object} map[string]string "评价不存在"
// @Router /api/admin/feedbacks/{id}/publish [post]
func (c *FeedbackController) PublishFeedback(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的评价ID"})
		return
	}

	published, err := c.feedbackSvc.Publish(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PublishedFeedbackResp{
		ID:        published.ID,
		ChatID:    published.ChatID,
		MessageID: published.MessageID,
		Product:   published.Product,
		CreatedAt: published.CreatedAt,
	})
}

// DiscardFeedback 审核丢弃
// @Summary 审核丢弃
// @Tags Feedback (评价)
// @Produce json
// @Param id path int true "评价ID"
// @Success 200 {object} map[string]string "{"message": "已丢弃"}"
// @Failure 404 {object} map[string]string "评价不存在"
// @Router /api/admin/feedbacks/{id} [delete]
func (c *FeedbackController) DiscardFeedback(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的评价ID"})
		return
	}

	if err := c.feedbackSvc.Discard(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "已丢弃"})
}

// BanAuthor 封禁评价人
// @Summary 封禁评价人
// @Description 封禁该评价的作者并清掉他排队中的全部评价
// @Tags Feedback (评价)
// @Produce json
// @Param id path int true "评价ID"
// @Success 200 {object} map[string]string "{"message": "已封禁"}"
// @Failure 404 {object} map[string]string "评价不存在"
// @Router /api/admin/feedbacks/{id}/ban-author [post]
func (c *FeedbackController) BanAuthor(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的评价ID"})
		return
	}

	if err := c.feedbackSvc.BanAuthor(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "已封禁"})
}
