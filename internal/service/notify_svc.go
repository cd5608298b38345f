package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== NotifyService ====================

// NotifyService 运营通知
// 把下单回执推送到运营侧 webhook，由会话层转成人工可读的消息。
// 通知是尽力而为：失败由调用方记日志，绝不回滚订单。
type NotifyService struct {
	client     *resty.Client
	webhookURL string
}

// NewNotifyService 创建运营通知服务
// webhookURL 为空表示未配置，所有通知直接跳过
func NewNotifyService(webhookURL string) *NotifyService {
	client := resty.New()
	// 设置超时和重试，防止网络波动
	client.SetTimeout(10 * time.Second)
	client.SetRetryCount(3)

	return &NotifyService{
		client:     client,
		webhookURL: webhookURL,
	}
}

// orderNotification 推送载荷
type orderNotification struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	ReceiptID string `json:"receipt_id"`
	Total     int64  `json:"total"`
	Summary   string `json:"summary"`
}

// OrderCommitted 推送下单回执给运营
func (s *NotifyService) OrderCommitted(ctx context.Context, userID int64, username string, receipt *OrderReceipt) error {
	if s.webhookURL == "" {
		log.Println("未配置运营 webhook，跳过订单通知")
		return nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(orderNotification{
			UserID:    userID,
			Username:  username,
			ReceiptID: receipt.ReceiptID,
			Total:     receipt.Total,
			Summary:   receipt.Summary,
		}).
		Post(s.webhookURL)
	if err != nil {
		return fmt.Errorf("推送运营通知失败: %w", err)
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("运营通知被拒绝 (状态码 %d): %s", resp.StatusCode(), resp.String())
	}
	return nil
}
