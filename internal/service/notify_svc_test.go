package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== 单元测试 ====================

func TestNotifyService_OrderCommitted(t *testing.T) {
	var got orderNotification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewNotifyService(srv.URL)
	err := svc.OrderCommitted(context.Background(), 100, "ivan", &OrderReceipt{
		ReceiptID: "r-1",
		Total:     300,
		Summary:   "Жидкости Brusko Мята - 3шт.\n\nНа сумму: 300₽",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100), got.UserID)
	assert.Equal(t, "ivan", got.Username)
	assert.Equal(t, "r-1", got.ReceiptID)
	assert.Equal(t, int64(300), got.Total)
	assert.Contains(t, got.Summary, "На сумму: 300₽")
}

func TestNotifyService_OrderCommitted_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	svc := NewNotifyService(srv.URL)
	err := svc.OrderCommitted(context.Background(), 100, "ivan", &OrderReceipt{ReceiptID: "r-1"})
	assert.Error(t, err)
}

func TestNotifyService_NoWebhookConfigured(t *testing.T) {
	svc := NewNotifyService("")
	err := svc.OrderCommitted(context.Background(), 100, "ivan", &OrderReceipt{ReceiptID: "r-1"})
	assert.NoError(t, err)
}
