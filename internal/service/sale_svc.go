package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"smoko_shop_v1_202608/internal/model"
	"smoko_shop_v1_202608/internal/repository"
)

// ==================== SaleService ====================

// SaleService 促销活动服务，独立于目录树的简单 CRUD
type SaleService struct {
	saleRepo repository.SaleRepository
}

// NewSaleService 创建促销活动服务
func NewSaleService(saleRepo repository.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

// Create 创建促销活动
func (s *SaleService) Create(ctx context.Context, title, body string) (*model.Sale, error) {
	sale := &model.Sale{Title: title, Body: body}
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("创建促销活动失败: %w", err)
	}
	return sale, nil
}

// Get 读取促销活动详情
func (s *SaleService) Get(ctx context.Context, id int64) (*model.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("读取促销活动失败: %w", err)
	}
	return sale, nil
}

// List 列出全部促销活动
func (s *SaleService) List(ctx context.Context) ([]model.Sale, error) {
	sales, err := s.saleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("枚举促销活动失败: %w", err)
	}
	return sales, nil
}

// Delete 删除促销活动
func (s *SaleService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.saleRepo.Delete(ctx, id)
}
