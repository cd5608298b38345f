package service

import (
	"smoko_shop_v1_202608/internal/model"
)

// ==================== PricingService ====================

// PricingService 折扣计算
//
// 两档折扣按固定顺序连乘：先首单 9 折，再满 5000 消费 95 折，
// 每一步都向下取整到整数。结账总价是对「原价合计」做同样两步，
// 而不是把逐行折扣价相加——两种算法的取整结果不同，结账界面
// 展示的以整单口径为准。
type PricingService struct{}

// NewPricingService 创建折扣计算服务
func NewPricingService() *PricingService {
	return &PricingService{}
}

// applyDiscounts 按固定顺序套用两档折扣，逐步截断取整
func applyDiscounts(price int64, user *model.UserAccount) int64 {
	if user.FirstPressed {
		price = price * 9 / 10
	}
	if user.Spend >= model.DiscountEligibleSpend {
		price = price * 95 / 100
	}
	return price
}

// QuoteLine 单件折后价
func (s *PricingService) QuoteLine(basePrice int64, user *model.UserAccount) int64 {
	return applyDiscounts(basePrice, user)
}

// QuoteOrder 整单折后总价：先对原价 × 数量求和，再整体打折
func (s *PricingService) QuoteOrder(lines []model.CartLine, user *model.UserAccount) int64 {
	var total int64
	for i := range lines {
		total += lines[i].Subtotal()
	}
	return applyDiscounts(total, user)
}
