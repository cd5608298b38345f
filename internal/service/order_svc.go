package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"smoko_shop_v1_202608/internal/model"
	"smoko_shop_v1_202608/internal/repository"
	"smoko_shop_v1_202608/pkg/pathcode"
)

// ==================== 常量 ====================

// historySeparator 订单历史条目之间的分隔线（沿用历史数据格式）
const historySeparator = "\n——————————————————-\n"

// ==================== OrderService ====================

// OrderService 下单服务
//
// Commit 在一个事务里把用户的购物车整体转成订单：对账、解码
// 名称、算整单价、写历史、累计消费、清车。与购物车变更共用
// 同一把按用户互斥锁，重复点提交不会双重扣车。
type OrderService struct {
	db        *gorm.DB
	cartRepo  repository.CartRepository
	nodeRepo  repository.NodeRepository
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	cartSvc   *CartService
	pricing   *PricingService
	notifier  *NotifyService // 可为 nil（测试或未配置 webhook）
	locks     *KeyedMutex
}

// NewOrderService 创建下单服务
func NewOrderService(
	db *gorm.DB,
	cartRepo repository.CartRepository,
	nodeRepo repository.NodeRepository,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	cartSvc *CartService,
	pricing *PricingService,
	notifier *NotifyService,
	locks *KeyedMutex,
) *OrderService {
	return &OrderService{
		db:        db,
		cartRepo:  cartRepo,
		nodeRepo:  nodeRepo,
		userRepo:  userRepo,
		orderRepo: orderRepo,
		cartSvc:   cartSvc,
		pricing:   pricing,
		notifier:  notifier,
		locks:     locks,
	}
}

// ==================== 回执 ====================

// OrderReceipt 下单回执，调用方原样转发给运营
type OrderReceipt struct {
	ReceiptID string
	Total     int64
	Summary   string // 逐行描述 + 总额行
	LineCount int
}

// ==================== 提交 ====================

// Commit 提交订单
// 空车提交返回 ErrInvalidState；提交期间口味节点被并发删除的行
// 静默丢弃（对账已经先跑过一遍，这是兜底）
func (s *OrderService) Commit(ctx context.Context, userID int64, username string) (*OrderReceipt, error) {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	var receipt *OrderReceipt
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCart := s.cartRepo.WithTx(tx)
		txNodes := s.nodeRepo.WithTx(tx)
		txUsers := s.userRepo.WithTx(tx)
		txOrders := s.orderRepo.WithTx(tx)

		// 1. 对账，丢掉目录里已不存在的行
		if err := s.cartSvc.reconcileLocked(ctx, txCart, txNodes, userID); err != nil {
			return err
		}

		lines, err := txCart.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("枚举购物车失败: %w", err)
		}
		if len(lines) == 0 {
			return fmt.Errorf("%w: 购物车为空", ErrInvalidState)
		}

		user, err := txUsers.Get(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("读取用户失败: %w", err)
		}

		// 2. 解码名称链，组装逐行描述
		var details strings.Builder
		var descs []string
		items := make([]model.OrderItem, 0, len(lines))
		valid := make([]model.CartLine, 0, len(lines))
		for _, line := range lines {
			desc, err := describeVariant(ctx, txNodes, line.VariantCode)
			if err != nil {
				// 对账到提交之间被并发删除，该行不进回执
				continue
			}
			details.WriteString(fmt.Sprintf("%s - %dшт.\n\n", desc, line.Quantity))
			descs = append(descs, desc)
			valid = append(valid, line)
			items = append(items, model.OrderItem{
				VariantCode: line.VariantCode,
				Description: desc,
				UnitPrice:   line.UnitPrice,
				Quantity:    line.Quantity,
			})
		}
		if len(valid) == 0 {
			return fmt.Errorf("%w: 购物车为空", ErrInvalidState)
		}

		// 3. 整单口径计算总价
		total := s.pricing.QuoteOrder(valid, user)
		summary := details.String() + fmt.Sprintf("На сумму: %d%s", total, model.CurrencyGlyph)

		// 4. 订单历史，最新在前
		entry := time.Now().Format("02-01-06") + ":\n" + summary
		history := entry
		if user.HasHistory() {
			history = entry + historySeparator + user.History
		}

		// 5. 已购商品清单，评价入口用
		products := strings.Join(descs, ",") + ","
		if user.Products != "" && user.Products != "None" {
			products += user.Products
		}

		fields := map[string]interface{}{
			"history":  history,
			"products": products,
			"spend":    gorm.Expr("spend + ?", total),
		}
		// 6. 首单优惠一次性消耗
		if user.FirstPressed {
			fields["first_pressed"] = false
		}
		if err := txUsers.UpdateFields(ctx, userID, fields); err != nil {
			return fmt.Errorf("更新用户订单痕迹失败: %w", err)
		}

		// 7. 结构化存档，转发失败可重放
		raw, err := json.Marshal(valid)
		if err != nil {
			return fmt.Errorf("序列化购物车快照失败: %w", err)
		}
		order := &model.Order{
			ReceiptID:  uuid.NewString(),
			UserID:     userID,
			Total:      total,
			Summary:    summary,
			RawPayload: datatypes.JSON(raw),
			Items:      items,
		}
		if err := txOrders.Create(ctx, order); err != nil {
			return fmt.Errorf("写入订单存档失败: %w", err)
		}

		// 8. 清空购物车
		if err := txCart.DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("清空购物车失败: %w", err)
		}

		receipt = &OrderReceipt{
			ReceiptID: order.ReceiptID,
			Total:     total,
			Summary:   summary,
			LineCount: len(valid),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 运营通知失败只记日志，订单本身已落库
	if s.notifier != nil {
		if err := s.notifier.OrderCommitted(ctx, userID, username, receipt); err != nil {
			log.Printf("订单 %s 运营通知失败: %v", receipt.ReceiptID, err)
		}
	}
	return receipt, nil
}

// describeVariant 用事务内的节点仓储解码口味编码（最后三级名称链）
func describeVariant(ctx context.Context, nodes repository.NodeRepository, code string) (string, error) {
	chain := pathcode.Ancestors(code)
	if len(chain) > 3 {
		chain = chain[:3]
	}
	labels := make([]string, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		localID, err := pathcode.LastSegment(chain[i])
		if err != nil {
			return "", err
		}
		node, err := nodes.FindByLocalID(ctx, pathcode.Parent(chain[i]), localID)
		if err != nil {
			return "", err
		}
		labels = append(labels, node.Label)
	}
	return strings.Join(labels, " "), nil
}
