package task

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"smoko_shop_v1_202608/internal/service"
)

// ReconcileTask 购物车对账任务
// 运营删目录之后，所有用户购物车里的孤儿行要陆续清掉。用户
// 下次打开购物车也会现场对账，这里只是兜底扫全量。
type ReconcileTask struct {
	UserService *service.UserService
	CartService *service.CartService
	Cron        *cron.Cron

	// 控制并发对账的数量，防止把 SQLite 写锁打满
	concurrencyLimit int
	sleepTime        time.Duration
}

func NewReconcileTask(userSvc *service.UserService, cartSvc *service.CartService) *ReconcileTask {
	return &ReconcileTask{
		UserService:      userSvc,
		CartService:      cartSvc,
		Cron:             cron.New(cron.WithSeconds()), // 支持秒级控制
		concurrencyLimit: 10,
		sleepTime:        20 * time.Millisecond, // 每个协程启动间隔，平滑波峰
	}
}

// Start 启动定时任务
func (t *ReconcileTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		log.Println("[Task] 服务启动，正在执行首次购物车对账...")
		t.reconcileJob(ctx)
	}()

	// 定时策略
	_, err := t.Cron.AddFunc("0 0/30 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		t.reconcileJob(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动购物车对账任务: %v", err)
	}

	t.Cron.Start()
	log.Println("购物车对账任务已启动 (每30分钟扫描一次)")
}

// Stop 停止定时任务
func (t *ReconcileTask) Stop() {
	t.Cron.Stop()
	log.Println("购物车对账任务已停止")
}

// reconcileJob 全量扫描逻辑
func (t *ReconcileTask) reconcileJob(ctx context.Context) {
	userIDs, err := t.UserService.ListUserIDs(ctx)
	if err != nil {
		log.Printf("[Cron] 用户枚举失败: %v", err)
		return
	}

	sem := make(chan struct{}, t.concurrencyLimit)
	var wg sync.WaitGroup

	log.Printf("[Cron] 开始对账 %d 个用户的购物车，并发上限: %d", len(userIDs), t.concurrencyLimit)

	for _, userID := range userIDs {
		select {
		case <-ctx.Done():
			log.Println("[Cron] 任务超时停止")
			return
		default:
		}

		sem <- struct{}{}
		wg.Add(1)

		time.Sleep(t.sleepTime)

		go func(uid int64) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := t.CartService.ReconcileAgainstCatalog(ctx, uid); err != nil {
				// 日志仅记录，不中断其他协程
				log.Printf("[Cron] 用户 %d 购物车对账失败: %v", uid, err)
			}
		}(userID)
	}

	wg.Wait()
	log.Println("[Cron] 本轮购物车对账完成")
}
