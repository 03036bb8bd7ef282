package refresher

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/model"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/portfolio"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/provider"
)

// Refresher 周期性刷新持仓快照
// 单个定时器驱动，无并发刷新保护；失败时保留上一份快照
type Refresher struct {
	fetcher   provider.HoldingsFetcher
	store     *portfolio.Store
	interval  time.Duration
	onRefresh func(event model.SnapshotEvent) // 刷新成功后的回调，可为空

	stopChan chan struct{}
	stopOnce sync.Once
}

// NewRefresher 创建刷新器
func NewRefresher(fetcher provider.HoldingsFetcher, store *portfolio.Store, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Refresher{
		fetcher:  fetcher,
		store:    store,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// SetOnRefresh 设置刷新成功后的回调
func (r *Refresher) SetOnRefresh(fn func(event model.SnapshotEvent)) {
	r.onRefresh = fn
}

// Start 启动定时刷新循环
func (r *Refresher) Start() {
	go r.loop()
}

// loop 定时刷新循环
func (r *Refresher) loop() {
	// 启动时先刷新一次，避免等待第一个周期
	if err := r.RefreshOnce(); err != nil {
		log.Printf("首次刷新持仓失败: %v", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := r.RefreshOnce(); err != nil {
				// 刷新失败保留上一份快照
				log.Printf("刷新持仓失败: %v", err)
			}
		case <-r.stopChan:
			log.Println("停止刷新任务")
			return
		}
	}
}

// RefreshOnce 执行一次完整的刷新：拉取、替换、回调
func (r *Refresher) RefreshOnce() error {
	holdings, err := r.fetcher.FetchHoldings()
	if err != nil {
		return fmt.Errorf("拉取持仓数据失败: %w", err)
	}

	fetchedAt := time.Now()
	generation := r.store.Replace(holdings, fetchedAt)

	log.Printf("已刷新持仓快照: 代数=%d, 持仓数=%d", generation, len(holdings))

	if r.onRefresh != nil {
		investment, presentValue, gainLoss := portfolio.Totals(holdings)
		r.onRefresh(model.SnapshotEvent{
			Generation:        generation,
			FetchedAt:         fetchedAt,
			TotalInvestment:   investment,
			TotalPresentValue: presentValue,
			TotalGainLoss:     gainLoss,
			Holdings:          holdings,
		})
	}

	return nil
}

// Stop 停止刷新循环
func (r *Refresher) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopChan)
	})
}
