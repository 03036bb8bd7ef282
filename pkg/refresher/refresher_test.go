package refresher

import (
	"errors"
	"testing"
	"time"

	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/model"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/portfolio"
)

// fakeFetcher 测试用数据源
type fakeFetcher struct {
	holdings []model.Holding
	err      error
}

func (f *fakeFetcher) FetchHoldings() ([]model.Holding, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.holdings, nil
}

func testHolding(name, sector string, quantity, purchasePrice, currentPrice float64) model.Holding {
	h := model.Holding{
		Name:          name,
		Sector:        sector,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		CurrentPrice:  currentPrice,
	}
	h.ComputeDerived()
	return h
}

func TestRefreshOnce(t *testing.T) {
	store := portfolio.NewStore()
	fetcher := &fakeFetcher{
		holdings: []model.Holding{
			testHolding("TCS", "IT", 10, 3000, 3500),
			testHolding("HDFC Bank", "Banking", 15, 1500, 1450),
		},
	}

	var gotEvent model.SnapshotEvent
	ref := NewRefresher(fetcher, store, 15*time.Second)
	ref.SetOnRefresh(func(event model.SnapshotEvent) {
		gotEvent = event
	})

	if err := ref.RefreshOnce(); err != nil {
		t.Fatalf("RefreshOnce() 返回错误: %v", err)
	}

	if store.Generation() != 1 {
		t.Errorf("刷新后代数 = %d, 期望 1", store.Generation())
	}
	if len(store.Holdings()) != 2 {
		t.Errorf("刷新后持仓数 = %d, 期望 2", len(store.Holdings()))
	}

	// 回调携带快照汇总
	if gotEvent.Generation != 1 {
		t.Errorf("事件代数 = %d, 期望 1", gotEvent.Generation)
	}
	if len(gotEvent.Holdings) != 2 {
		t.Errorf("事件持仓数 = %d, 期望 2", len(gotEvent.Holdings))
	}
	wantInvestment := 10*3000.0 + 15*1500.0
	if gotEvent.TotalInvestment != wantInvestment {
		t.Errorf("事件投入合计 = %v, 期望 %v", gotEvent.TotalInvestment, wantInvestment)
	}
}

func TestRefreshOnceFailureKeepsSnapshot(t *testing.T) {
	store := portfolio.NewStore()
	fetcher := &fakeFetcher{
		holdings: []model.Holding{
			testHolding("TCS", "IT", 10, 3000, 3500),
		},
	}

	ref := NewRefresher(fetcher, store, 15*time.Second)
	if err := ref.RefreshOnce(); err != nil {
		t.Fatalf("RefreshOnce() 返回错误: %v", err)
	}

	// 数据源开始报错，旧快照保留
	fetcher.err = errors.New("数据源不可达")
	if err := ref.RefreshOnce(); err == nil {
		t.Fatal("RefreshOnce() 应返回错误")
	}

	if store.Generation() != 1 {
		t.Errorf("失败后代数 = %d, 期望保持 1", store.Generation())
	}
	if len(store.Holdings()) != 1 {
		t.Errorf("失败后持仓数 = %d, 期望保持 1", len(store.Holdings()))
	}
}

func TestRefresherStop(t *testing.T) {
	store := portfolio.NewStore()
	ref := NewRefresher(&fakeFetcher{}, store, 10*time.Millisecond)
	ref.Start()

	time.Sleep(30 * time.Millisecond)
	ref.Stop()
	// 重复Stop不应panic
	ref.Stop()
}
