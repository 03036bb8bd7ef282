package portfolio

import (
	"testing"
	"time"

	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/model"
)

func TestStoreReplace(t *testing.T) {
	store := NewStore()

	if store.Ready() {
		t.Error("初始状态 Ready() = true, 期望 false")
	}
	if store.Generation() != 0 {
		t.Errorf("初始代数 = %d, 期望 0", store.Generation())
	}

	first := []model.Holding{
		makeHolding("TCS", "IT", 10, 3000, 3500),
		makeHolding("HDFC Bank", "Banking", 15, 1500, 1450),
	}
	fetchedAt := time.Now()

	gen := store.Replace(first, fetchedAt)
	if gen != 1 {
		t.Errorf("首次替换代数 = %d, 期望 1", gen)
	}
	if !store.Ready() {
		t.Error("替换后 Ready() = false, 期望 true")
	}
	if got := store.LastRefresh(); !got.Equal(fetchedAt) {
		t.Errorf("LastRefresh() = %v, 期望 %v", got, fetchedAt)
	}
	if got := store.Holdings(); len(got) != 2 {
		t.Errorf("Holdings() 条数 = %d, 期望 2", len(got))
	}

	// 整体替换：旧快照不保留
	second := []model.Holding{
		makeHolding("Reliance", "Energy", 8, 2400, 2600),
	}
	gen = store.Replace(second, time.Now())
	if gen != 2 {
		t.Errorf("二次替换代数 = %d, 期望 2", gen)
	}

	got := store.Holdings()
	if len(got) != 1 {
		t.Fatalf("替换后 Holdings() 条数 = %d, 期望 1", len(got))
	}
	if got[0].Name != "Reliance" {
		t.Errorf("替换后持仓 = %q, 期望 Reliance", got[0].Name)
	}
}

func TestStoreHoldingsReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Replace([]model.Holding{
		makeHolding("TCS", "IT", 10, 3000, 3500),
	}, time.Now())

	holdings := store.Holdings()
	holdings[0].Name = "modified"

	if got := store.Holdings(); got[0].Name != "TCS" {
		t.Errorf("修改副本影响了存储内容: %q", got[0].Name)
	}
}
