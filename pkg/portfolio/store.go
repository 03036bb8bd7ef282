package portfolio

import (
	"sync"
	"time"

	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/model"
)

// Store 最新持仓快照的内存存储
// 每次刷新整体替换，不跨轮次追踪单条持仓
type Store struct {
	mu         sync.RWMutex
	holdings   []model.Holding
	fetchedAt  time.Time
	generation uint64
}

// NewStore 创建快照存储
func NewStore() *Store {
	return &Store{}
}

// Replace 整体替换当前快照，返回新的代数
func (s *Store) Replace(holdings []model.Holding, fetchedAt time.Time) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.holdings = holdings
	s.fetchedAt = fetchedAt
	s.generation++

	return s.generation
}

// Holdings 返回当前快照的副本
func (s *Store) Holdings() []model.Holding {
	s.mu.RLock()
	defer s.mu.RUnlock()

	holdings := make([]model.Holding, len(s.holdings))
	copy(holdings, s.holdings)
	return holdings
}

// LastRefresh 返回最近一次成功刷新的时间
func (s *Store) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

// Generation 返回当前快照代数，0表示还未刷新过
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Ready 是否已有可用快照
func (s *Store) Ready() bool {
	return s.Generation() > 0
}
