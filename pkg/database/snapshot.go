package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/model"
)

type SnapshotDB struct {
	db *gorm.DB
}

func (p *Postgres) Snapshot() *SnapshotDB {
	return &SnapshotDB{db: p.db}
}

// Save 保存一条快照及其持仓明细
func (s *SnapshotDB) Save(snapshot *model.PortfolioSnapshot) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		holdings := snapshot.Holdings
		snapshot.Holdings = nil

		if err := tx.Create(snapshot).Error; err != nil {
			return fmt.Errorf("保存快照失败: %w", err)
		}

		if len(holdings) == 0 {
			return nil
		}

		for i := range holdings {
			holdings[i].SnapshotID = snapshot.ID
		}
		if err := tx.CreateInBatches(holdings, 500).Error; err != nil {
			return fmt.Errorf("保存快照持仓失败: %w", err)
		}

		snapshot.Holdings = holdings
		return nil
	})
}

// GetLatest 获取最近一条快照
func (s *SnapshotDB) GetLatest() (*model.PortfolioSnapshot, error) {
	var snapshot model.PortfolioSnapshot
	err := s.db.Order("fetched_at DESC").First(&snapshot).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("快照数据不存在")
		}
		return nil, fmt.Errorf("获取快照失败: %w", err)
	}
	return &snapshot, nil
}

// GetRecent 获取最近的若干条快照，不含持仓明细
func (s *SnapshotDB) GetRecent(limit int) ([]*model.PortfolioSnapshot, error) {
	var snapshots []*model.PortfolioSnapshot
	err := s.db.Order("fetched_at DESC").
		Limit(limit).
		Find(&snapshots).Error

	if err != nil {
		return nil, fmt.Errorf("查询快照历史失败: %w", err)
	}
	return snapshots, nil
}

// GetByTimeRange 按时间范围查询快照
func (s *SnapshotDB) GetByTimeRange(startTime, endTime time.Time) ([]*model.PortfolioSnapshot, error) {
	var snapshots []*model.PortfolioSnapshot
	err := s.db.Where("fetched_at BETWEEN ? AND ?", startTime, endTime).
		Order("fetched_at DESC").
		Find(&snapshots).Error

	if err != nil {
		return nil, fmt.Errorf("查询时间范围快照失败: %w", err)
	}
	return snapshots, nil
}

// DeleteOldData 删除超过保留期的快照及其持仓
func (s *SnapshotDB) DeleteOldData(days int) error {
	cutoffTime := time.Now().AddDate(0, 0, -days)

	return s.db.Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&model.PortfolioSnapshot{}).
			Where("fetched_at < ?", cutoffTime).
			Pluck("id", &ids).Error; err != nil {
			return fmt.Errorf("查询过期快照失败: %w", err)
		}

		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("snapshot_id IN ?", ids).Delete(&model.Holding{}).Error; err != nil {
			return fmt.Errorf("删除过期持仓失败: %w", err)
		}
		if err := tx.Where("id IN ?", ids).Delete(&model.PortfolioSnapshot{}).Error; err != nil {
			return fmt.Errorf("删除过期快照失败: %w", err)
		}
		return nil
	})
}
