package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/model"
)

type HoldingDB struct {
	db *gorm.DB
}

func (p *Postgres) Holding() *HoldingDB {
	return &HoldingDB{db: p.db}
}

// GetBySnapshot 获取某条快照的全部持仓
func (h *HoldingDB) GetBySnapshot(snapshotID string) ([]*model.Holding, error) {
	var holdings []*model.Holding
	err := h.db.Where("snapshot_id = ?", snapshotID).
		Order("name ASC").
		Find(&holdings).Error

	if err != nil {
		return nil, fmt.Errorf("查询快照持仓失败: %w", err)
	}
	return holdings, nil
}

// GetBySector 按板块查询持仓历史
func (h *HoldingDB) GetBySector(sector string, limit int) ([]*model.Holding, error) {
	var holdings []*model.Holding
	err := h.db.Where("sector = ?", sector).
		Order("created_at DESC").
		Limit(limit).
		Find(&holdings).Error

	if err != nil {
		return nil, fmt.Errorf("查询板块持仓失败: %w", err)
	}
	return holdings, nil
}
