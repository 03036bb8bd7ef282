package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PortfolioSnapshot 投资组合快照，每次刷新生成一条
type PortfolioSnapshot struct {
	ID                string    `gorm:"type:uuid;primaryKey" json:"id"`
	Generation        uint64    `gorm:"not null;index" json:"generation"` // 刷新代数
	FetchedAt         time.Time `gorm:"not null;index" json:"fetched_at"`
	HoldingCount      int       `gorm:"default:0" json:"holding_count"`
	TotalInvestment   float64   `gorm:"type:decimal(18,4)" json:"total_investment"`
	TotalPresentValue float64   `gorm:"type:decimal(18,4)" json:"total_present_value"`
	TotalGainLoss     float64   `gorm:"type:decimal(18,4)" json:"total_gain_loss"`
	CreatedAt         time.Time `json:"created_at"`

	// 关联
	Holdings []Holding `gorm:"foreignKey:SnapshotID" json:"holdings,omitempty"`
}

func (s *PortfolioSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

func (PortfolioSnapshot) TableName() string {
	return "portfolio_snapshots"
}

// SnapshotEvent 通过消息总线推送的快照事件
type SnapshotEvent struct {
	Generation        uint64    `json:"generation"`
	FetchedAt         time.Time `json:"fetched_at"`
	TotalInvestment   float64   `json:"total_investment"`
	TotalPresentValue float64   `json:"total_present_value"`
	TotalGainLoss     float64   `json:"total_gain_loss"`
	Holdings          []Holding `json:"holdings"`
}
