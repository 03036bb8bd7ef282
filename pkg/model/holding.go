package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Holding 单条持仓数据
type Holding struct {
	ID             string  `gorm:"type:uuid;primaryKey" json:"id"`
	SnapshotID     string  `gorm:"type:uuid;index" json:"snapshot_id,omitempty"`
	Name           string  `gorm:"type:varchar(100);not null;index" json:"name"`
	Exchange       string  `gorm:"type:varchar(20)" json:"exchange"`
	Quantity       float64 `gorm:"type:decimal(16,4);not null" json:"quantity"`
	PurchasePrice  float64 `gorm:"type:decimal(16,4);not null" json:"purchase_price"` // 买入价
	CurrentPrice   float64 `gorm:"type:decimal(16,4)" json:"current_price"`           // 当前市价
	Investment     float64 `gorm:"type:decimal(18,4)" json:"investment"`              // 投入金额（派生）
	PresentValue   float64 `gorm:"type:decimal(18,4)" json:"present_value"`           // 当前市值（派生）
	GainLoss       float64 `gorm:"type:decimal(18,4)" json:"gain_loss"`               // 盈亏（派生）
	PERatio        float64 `gorm:"type:decimal(10,4)" json:"pe_ratio"`
	LatestEarnings string  `gorm:"type:varchar(50)" json:"latest_earnings"` // 最新每股收益
	Sector         string  `gorm:"type:varchar(50);index" json:"sector"`

	CreatedAt time.Time `json:"created_at"`
}

func (h *Holding) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return nil
}

func (Holding) TableName() string {
	return "holdings"
}

// ComputeDerived 根据数量和价格计算派生字段
func (h *Holding) ComputeDerived() {
	h.Investment = h.Quantity * h.PurchasePrice
	h.PresentValue = h.Quantity * h.CurrentPrice
	h.GainLoss = h.PresentValue - h.Investment
}
