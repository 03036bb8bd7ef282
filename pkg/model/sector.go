package model

// SectorSummary 按板块汇总的持仓数据
type SectorSummary struct {
	Sector        string  `json:"sector"`
	HoldingCount  int     `json:"holding_count"`
	PurchasePrice float64 `json:"purchase_price"` // 买入价合计
	Investment    float64 `json:"investment"`     // 投入金额合计
	PresentValue  float64 `json:"present_value"`  // 当前市值合计
	GainLoss      float64 `json:"gain_loss"`      // 盈亏合计
}

// SectorSlice 饼图的单个扇区：板块投入金额及其占比
type SectorSlice struct {
	Sector     string  `json:"sector"`
	Investment float64 `json:"investment"`
	Percent    float64 `json:"percent"` // 占总投入的百分比，0-100
}
