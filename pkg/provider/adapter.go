package provider

import (
	"fmt"
	"time"

	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/model"
)

// PortfolioAdapter 持仓数据源适配器
type PortfolioAdapter struct {
	client *PortfolioClient
}

// NewPortfolioAdapter 创建持仓数据源适配器
func NewPortfolioAdapter(baseURL string, timeout time.Duration) *PortfolioAdapter {
	return &PortfolioAdapter{
		client: NewPortfolioClient(baseURL, timeout),
	}
}

// FetchHoldings 获取全量持仓并转换为统一数据模型
func (p *PortfolioAdapter) FetchHoldings() ([]model.Holding, error) {
	resp, err := p.client.GetHoldings()
	if err != nil {
		return nil, fmt.Errorf("获取持仓数据失败: %w", err)
	}

	return p.normalizeHoldings(resp)
}

// CheckHealth 检查数据源健康状态
func (p *PortfolioAdapter) CheckHealth() error {
	return p.client.Ping()
}

// normalizeHoldings 转换为统一数据模型并计算派生字段
func (p *PortfolioAdapter) normalizeHoldings(resp *PortfolioResponse) ([]model.Holding, error) {
	holdings := make([]model.Holding, 0, len(resp.Data))

	for _, item := range resp.Data {
		if item.Name == "" {
			return nil, fmt.Errorf("持仓数据缺少名称字段")
		}

		holding := model.Holding{
			Name:           item.Name,
			Exchange:       item.Exchange,
			Quantity:       item.Quantity,
			PurchasePrice:  item.PurchasePrice,
			CurrentPrice:   item.CurrentPrice,
			PERatio:        item.PERatio,
			LatestEarnings: item.LatestEarnings,
			Sector:         item.Sector,
		}

		// 派生字段由适配器统一计算，下游不再重算
		holding.ComputeDerived()

		holdings = append(holdings, holding)
	}

	return holdings, nil
}
