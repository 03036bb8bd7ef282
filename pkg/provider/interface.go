package provider

import (
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/model"
)

// HoldingsFetcher 持仓数据获取接口
type HoldingsFetcher interface {
	FetchHoldings() ([]model.Holding, error)
}
