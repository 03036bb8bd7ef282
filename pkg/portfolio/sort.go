package portfolio

import (
	"fmt"
	"sort"

	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/model"
)

// 表格支持的排序列
var sortKeys = map[string]func(a, b model.Holding) bool{
	"name":           func(a, b model.Holding) bool { return a.Name < b.Name },
	"exchange":       func(a, b model.Holding) bool { return a.Exchange < b.Exchange },
	"quantity":       func(a, b model.Holding) bool { return a.Quantity < b.Quantity },
	"purchase_price": func(a, b model.Holding) bool { return a.PurchasePrice < b.PurchasePrice },
	"current_price":  func(a, b model.Holding) bool { return a.CurrentPrice < b.CurrentPrice },
	"investment":     func(a, b model.Holding) bool { return a.Investment < b.Investment },
	"present_value":  func(a, b model.Holding) bool { return a.PresentValue < b.PresentValue },
	"gain_loss":      func(a, b model.Holding) bool { return a.GainLoss < b.GainLoss },
	"pe_ratio":       func(a, b model.Holding) bool { return a.PERatio < b.PERatio },
	"sector":         func(a, b model.Holding) bool { return a.Sector < b.Sector },
}

// SortHoldings 按指定列对持仓排序，原地稳定排序
func SortHoldings(holdings []model.Holding, key string, descending bool) error {
	less, exists := sortKeys[key]
	if !exists {
		return fmt.Errorf("不支持的排序列: %s", key)
	}

	sort.SliceStable(holdings, func(i, j int) bool {
		if descending {
			return less(holdings[j], holdings[i])
		}
		return less(holdings[i], holdings[j])
	})

	return nil
}

// ValidSortKey 检查排序列是否合法
func ValidSortKey(key string) bool {
	_, exists := sortKeys[key]
	return exists
}
