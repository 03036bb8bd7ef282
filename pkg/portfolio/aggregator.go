package portfolio

import (
	"sort"

	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/model"
)

// AggregateBySector 按板块分组汇总持仓
// 板块字符串不做归一化处理，空字符串也是合法的分组键
func AggregateBySector(holdings []model.Holding) []model.SectorSummary {
	groups := make(map[string]*model.SectorSummary)

	for _, h := range holdings {
		summary, exists := groups[h.Sector]
		if !exists {
			summary = &model.SectorSummary{Sector: h.Sector}
			groups[h.Sector] = summary
		}

		summary.HoldingCount++
		summary.PurchasePrice += h.PurchasePrice
		summary.Investment += h.Investment
		summary.PresentValue += h.PresentValue
		summary.GainLoss += h.GainLoss
	}

	// 按板块名排序，保证输出顺序稳定
	summaries := make([]model.SectorSummary, 0, len(groups))
	for _, summary := range groups {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Sector < summaries[j].Sector
	})

	return summaries
}

// Distribution 计算饼图数据：每个板块投入金额占总投入的百分比
func Distribution(summaries []model.SectorSummary) []model.SectorSlice {
	var total float64
	for _, s := range summaries {
		total += s.Investment
	}

	slices := make([]model.SectorSlice, 0, len(summaries))
	for _, s := range summaries {
		slice := model.SectorSlice{
			Sector:     s.Sector,
			Investment: s.Investment,
		}
		// 总投入为0时占比记为0，避免除零
		if total != 0 {
			slice.Percent = s.Investment / total * 100
		}
		slices = append(slices, slice)
	}

	return slices
}

// Totals 计算持仓的整体汇总
func Totals(holdings []model.Holding) (investment, presentValue, gainLoss float64) {
	for _, h := range holdings {
		investment += h.Investment
		presentValue += h.PresentValue
		gainLoss += h.GainLoss
	}
	return investment, presentValue, gainLoss
}
