package portfolio

import (
	"math"
	"testing"

	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/model"
)

func makeHolding(name, sector string, quantity, purchasePrice, currentPrice float64) model.Holding {
	h := model.Holding{
		Name:          name,
		Sector:        sector,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		CurrentPrice:  currentPrice,
	}
	h.ComputeDerived()
	return h
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAggregateBySector(t *testing.T) {
	holdings := []model.Holding{
		makeHolding("TCS", "IT", 10, 3000, 3500),
		makeHolding("Infosys", "IT", 20, 1400, 1500),
		makeHolding("HDFC Bank", "Banking", 15, 1500, 1450),
		makeHolding("ICICI Bank", "Banking", 5, 900, 1000),
		makeHolding("Reliance", "Energy", 8, 2400, 2600),
	}

	summaries := AggregateBySector(holdings)

	// 输出板块键集合等于输入的去重板块集合
	wantSectors := []string{"Banking", "Energy", "IT"}
	if len(summaries) != len(wantSectors) {
		t.Fatalf("AggregateBySector() 板块数 = %d, 期望 %d", len(summaries), len(wantSectors))
	}
	for i, want := range wantSectors {
		if summaries[i].Sector != want {
			t.Errorf("summaries[%d].Sector = %q, 期望 %q", i, summaries[i].Sector, want)
		}
	}

	// 每个板块的合计等于成员字段之和
	for _, summary := range summaries {
		var wantCount int
		var wantPurchase, wantInvestment, wantPresent, wantGainLoss float64
		for _, h := range holdings {
			if h.Sector != summary.Sector {
				continue
			}
			wantCount++
			wantPurchase += h.PurchasePrice
			wantInvestment += h.Investment
			wantPresent += h.PresentValue
			wantGainLoss += h.GainLoss
		}

		if summary.HoldingCount != wantCount {
			t.Errorf("板块 %s HoldingCount = %d, 期望 %d", summary.Sector, summary.HoldingCount, wantCount)
		}
		if !almostEqual(summary.PurchasePrice, wantPurchase) {
			t.Errorf("板块 %s PurchasePrice = %v, 期望 %v", summary.Sector, summary.PurchasePrice, wantPurchase)
		}
		if !almostEqual(summary.Investment, wantInvestment) {
			t.Errorf("板块 %s Investment = %v, 期望 %v", summary.Sector, summary.Investment, wantInvestment)
		}
		if !almostEqual(summary.PresentValue, wantPresent) {
			t.Errorf("板块 %s PresentValue = %v, 期望 %v", summary.Sector, summary.PresentValue, wantPresent)
		}
		if !almostEqual(summary.GainLoss, wantGainLoss) {
			t.Errorf("板块 %s GainLoss = %v, 期望 %v", summary.Sector, summary.GainLoss, wantGainLoss)
		}
	}
}

func TestAggregateBySectorEmptySectorKey(t *testing.T) {
	holdings := []model.Holding{
		makeHolding("Unknown Co", "", 10, 100, 110),
		makeHolding("TCS", "IT", 10, 3000, 3500),
	}

	summaries := AggregateBySector(holdings)

	if len(summaries) != 2 {
		t.Fatalf("AggregateBySector() 板块数 = %d, 期望 2", len(summaries))
	}
	// 空板块名作为合法分组键，按字典序排首位
	if summaries[0].Sector != "" {
		t.Errorf("summaries[0].Sector = %q, 期望空字符串", summaries[0].Sector)
	}
	if !almostEqual(summaries[0].Investment, 1000) {
		t.Errorf("空板块 Investment = %v, 期望 1000", summaries[0].Investment)
	}
}

func TestAggregateBySectorEmptyInput(t *testing.T) {
	summaries := AggregateBySector(nil)
	if len(summaries) != 0 {
		t.Errorf("AggregateBySector(nil) 返回 %d 个板块, 期望 0", len(summaries))
	}
}

func TestDistribution(t *testing.T) {
	holdings := []model.Holding{
		makeHolding("A", "IT", 10, 30, 35),      // 投入 300
		makeHolding("B", "Banking", 10, 50, 45), // 投入 500
		makeHolding("C", "Energy", 10, 20, 22),  // 投入 200
	}

	slices := Distribution(AggregateBySector(holdings))

	if len(slices) != 3 {
		t.Fatalf("Distribution() 扇区数 = %d, 期望 3", len(slices))
	}

	// 占比之和为100
	var totalPercent float64
	for _, slice := range slices {
		totalPercent += slice.Percent
	}
	if !almostEqual(totalPercent, 100) {
		t.Errorf("占比之和 = %v, 期望 100", totalPercent)
	}

	// 抽查单个扇区占比
	for _, slice := range slices {
		if slice.Sector == "Banking" && !almostEqual(slice.Percent, 50) {
			t.Errorf("Banking占比 = %v, 期望 50", slice.Percent)
		}
	}
}

func TestDistributionZeroInvestment(t *testing.T) {
	holdings := []model.Holding{
		makeHolding("A", "IT", 0, 30, 35),
	}

	slices := Distribution(AggregateBySector(holdings))

	if len(slices) != 1 {
		t.Fatalf("Distribution() 扇区数 = %d, 期望 1", len(slices))
	}
	// 总投入为0时占比为0，不出现NaN
	if slices[0].Percent != 0 {
		t.Errorf("零投入占比 = %v, 期望 0", slices[0].Percent)
	}
}

func TestTotals(t *testing.T) {
	holdings := []model.Holding{
		makeHolding("A", "IT", 10, 30, 35),
		makeHolding("B", "Banking", 10, 50, 45),
	}

	investment, presentValue, gainLoss := Totals(holdings)

	if !almostEqual(investment, 800) {
		t.Errorf("投入合计 = %v, 期望 800", investment)
	}
	if !almostEqual(presentValue, 800) {
		t.Errorf("市值合计 = %v, 期望 800", presentValue)
	}
	if !almostEqual(gainLoss, 0) {
		t.Errorf("盈亏合计 = %v, 期望 0", gainLoss)
	}
}
