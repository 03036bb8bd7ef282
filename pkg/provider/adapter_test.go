package provider

import (
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/portfolio/holdings" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
}

func TestFetchHoldings(t *testing.T) {
	body := `{
		"code": 0,
		"msg": "",
		"data": [
			{
				"name": "TCS",
				"exchange": "NSE",
				"quantity": 10,
				"purchasePrice": 3000,
				"currentPrice": 3500,
				"peRatio": 28.5,
				"latestEarnings": "115.2",
				"sector": "IT"
			},
			{
				"name": "HDFC Bank",
				"exchange": "BSE",
				"quantity": 15,
				"purchasePrice": 1500,
				"currentPrice": 1450,
				"peRatio": 18.2,
				"latestEarnings": "82.4",
				"sector": "Banking"
			}
		]
	}`
	srv := newTestServer(t, http.StatusOK, body)
	defer srv.Close()

	adapter := NewPortfolioAdapter(srv.URL, 5*time.Second)
	holdings, err := adapter.FetchHoldings()
	if err != nil {
		t.Fatalf("FetchHoldings() 返回错误: %v", err)
	}

	if len(holdings) != 2 {
		t.Fatalf("FetchHoldings() 条数 = %d, 期望 2", len(holdings))
	}

	first := holdings[0]
	if first.Name != "TCS" || first.Exchange != "NSE" || first.Sector != "IT" {
		t.Errorf("第一条持仓字段不匹配: %+v", first)
	}

	// 派生字段由适配器计算
	if math.Abs(first.Investment-30000) > 1e-9 {
		t.Errorf("Investment = %v, 期望 30000", first.Investment)
	}
	if math.Abs(first.PresentValue-35000) > 1e-9 {
		t.Errorf("PresentValue = %v, 期望 35000", first.PresentValue)
	}
	if math.Abs(first.GainLoss-5000) > 1e-9 {
		t.Errorf("GainLoss = %v, 期望 5000", first.GainLoss)
	}
}

func TestFetchHoldingsAPIError(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"code": 40001, "msg": "token无效", "data": []}`)
	defer srv.Close()

	adapter := NewPortfolioAdapter(srv.URL, 5*time.Second)
	if _, err := adapter.FetchHoldings(); err == nil {
		t.Error("FetchHoldings() 对业务错误码应返回错误")
	}
}

func TestFetchHoldingsHTTPError(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, `{}`)
	defer srv.Close()

	adapter := NewPortfolioAdapter(srv.URL, 5*time.Second)
	if _, err := adapter.FetchHoldings(); err == nil {
		t.Error("FetchHoldings() 对非200状态码应返回错误")
	}
}

func TestFetchHoldingsBadJSON(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{not json`)
	defer srv.Close()

	adapter := NewPortfolioAdapter(srv.URL, 5*time.Second)
	if _, err := adapter.FetchHoldings(); err == nil {
		t.Error("FetchHoldings() 对非法JSON应返回错误")
	}
}

func TestFetchHoldingsMissingName(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"code": 0, "data": [{"sector": "IT", "quantity": 1}]}`)
	defer srv.Close()

	adapter := NewPortfolioAdapter(srv.URL, 5*time.Second)
	if _, err := adapter.FetchHoldings(); err == nil {
		t.Error("FetchHoldings() 对缺少名称的持仓应返回错误")
	}
}

func TestFetchHoldingsEmptyList(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"code": 0, "data": []}`)
	defer srv.Close()

	adapter := NewPortfolioAdapter(srv.URL, 5*time.Second)
	holdings, err := adapter.FetchHoldings()
	if err != nil {
		t.Fatalf("FetchHoldings() 返回错误: %v", err)
	}
	if len(holdings) != 0 {
		t.Errorf("FetchHoldings() 条数 = %d, 期望 0", len(holdings))
	}
}
