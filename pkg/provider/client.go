package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PortfolioClient 持仓数据源API客户端
type PortfolioClient struct {
	BaseURL string
	Client  *http.Client
}

// HoldingPayload 数据源返回的单条持仓
type HoldingPayload struct {
	Name           string  `json:"name"`
	Exchange       string  `json:"exchange"`
	Quantity       float64 `json:"quantity"`
	PurchasePrice  float64 `json:"purchasePrice"`
	CurrentPrice   float64 `json:"currentPrice"`
	PERatio        float64 `json:"peRatio"`
	LatestEarnings string  `json:"latestEarnings"`
	Sector         string  `json:"sector"`
}

// PortfolioResponse 数据源API响应结构
type PortfolioResponse struct {
	Code int              `json:"code"`
	Msg  string           `json:"msg"`
	Data []HoldingPayload `json:"data"`
}

// NewPortfolioClient 创建新的数据源客户端
func NewPortfolioClient(baseURL string, timeout time.Duration) *PortfolioClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PortfolioClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetHoldings 获取全量持仓列表
func (c *PortfolioClient) GetHoldings() (*PortfolioResponse, error) {
	url := c.BaseURL + "/api/portfolio/holdings"

	httpReq, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("执行HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API返回非200状态码: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	var portfolioResp PortfolioResponse
	if err := json.Unmarshal(body, &portfolioResp); err != nil {
		return nil, fmt.Errorf("解析响应失败: %w", err)
	}

	if portfolioResp.Code != 0 {
		return nil, fmt.Errorf("API返回错误: %s", portfolioResp.Msg)
	}

	return &portfolioResp, nil
}

// Ping 检查数据源是否可达
func (c *PortfolioClient) Ping() error {
	resp, err := c.Client.Get(c.BaseURL + "/health")
	if err != nil {
		return fmt.Errorf("数据源不可达: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("数据源健康检查返回非200状态码: %d", resp.StatusCode)
	}
	return nil
}
