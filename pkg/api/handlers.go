package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/database"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/model"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/portfolio"
)

// Refresher 手动刷新接口
type Refresher interface {
	RefreshOnce() error
}

// Handlers API处理程序
type Handlers struct {
	store     *portfolio.Store
	refresher Refresher            // 可为空，为空时不支持手动刷新
	snapshots *database.SnapshotDB // 可为空，为空时不提供历史接口
	holdings  *database.HoldingDB  // 可为空，为空时不提供持仓历史接口
}

// NewHandlers 创建新的API处理程序
func NewHandlers(store *portfolio.Store, refresher Refresher, snapshots *database.SnapshotDB, holdings *database.HoldingDB) *Handlers {
	return &Handlers{
		store:     store,
		refresher: refresher,
		snapshots: snapshots,
		holdings:  holdings,
	}
}

// HealthCheck 健康检查处理程序
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ReadinessCheck 就绪检查处理程序，首次刷新成功前返回503
func (h *Handlers) ReadinessCheck(c *gin.Context) {
	if !h.store.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"error":  "暂无持仓快照",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "ready",
		"last_refresh": h.store.LastRefresh(),
	})
}

// GetHoldings 获取持仓表格处理程序，支持按列排序
func (h *Handlers) GetHoldings(c *gin.Context) {
	sortBy := c.DefaultQuery("sort_by", "name")
	order := c.DefaultQuery("order", "asc")

	if order != "asc" && order != "desc" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "order参数必须为asc或desc",
		})
		return
	}

	holdings := h.store.Holdings()
	if err := portfolio.SortHoldings(holdings, sortBy, order == "desc"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":         holdings,
		"count":        len(holdings),
		"last_refresh": h.store.LastRefresh(),
	})
}

// GetHoldingsSummary 获取持仓整体汇总处理程序
func (h *Handlers) GetHoldingsSummary(c *gin.Context) {
	holdings := h.store.Holdings()
	investment, presentValue, gainLoss := portfolio.Totals(holdings)

	c.JSON(http.StatusOK, gin.H{
		"holding_count":       len(holdings),
		"total_investment":    investment,
		"total_present_value": presentValue,
		"total_gain_loss":     gainLoss,
		"last_refresh":        h.store.LastRefresh(),
	})
}

// GetSectors 获取板块汇总处理程序
func (h *Handlers) GetSectors(c *gin.Context) {
	summaries := portfolio.AggregateBySector(h.store.Holdings())

	c.JSON(http.StatusOK, gin.H{
		"data":  summaries,
		"count": len(summaries),
	})
}

// GetSectorDistribution 获取板块投入占比处理程序（饼图数据）
func (h *Handlers) GetSectorDistribution(c *gin.Context) {
	summaries := portfolio.AggregateBySector(h.store.Holdings())
	slices := portfolio.Distribution(summaries)

	c.JSON(http.StatusOK, gin.H{
		"data": slices,
	})
}

// GetSnapshots 获取快照历史处理程序
// 默认返回最近的若干条；带from/to参数时按时间范围查询
func (h *Handlers) GetSnapshots(c *gin.Context) {
	limit := 20 // 默认限制
	if limitParam := c.Query("limit"); limitParam != "" {
		n, err := strconv.Atoi(limitParam)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "limit参数必须为正整数",
			})
			return
		}
		limit = n
	}

	fromParam := c.Query("from")
	toParam := c.Query("to")
	var from, to time.Time
	if fromParam != "" || toParam != "" {
		var err error
		if from, err = time.Parse(time.RFC3339, fromParam); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "from参数必须为RFC3339时间",
			})
			return
		}
		if to, err = time.Parse(time.RFC3339, toParam); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "to参数必须为RFC3339时间",
			})
			return
		}
	}

	if h.snapshots == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "快照历史功能未启用",
		})
		return
	}

	var snapshots []*model.PortfolioSnapshot
	var err error
	if fromParam != "" || toParam != "" {
		snapshots, err = h.snapshots.GetByTimeRange(from, to)
	} else {
		snapshots, err = h.snapshots.GetRecent(limit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取快照历史失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": snapshots,
	})
}

// GetSnapshotHoldings 获取某条快照的持仓明细处理程序
func (h *Handlers) GetSnapshotHoldings(c *gin.Context) {
	snapshotID := c.Param("id")

	if h.holdings == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "持仓历史功能未启用",
		})
		return
	}

	holdings, err := h.holdings.GetBySnapshot(snapshotID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取快照持仓失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  holdings,
		"count": len(holdings),
	})
}

// GetHoldingsHistory 按板块查询持仓历史处理程序
func (h *Handlers) GetHoldingsHistory(c *gin.Context) {
	sector := c.Query("sector")
	if sector == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "sector参数不能为空",
		})
		return
	}

	limit := 50 // 默认限制
	if limitParam := c.Query("limit"); limitParam != "" {
		n, err := strconv.Atoi(limitParam)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "limit参数必须为正整数",
			})
			return
		}
		limit = n
	}

	if h.holdings == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "持仓历史功能未启用",
		})
		return
	}

	holdings, err := h.holdings.GetBySector(sector, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "查询板块持仓历史失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  holdings,
		"count": len(holdings),
	})
}

// TriggerRefresh 手动触发刷新处理程序
func (h *Handlers) TriggerRefresh(c *gin.Context) {
	if h.refresher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "当前模式不支持手动刷新",
		})
		return
	}

	if err := h.refresher.RefreshOnce(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "刷新持仓失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"generation":   h.store.Generation(),
		"last_refresh": h.store.LastRefresh(),
	})
}
