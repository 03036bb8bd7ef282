package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"

	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/database"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/monitor"
)

// HealthChecker 数据源健康检查接口
type HealthChecker interface {
	CheckHealth() error
}

// Scheduler 后台任务调度器
type Scheduler struct {
	cron          *cron.Cron
	snapshots     *database.SnapshotDB
	checker       HealthChecker
	monitor       *monitor.Monitor
	retentionDays int
}

// NewScheduler 创建任务调度器
func NewScheduler(snapshots *database.SnapshotDB, checker HealthChecker, mon *monitor.Monitor, retentionDays int) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		snapshots:     snapshots,
		checker:       checker,
		monitor:       mon,
		retentionDays: retentionDays,
	}
}

// Start 启动调度器
func (s *Scheduler) Start() {
	// 每日清理过期快照
	s.cron.AddFunc("@daily", s.cleanupSnapshots)

	// 每5分钟检查数据源健康状态
	s.cron.AddFunc("@every 5m", s.monitorDataHealth)

	s.cron.Start()
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// cleanupSnapshots 清理过期快照
func (s *Scheduler) cleanupSnapshots() {
	log.Printf("清理%d天前的快照数据...", s.retentionDays)
	if err := s.snapshots.DeleteOldData(s.retentionDays); err != nil {
		log.Printf("清理过期快照失败: %v", err)
	}
}

// monitorDataHealth 监控数据源健康状态
func (s *Scheduler) monitorDataHealth() {
	log.Println("检查数据源健康状态...")

	if err := s.checker.CheckHealth(); err != nil {
		s.monitor.UpdateStatus("portfolio_provider", "unhealthy", err.Error())
	} else {
		s.monitor.UpdateStatus("portfolio_provider", "healthy", "")
	}

	// 存在不健康组件时输出整体状态
	if !s.monitor.IsHealthy() {
		for _, status := range s.monitor.GetAllStatus() {
			if status.Status != "healthy" {
				log.Printf("组件 %s 状态=%s %s", status.Component, status.Status, status.Message)
			}
		}
	}
}
