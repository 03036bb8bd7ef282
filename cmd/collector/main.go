package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/config"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/database"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/messaging"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/model"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/monitor"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/portfolio"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/provider"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/refresher"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/scheduler"
)

func main() {
	log.Println("启动持仓采集服务...")

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v\n", err)
	}

	// 创建数据源适配器
	adapter := provider.NewPortfolioAdapter(cfg.Provider.BaseURL, cfg.Provider.Timeout)

	// 连接数据库
	pg, err := database.NewPostgres(cfg)
	if err != nil {
		log.Fatalf("连接数据库失败: %v\n", err)
	}
	defer pg.Close()

	if err := pg.AutoMigrate(); err != nil {
		log.Fatalf("迁移表结构失败: %v\n", err)
	}

	// 连接NATS
	natsClient, err := messaging.NewNATSClient(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("连接NATS失败: %v\n", err)
	}
	defer natsClient.Close()

	snapshotDB := pg.Snapshot()

	// 创建快照存储和刷新器
	store := portfolio.NewStore()
	ref := refresher.NewRefresher(adapter, store, cfg.Refresh.Interval)
	ref.SetOnRefresh(func(event model.SnapshotEvent) {
		// 持久化快照
		snapshot := &model.PortfolioSnapshot{
			Generation:        event.Generation,
			FetchedAt:         event.FetchedAt,
			HoldingCount:      len(event.Holdings),
			TotalInvestment:   event.TotalInvestment,
			TotalPresentValue: event.TotalPresentValue,
			TotalGainLoss:     event.TotalGainLoss,
			Holdings:          event.Holdings,
		}
		if err := snapshotDB.Save(snapshot); err != nil {
			log.Printf("保存快照失败: %v\n", err)
		}

		// 发布快照事件，断连时跳过等待重连
		if !natsClient.IsConnected() {
			log.Println("NATS未连接，跳过本轮快照事件发布")
			return
		}
		if err := natsClient.PublishSnapshot(event); err != nil {
			log.Printf("发布快照事件失败: %v\n", err)
		}
	})
	ref.Start()

	// 创建监控器和调度器
	mon := monitor.NewMonitor(func(component, status, message string) {
		log.Printf("组件异常: %s 状态=%s %s\n", component, status, message)
	})
	mon.RegisterComponent("portfolio_provider")

	sched := scheduler.NewScheduler(snapshotDB, adapter, mon, cfg.Refresh.RetentionDays)
	sched.Start()

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("正在关闭持仓采集服务...")
	sched.Stop()
	ref.Stop()
	time.Sleep(1 * time.Second) // 等待采集任务完成
}
