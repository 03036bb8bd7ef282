package main

import (
	"log"
	"os"

	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/api"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/config"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/database"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/messaging"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/model"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/portfolio"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/provider"
	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/refresher"
)

func main() {
	log.Println("启动看板API服务...")

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v\n", err)
	}

	// 创建快照存储
	store := portfolio.NewStore()

	// 连接数据库，失败时关闭历史接口继续运行
	var snapshotDB *database.SnapshotDB
	var holdingDB *database.HoldingDB
	pg, err := database.NewPostgres(cfg)
	if err != nil {
		log.Printf("警告: 连接数据库失败，快照历史接口不可用: %v\n", err)
	} else {
		defer pg.Close()
		snapshotDB = pg.Snapshot()
		holdingDB = pg.Holding()
	}

	// 根据配置选择快照来源
	var ref *refresher.Refresher
	switch cfg.Provider.Source {
	case "stream":
		// 先用最近一条落库快照预热存储，等待事件期间接口即可用
		if snapshotDB != nil && holdingDB != nil {
			warmStore(store, snapshotDB, holdingDB)
		}

		// 订阅采集服务发布的快照事件
		natsClient, err := messaging.NewNATSClient(cfg.NATS.URL)
		if err != nil {
			log.Fatalf("连接NATS失败: %v\n", err)
		}
		defer natsClient.Close()

		consumerName := cfg.NATS.ClientID
		if consumerName == "" {
			consumerName = "dashboard-api"
		}
		err = natsClient.SubscribeSnapshots(consumerName, func(event model.SnapshotEvent) error {
			store.Replace(event.Holdings, event.FetchedAt)
			return nil
		})
		if err != nil {
			log.Fatalf("订阅快照事件失败: %v\n", err)
		}

	default:
		// 直接轮询数据源
		adapter := provider.NewPortfolioAdapter(cfg.Provider.BaseURL, cfg.Provider.Timeout)
		ref = refresher.NewRefresher(adapter, store, cfg.Refresh.Interval)
		ref.Start()
	}

	// 创建API处理程序
	var handlers *api.Handlers
	if ref != nil {
		handlers = api.NewHandlers(store, ref, snapshotDB, holdingDB)
	} else {
		handlers = api.NewHandlers(store, nil, snapshotDB, holdingDB)
	}

	// 创建并启动服务器
	server := api.NewServer(cfg.API.Port, cfg.API.ReadTimeout, cfg.API.WriteTimeout)
	server.SetupRoutes(handlers)
	server.Start()

	// 服务器退出后停止刷新
	if ref != nil {
		ref.Stop()
	}
}

// warmStore 从最近一条落库快照恢复内存存储
func warmStore(store *portfolio.Store, snapshotDB *database.SnapshotDB, holdingDB *database.HoldingDB) {
	latest, err := snapshotDB.GetLatest()
	if err != nil {
		log.Printf("预热存储失败，等待快照事件: %v\n", err)
		return
	}

	persisted, err := holdingDB.GetBySnapshot(latest.ID)
	if err != nil {
		log.Printf("预热存储读取持仓失败: %v\n", err)
		return
	}

	holdings := make([]model.Holding, 0, len(persisted))
	for _, h := range persisted {
		holdings = append(holdings, *h)
	}
	store.Replace(holdings, latest.FetchedAt)
	log.Printf("已从落库快照预热存储: 持仓数=%d, 抓取时间=%v", len(holdings), latest.FetchedAt)
}
