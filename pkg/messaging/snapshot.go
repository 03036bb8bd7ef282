package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/HimanshuGarg5480/portfolio-dashboard/pkg/model"
)

const (
	// PortfolioStreamName 快照数据流名称
	PortfolioStreamName = "PORTFOLIO_STREAM"
	// SnapshotSubject 快照事件主题
	SnapshotSubject = "portfolio.snapshots"
)

// PublishSnapshot 发布一次刷新产生的快照事件
func (c *NATSClient) PublishSnapshot(event model.SnapshotEvent) error {
	if err := c.Publish(SnapshotSubject, event); err != nil {
		return fmt.Errorf("发布快照事件失败: %w", err)
	}
	return nil
}

// SubscribeSnapshots 订阅快照事件
func (c *NATSClient) SubscribeSnapshots(consumerName string, handler func(event model.SnapshotEvent) error) error {
	return c.Subscribe(PortfolioStreamName, consumerName, SnapshotSubject, func(data []byte) error {
		var event model.SnapshotEvent
		if err := json.Unmarshal(data, &event); err != nil {
			return fmt.Errorf("解析快照事件失败: %w", err)
		}
		return handler(event)
	})
}
