package domain

import "context"

// EventPublisher 领域事件发布端口，由基础设施层实现。
// key 用作消息分区键（通常为合约 symbol）。
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, key string, event any) error
}
