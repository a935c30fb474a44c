// Package messaging 领域事件发布的 Kafka 实现
package messaging

import (
	"context"
	"time"

	"github.com/wyfcoding/quantpricing/internal/quant/domain"
	"github.com/wyfcoding/quantpricing/pkg/mq"
)

// envelope 事件外层信封，统一携带事件类型与发生时间
type envelope struct {
	EventType  string    `json:"event_type"`
	Key        string    `json:"key"`
	Payload    any       `json:"payload"`
	OccurredOn time.Time `json:"occurred_on"`
}

// KafkaEventPublisher 将领域事件发布到单一 topic，以 key 分区
type KafkaEventPublisher struct {
	producer *mq.KafkaProducer
	topic    string
}

// NewKafkaEventPublisher 创建 Kafka 事件发布器
func NewKafkaEventPublisher(producer *mq.KafkaProducer, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

// Publish 实现 domain.EventPublisher
func (p *KafkaEventPublisher) Publish(ctx context.Context, eventType string, key string, event any) error {
	return p.producer.SendMessage(ctx, p.topic, key, envelope{
		EventType:  eventType,
		Key:        key,
		Payload:    event,
		OccurredOn: time.Now(),
	})
}

// NoopEventPublisher 未配置 Kafka 时的空实现
type NoopEventPublisher struct{}

// Publish 实现 domain.EventPublisher，直接丢弃事件
func (NoopEventPublisher) Publish(context.Context, string, string, any) error {
	return nil
}

var (
	_ domain.EventPublisher = (*KafkaEventPublisher)(nil)
	_ domain.EventPublisher = NoopEventPublisher{}
)
