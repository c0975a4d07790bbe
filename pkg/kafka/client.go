// Package kafka 提供了聊天事件在 Kafka 上的生产与消费。
package kafka

import (
	"aqua-health-go/internal/config"
	"aqua-health-go/pkg/log"
	"aqua-health-go/pkg/tasks"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// EventProcessor 是消费端处理聊天事件的接口，使消费者与具体统计实现解耦。
type EventProcessor interface {
	Process(ctx context.Context, event tasks.ChatEvent) error
}

// Producer 把聊天事件写入 Kafka。
type Producer struct {
	writer *kafka.Writer
}

// NewProducer 初始化 Kafka 生产者。
func NewProducer(cfg config.KafkaConfig) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(cfg.Brokers, ",")...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		// 统计事件允许丢失，异步写入不阻塞聊天请求
		Async: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Errorf("写入 Kafka 失败: %d 条消息, err=%v", len(messages), err)
			}
		},
	}
	log.Info("Kafka 生产者初始化成功")
	return &Producer{writer: w}
}

// Publish 发送一个聊天事件，以意图作为消息 key。
func (p *Producer) Publish(ctx context.Context, event tasks.ChatEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Intent),
		Value: value,
	})
}

// Close 刷新并关闭生产者。
func (p *Producer) Close() error {
	return p.writer.Close()
}

// maxAttempts 是单条消息的最大处理次数，超过后提交 offset 放弃该消息。
const maxAttempts = 3

// StartConsumer 启动一个 Kafka 消费者，直到 ctx 取消。
func StartConsumer(ctx context.Context, cfg config.KafkaConfig, processor EventProcessor) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(cfg.Brokers, ","),
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})
	defer func() {
		if err := r.Close(); err != nil {
			log.Errorf("关闭 Kafka 消费者失败: %v", err)
		}
	}()

	log.Infof("Kafka 消费者已启动，正在监听主题 '%s'", cfg.Topic)

	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info("Kafka 消费者已停止")
				return
			}
			log.Error("从 Kafka 读取消息失败", err)
			return
		}

		var event tasks.ChatEvent
		if err := json.Unmarshal(m.Value, &event); err != nil {
			// 消息格式错误，直接提交，避免阻塞队列
			log.Errorf("无法解析 Kafka 消息: %v, value: %s", err, string(m.Value))
		} else if err := processWithRetry(ctx, processor, event); err != nil {
			log.Errorf("聊天事件处理失败，已放弃: offset=%d, err=%v", m.Offset, err)
		}

		if err := r.CommitMessages(ctx, m); err != nil {
			log.Errorf("提交 Kafka 消息 offset 失败: %v", err)
		}
	}
}

func processWithRetry(ctx context.Context, processor EventProcessor, event tasks.ChatEvent) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = processor.Process(ctx, event); err == nil {
			return nil
		}
		log.Warnf("处理聊天事件失败(第 %d 次): %v", attempt, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
		}
	}
	return fmt.Errorf("after %d attempts: %w", maxAttempts, err)
}
