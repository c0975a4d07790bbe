package service

import (
	"aqua-health-go/internal/model"
	"aqua-health-go/internal/repository"
	"aqua-health-go/pkg/tasks"
	"context"
	"errors"
	"time"
)

// ErrStatsDisabled 表示没有配置统计存储。
var ErrStatsDisabled = errors.New("intent statistics are disabled")

// StatsService 接口定义了聊天意图统计操作。它同时是 Kafka 消费端的事件处理器。
type StatsService interface {
	Process(ctx context.Context, event tasks.ChatEvent) error
	GetStats(ctx context.Context) (*model.IntentStatsDTO, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService 创建一个新的 StatsService 实例。statsRepo 为 nil 时统计功能关闭。
func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

// Process 把一个聊天事件累加到计数中。
func (s *statsService) Process(ctx context.Context, event tasks.ChatEvent) error {
	if s.statsRepo == nil {
		return nil
	}
	return s.statsRepo.Increment(ctx, repository.IntentHit{
		Intent:    event.Intent,
		DiseaseID: event.DiseaseID,
		Field:     event.Field,
	})
}

// GetStats 返回当前的聚合计数。
func (s *statsService) GetStats(ctx context.Context) (*model.IntentStatsDTO, error) {
	if s.statsRepo == nil {
		return nil, ErrStatsDisabled
	}
	counts, err := s.statsRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return &model.IntentStatsDTO{
		Intents:     counts.Intents,
		Diseases:    counts.Diseases,
		Fields:      counts.Fields,
		GeneratedAt: model.LocalTime(time.Now()),
	}, nil
}

// EventPublisher 发布聊天事件。Kafka 生产者和 directPublisher 都实现了它。
type EventPublisher interface {
	Publish(ctx context.Context, event tasks.ChatEvent) error
}

// directPublisher 在没有 Kafka 时把事件直接交给统计服务。
type directPublisher struct {
	stats StatsService
}

// NewDirectPublisher 创建一个同步写入统计的 EventPublisher。
func NewDirectPublisher(stats StatsService) EventPublisher {
	return &directPublisher{stats: stats}
}

func (p *directPublisher) Publish(ctx context.Context, event tasks.ChatEvent) error {
	return p.stats.Process(ctx, event)
}
