package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const (
	intentStatsKey  = "chat:stats:intent"
	diseaseStatsKey = "chat:stats:disease"
	fieldStatsKey   = "chat:stats:field"
)

// IntentHit 是一次聊天解析需要累加的计数项，空字段不计数。
type IntentHit struct {
	Intent    string
	DiseaseID string
	Field     string
}

// IntentCounts 是三张计数哈希表的快照。
type IntentCounts struct {
	Intents  map[string]int64
	Diseases map[string]int64
	Fields   map[string]int64
}

// StatsRepository 定义了聊天意图聚合计数的操作接口。只保存计数，不保存消息内容。
type StatsRepository interface {
	Increment(ctx context.Context, hit IntentHit) error
	GetAll(ctx context.Context) (*IntentCounts, error)
}

type redisStatsRepository struct {
	redisClient *redis.Client
}

// NewStatsRepository 创建一个新的 StatsRepository 实例。
func NewStatsRepository(redisClient *redis.Client) StatsRepository {
	return &redisStatsRepository{redisClient: redisClient}
}

// Increment 在一个 pipeline 中对各哈希表执行 HINCRBY。
func (r *redisStatsRepository) Increment(ctx context.Context, hit IntentHit) error {
	pipe := r.redisClient.TxPipeline()
	pipe.HIncrBy(ctx, intentStatsKey, hit.Intent, 1)
	if hit.DiseaseID != "" {
		pipe.HIncrBy(ctx, diseaseStatsKey, hit.DiseaseID, 1)
	}
	if hit.Field != "" {
		pipe.HIncrBy(ctx, fieldStatsKey, hit.Field, 1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment intent stats: %w", err)
	}
	return nil
}

// GetAll 读取全部计数，不存在的哈希表返回空 map。
func (r *redisStatsRepository) GetAll(ctx context.Context) (*IntentCounts, error) {
	counts := &IntentCounts{}
	var err error
	if counts.Intents, err = r.readHash(ctx, intentStatsKey); err != nil {
		return nil, err
	}
	if counts.Diseases, err = r.readHash(ctx, diseaseStatsKey); err != nil {
		return nil, err
	}
	if counts.Fields, err = r.readHash(ctx, fieldStatsKey); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *redisStatsRepository) readHash(ctx context.Context, key string) (map[string]int64, error) {
	raw, err := r.redisClient.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	out := make(map[string]int64, len(raw))
	for k, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid counter %s[%s]=%q: %w", key, k, v, err)
		}
		out[k] = n
	}
	return out, nil
}
