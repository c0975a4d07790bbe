package database

import (
	"aqua-health-go/pkg/log"
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// OpenRedis 创建 Redis 客户端并用 PING 测试连接。
func OpenRedis(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Redis client connected successfully")
	return rdb, nil
}
