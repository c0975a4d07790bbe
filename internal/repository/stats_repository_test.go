package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestStatsRepository_IncrementAndGetAll(t *testing.T) {
	repo := NewStatsRepository(newTestRedis(t))
	ctx := context.Background()

	require.NoError(t, repo.Increment(ctx, IntentHit{Intent: "greeting"}))
	require.NoError(t, repo.Increment(ctx, IntentHit{Intent: "disease_field", DiseaseID: "cholera", Field: "symptoms"}))
	require.NoError(t, repo.Increment(ctx, IntentHit{Intent: "disease_summary", DiseaseID: "cholera"}))

	counts, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"greeting": 1, "disease_field": 1, "disease_summary": 1}, counts.Intents)
	assert.Equal(t, map[string]int64{"cholera": 2}, counts.Diseases)
	assert.Equal(t, map[string]int64{"symptoms": 1}, counts.Fields)
}

func TestStatsRepository_EmptyStats(t *testing.T) {
	repo := NewStatsRepository(newTestRedis(t))

	counts, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, counts.Intents)
	assert.NotNil(t, counts.Diseases)
}
