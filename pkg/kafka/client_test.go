package kafka

import (
	"context"
	"errors"
	"testing"

	"aqua-health-go/pkg/tasks"

	"github.com/stretchr/testify/assert"
)

type flakyProcessor struct {
	failures int
	calls    int
}

func (p *flakyProcessor) Process(ctx context.Context, event tasks.ChatEvent) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("redis unavailable")
	}
	return nil
}

func TestProcessWithRetry_RecoversWithinLimit(t *testing.T) {
	p := &flakyProcessor{failures: 2}

	err := processWithRetry(context.Background(), p, tasks.ChatEvent{Intent: "greeting"})

	assert.NoError(t, err)
	assert.Equal(t, 3, p.calls)
}

func TestProcessWithRetry_GivesUp(t *testing.T) {
	p := &flakyProcessor{failures: 10}

	err := processWithRetry(context.Background(), p, tasks.ChatEvent{Intent: "greeting"})

	assert.Error(t, err)
	assert.Equal(t, maxAttempts, p.calls)
}

func TestProcessWithRetry_StopsOnCancel(t *testing.T) {
	p := &flakyProcessor{failures: 10}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := processWithRetry(ctx, p, tasks.ChatEvent{Intent: "greeting"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, p.calls)
}
