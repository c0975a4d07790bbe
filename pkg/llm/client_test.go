package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aqua-health-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collectWriter struct {
	strings.Builder
}

func (w *collectWriter) WriteMessage(_ int, data []byte) error {
	w.Write(data)
	return nil
}

func TestStreamChatMessages(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "text/event-stream")
		for _, part := range []string{"Boil ", "your ", "water."} {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", part)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	c := NewClient(config.LLMConfig{
		APIKey:     "key",
		BaseURL:    srv.URL + "/v1/",
		Model:      "test-model",
		Generation: config.LLMGenerationConfig{MaxTokens: 64},
	})
	w := &collectWriter{}
	err := c.StreamChatMessages(context.Background(), []Message{{Role: "user", Content: "cholera?"}}, nil, w)

	require.NoError(t, err)
	assert.Equal(t, "Boil your water.", w.String())
	assert.Equal(t, "test-model", got.Model)
	assert.True(t, got.Stream)
	require.NotNil(t, got.MaxTokens)
	assert.Equal(t, 64, *got.MaxTokens)
	assert.Nil(t, got.Temperature)
}

func TestStreamChatMessages_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(config.LLMConfig{BaseURL: srv.URL})
	err := c.StreamChatMessages(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil, &collectWriter{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerationFromConfig(t *testing.T) {
	assert.Nil(t, GenerationFromConfig(config.LLMGenerationConfig{}))

	gp := GenerationFromConfig(config.LLMGenerationConfig{Temperature: 0.2})
	require.NotNil(t, gp)
	assert.Equal(t, 0.2, *gp.Temperature)
	assert.Nil(t, gp.TopP)
}
