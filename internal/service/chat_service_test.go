package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"aqua-health-go/internal/intent"
	"aqua-health-go/internal/model"
	"aqua-health-go/pkg/llm"
	"aqua-health-go/pkg/tasks"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	chunks []string
	err    error
	got    []llm.Message
}

func (f *fakeLLM) StreamChatMessages(_ context.Context, messages []llm.Message, _ *llm.GenerationParams, writer llm.MessageWriter) error {
	f.got = messages
	for _, c := range f.chunks {
		if err := writer.WriteMessage(websocket.TextMessage, []byte(c)); err != nil {
			return err
		}
	}
	return f.err
}

type recordingWriter struct {
	chunks []string
}

func (w *recordingWriter) WriteMessage(_ int, data []byte) error {
	w.chunks = append(w.chunks, string(data))
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []tasks.ChatEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event tasks.ChatEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func newChatService(t *testing.T, client llm.Client, pub EventPublisher) ChatService {
	f := newFixture(t)
	return NewChatService(intent.NewResolver(f.kb, intent.DefaultLexicon()), f.composer, client, "Be brief.", pub)
}

func TestChatService_LocalReply(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newChatService(t, nil, pub)
	w := &recordingWriter{}

	reply := svc.Reply(context.Background(), "What are the symptoms of cholera?", "en", w)

	assert.Equal(t, model.IntentDiseaseField, reply.Intent)
	assert.Equal(t, "cholera", reply.Disease)
	assert.Equal(t, model.FieldSymptoms, reply.Field)
	assert.Equal(t, choleraSymptomsAnswer, reply.Response)
	assert.Equal(t, BackendLocal, reply.Backend)
	assert.Equal(t, []string{choleraSymptomsAnswer}, w.chunks)
	assert.Empty(t, reply.Notice)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "disease_field", pub.events[0].Intent)
	assert.Equal(t, "cholera", pub.events[0].DiseaseID)
	assert.Equal(t, "symptoms", pub.events[0].Field)
	assert.Equal(t, "en", pub.events[0].Language)
}

func TestChatService_AlwaysAnswers(t *testing.T) {
	svc := newChatService(t, nil, nil)

	for _, msg := range []string{"", "xyz unrelated gibberish", "   "} {
		reply := svc.Reply(context.Background(), msg, "fr", nil)
		assert.Equal(t, model.IntentFallback, reply.Intent)
		assert.NotEmpty(t, reply.Response)
		assert.Equal(t, "en", reply.Language)
	}
}

func TestChatService_RemoteBackend(t *testing.T) {
	client := &fakeLLM{chunks: []string{"Drink ", "boiled water."}}
	svc := newChatService(t, client, nil)
	w := &recordingWriter{}

	reply := svc.Reply(context.Background(), "How to prevent typhoid?", "en", w)

	assert.Equal(t, BackendRemote, reply.Backend)
	assert.Equal(t, "Drink boiled water.", reply.Response)
	assert.Equal(t, model.IntentDiseaseField, reply.Intent)
	assert.Equal(t, model.FieldPrevention, reply.Field)
	assert.Equal(t, []string{"Drink ", "boiled water."}, w.chunks)

	// 无状态：只有系统提示和本轮消息
	require.Len(t, client.got, 2)
	assert.Equal(t, "system", client.got[0].Role)
	assert.True(t, strings.HasPrefix(client.got[0].Content, "Be brief."))
	assert.Contains(t, client.got[0].Content, "Prevention of Typhoid:")
	assert.Equal(t, llm.Message{Role: "user", Content: "How to prevent typhoid?"}, client.got[1])
}

func TestChatService_RemoteFailureFallsBackToLocal(t *testing.T) {
	client := &fakeLLM{err: errors.New("connection refused")}
	svc := newChatService(t, client, nil)
	w := &recordingWriter{}

	reply := svc.Reply(context.Background(), "What are the symptoms of cholera?", "en", w)

	assert.Equal(t, BackendLocal, reply.Backend)
	assert.Equal(t, choleraSymptomsAnswer, reply.Response)
	assert.Equal(t, []string{choleraSymptomsAnswer}, w.chunks)
	assert.Equal(t, "The online assistant is unavailable, answering from the built-in guide.", reply.Notice)
}

func TestChatService_RemotePartialAnswerIsKept(t *testing.T) {
	client := &fakeLLM{chunks: []string{"Cholera spreads"}, err: errors.New("stream reset")}
	svc := newChatService(t, client, nil)

	reply := svc.Reply(context.Background(), "Why does cholera spread?", "en", nil)

	assert.Equal(t, BackendRemote, reply.Backend)
	assert.Equal(t, "Cholera spreads", reply.Response)
}

func TestChatService_GreetingLanguage(t *testing.T) {
	svc := newChatService(t, nil, nil)

	tests := []struct {
		name     string
		message  string
		lang     string
		want     model.Intent
		wantLang string
	}{
		{"未指定语言时匹配全部问候语", "namaste", "", model.IntentGreeting, "en"},
		{"不支持的语言匹配全部问候语", "namaste", "fr", model.IntentGreeting, "en"},
		{"未指定语言的孟加拉语问候", "নমস্কার", "", model.IntentGreeting, "en"},
		{"印地语", "namaste", "hi-IN", model.IntentGreeting, "hi"},
		{"英语只匹配通用问候语", "namaste", "en", model.IntentFallback, "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := svc.Reply(context.Background(), tt.message, tt.lang, nil)
			assert.Equal(t, tt.want, reply.Intent)
			assert.Equal(t, tt.wantLang, reply.Language)
			assert.NotEmpty(t, reply.Response)
		})
	}
}

func TestChatService_RomanizedTreatmentQuestions(t *testing.T) {
	svc := newChatService(t, nil, nil)

	tests := []struct {
		name    string
		message string
		lang    string
	}{
		{"孟加拉语罗马字", "cholera cikitsa", "bn"},
		{"孟加拉语罗马字 osudh", "cholera osudh", "bn"},
		{"印地语罗马字", "cholera ka ilaj", "hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := svc.Reply(context.Background(), tt.message, tt.lang, nil)
			assert.Equal(t, model.IntentDiseaseField, reply.Intent)
			assert.Equal(t, "cholera", reply.Disease)
			assert.Equal(t, model.FieldTreatment, reply.Field)
		})
	}
}
