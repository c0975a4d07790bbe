package service

import (
	"aqua-health-go/internal/intent"
	"aqua-health-go/internal/model"
	"aqua-health-go/pkg/llm"
	"aqua-health-go/pkg/log"
	"aqua-health-go/pkg/tasks"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// BackendLocal 表示回复由本地意图解析器生成。
	BackendLocal = "local"
	// BackendRemote 表示回复由远程大模型生成。
	BackendRemote = "remote"
)

// ChatService 定义了聊天操作的接口。每轮对话相互独立，不保存历史。
type ChatService interface {
	// Reply 解析消息并生成回复。writer 不为 nil 时回复以分块形式写入 writer。
	// Reply 总是返回非空回复，远程后端失败时退回本地解析器。
	Reply(ctx context.Context, message, lang string, writer llm.MessageWriter) *model.ChatReplyDTO
}

type chatService struct {
	resolver    *intent.Resolver
	composer    ResponseComposer
	llmClient   llm.Client
	promptRules string
	publisher   EventPublisher
}

// NewChatService 创建一个新的 ChatService 实例。
// llmClient 为 nil 时只使用本地解析器；publisher 为 nil 时不记录统计。
func NewChatService(resolver *intent.Resolver, composer ResponseComposer, llmClient llm.Client, promptRules string, publisher EventPublisher) ChatService {
	return &chatService{
		resolver:    resolver,
		composer:    composer,
		llmClient:   llmClient,
		promptRules: promptRules,
		publisher:   publisher,
	}
}

func (s *chatService) Reply(ctx context.Context, message, lang string, writer llm.MessageWriter) *model.ChatReplyDTO {
	// 问候语按请求原本的语言匹配，未指定或不支持时匹配全部语言
	greetingLang, _ := s.composer.SupportedLanguage(lang)
	lang = s.composer.Language(lang)
	res := s.resolver.Resolve(message, greetingLang)
	log.Debugf("聊天意图解析: intent=%s disease=%s field=%s", res.Intent, res.DiseaseID, res.Field)
	local := s.composer.ChatResponse(lang, res)

	reply := &model.ChatReplyDTO{
		Intent:   res.Intent,
		Disease:  res.DiseaseID,
		Field:    res.Field,
		Language: lang,
		Backend:  BackendLocal,
	}

	if s.llmClient != nil {
		text, err := s.remoteReply(ctx, message, lang, local, writer)
		if text != "" {
			if err != nil {
				log.Warnf("远程聊天后端中途失败，返回已生成的部分: %v", err)
			}
			reply.Response = text
			reply.Backend = BackendRemote
		} else {
			log.Warnf("远程聊天后端不可用，使用本地解析器: %v", err)
			reply.Notice = s.composer.Text(lang, "chat.remote_unavailable")
		}
	}

	if reply.Response == "" {
		reply.Response = local
		if writer != nil {
			if err := writer.WriteMessage(websocket.TextMessage, []byte(local)); err != nil {
				log.Warnf("写入聊天回复失败: %v", err)
			}
		}
	}

	s.publish(reply)
	return reply
}

// remoteReply 以无状态方式调用远程后端：一条系统提示加本轮用户消息。
func (s *chatService) remoteReply(ctx context.Context, message, lang, reference string, writer llm.MessageWriter) (string, error) {
	collector := &chunkCollector{next: writer}
	messages := []llm.Message{
		{Role: "system", Content: s.buildSystemMessage(lang, reference)},
		{Role: "user", Content: message},
	}
	err := s.llmClient.StreamChatMessages(ctx, messages, nil, collector)
	text := collector.String()
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("remote backend returned an empty answer")
	}
	return text, err
}

func (s *chatService) buildSystemMessage(lang, reference string) string {
	var sys strings.Builder
	if s.promptRules != "" {
		sys.WriteString(s.promptRules)
		sys.WriteString("\n\n")
	}
	sys.WriteString(fmt.Sprintf("Answer in the language with code %q.\n", lang))
	sys.WriteString("Reference from the built-in waterborne disease guide:\n")
	sys.WriteString(reference)
	return sys.String()
}

func (s *chatService) publish(reply *model.ChatReplyDTO) {
	if s.publisher == nil {
		return
	}
	event := tasks.ChatEvent{
		Intent:    string(reply.Intent),
		DiseaseID: reply.Disease,
		Field:     string(reply.Field),
		Language:  reply.Language,
		Backend:   reply.Backend,
		Timestamp: time.Now(),
	}
	// 请求可能已经结束，统计使用独立的上下文
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Errorf("发布聊天事件失败: %v", err)
	}
}

// chunkCollector 记录远程后端的全部分块，同时转发给下游 writer。
type chunkCollector struct {
	next llm.MessageWriter
	buf  strings.Builder
}

// WriteMessage 满足 llm.MessageWriter 接口。
func (w *chunkCollector) WriteMessage(messageType int, data []byte) error {
	w.buf.Write(data)
	if w.next == nil {
		return nil
	}
	return w.next.WriteMessage(messageType, data)
}

func (w *chunkCollector) String() string {
	return w.buf.String()
}
