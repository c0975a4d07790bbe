package handler

import (
	"aqua-health-go/internal/model"
	"aqua-health-go/internal/service"
	"aqua-health-go/pkg/log"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true // 允许所有来源
		},
	}
)

// ChatHandler 负责处理聊天接口与 WebSocket 聊天连接。
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler 创建一个新的 ChatHandler。
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest 定义了聊天 API 的请求体结构。
type ChatRequest struct {
	Message string `json:"message"`
	Lang    string `json:"lang"`
}

// Chat 处理一轮聊天。消息为空或无法识别时返回兜底回复，而不是错误。
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Chat: Invalid request payload, error: %v", err)
		fail(c, http.StatusBadRequest, "无效的请求负载", nil)
		return
	}
	reply := h.chatService.Reply(c.Request.Context(), req.Message, requestLanguage(c, req.Lang), nil)
	ok(c, reply)
}

// Handle 处理一个 WebSocket 连接。每条消息可以是纯文本，也可以是 {"message","lang"} JSON。
// 回复以 {"chunk": "..."} 分块下发，最后发送 completion 通知。
func (h *ChatHandler) Handle(c *gin.Context) {
	connLang := requestLanguage(c, "")
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket 升级失败", err)
		return
	}
	defer conn.Close()

	log.Infof("WebSocket 连接已建立: %s", c.ClientIP())

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warnf("从 WebSocket 读取消息失败: %v", err)
			}
			break
		}

		req := parseSocketMessage(message, connLang)
		writer := &wsChunkWriter{conn: conn}
		reply := h.chatService.Reply(c.Request.Context(), req.Message, req.Lang, writer)
		if writer.err != nil {
			log.Warnf("向 WebSocket 写入回复失败: %v", writer.err)
			break
		}
		if err := sendCompletion(conn, reply); err != nil {
			log.Warnf("发送完成通知失败: %v", err)
			break
		}
	}
}

func parseSocketMessage(message []byte, connLang string) ChatRequest {
	trimmed := strings.TrimSpace(string(message))
	if strings.HasPrefix(trimmed, "{") {
		var req ChatRequest
		if err := json.Unmarshal([]byte(trimmed), &req); err == nil {
			if req.Lang == "" {
				req.Lang = connLang
			}
			return req
		}
	}
	return ChatRequest{Message: trimmed, Lang: connLang}
}

// wsChunkWriter 把回复分块包装成 {"chunk":"..."} 写入连接，并记住第一个写入错误。
type wsChunkWriter struct {
	conn *websocket.Conn
	err  error
}

// WriteMessage 满足 llm.MessageWriter 接口。
func (w *wsChunkWriter) WriteMessage(messageType int, data []byte) error {
	if w.err != nil {
		return w.err
	}
	b, _ := json.Marshal(map[string]string{"chunk": string(data)})
	w.err = w.conn.WriteMessage(messageType, b)
	return w.err
}

// sendCompletion 发送完成通知 JSON，附带本轮的意图解析结果。
func sendCompletion(conn *websocket.Conn, reply *model.ChatReplyDTO) error {
	notif := map[string]interface{}{
		"type":      "completion",
		"status":    "finished",
		"intent":    reply.Intent,
		"disease":   reply.Disease,
		"field":     reply.Field,
		"language":  reply.Language,
		"backend":   reply.Backend,
		"timestamp": time.Now().UnixMilli(),
		"date":      time.Now().Format("2006-01-02T15:04:05"),
	}
	b, _ := json.Marshal(notif)
	return conn.WriteMessage(websocket.TextMessage, b)
}
