package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"aqua-health-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// maxLoggedBody 是访问日志中请求体和响应体各自保留的最大字节数。
const maxLoggedBody = 1024

// bodyLogWriter 在写出响应的同时保留一份副本
type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyLogWriter) Write(b []byte) (int, error) {
	if room := maxLoggedBody - w.body.Len(); room > 0 {
		w.body.Write(b[:min(room, len(b))])
	}
	return w.ResponseWriter.Write(b)
}

// RequestLogger 记录访问日志。聊天消息只会出现在这里，服务不保存任何对话内容。
// WebSocket 升级请求不截取响应体。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))

		var blw *bodyLogWriter
		if !isWebSocketUpgrade(c.Request) {
			blw = &bodyLogWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
			c.Writer = blw
		}

		c.Next()

		fields := []interface{}{
			"statusCode", c.Writer.Status(),
			"latency", time.Since(startTime).String(),
			"clientIP", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"requestId", c.GetString(requestIDKey),
			"requestBody", truncate(requestBody),
		}
		if blw != nil {
			fields = append(fields, "responseBody", blw.body.String())
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warnw("HTTP Request Log", fields...)
			return
		}
		log.Infow("HTTP Request Log", fields...)
	}
}

func isWebSocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBody {
		b = b[:maxLoggedBody]
	}
	return string(b)
}
