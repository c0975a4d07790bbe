package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader 是请求 ID 使用的请求头和响应头。
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "requestId"

// RequestID 为每个请求分配 ID。客户端已提供时沿用客户端的 ID。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
