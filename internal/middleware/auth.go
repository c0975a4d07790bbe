// Package middleware 提供了处理 HTTP 请求的中间件。
package middleware

import (
	"net/http"
	"strings"

	"aqua-health-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// ClaimsKey 是 AuthMiddleware 写入 gin.Context 的键。
const ClaimsKey = "claims"

const bearerPrefix = "Bearer "

// AuthMiddleware 校验 "Authorization: Bearer <token>"，通过后把 claims 存入上下文。
func AuthMiddleware(jwtManager *token.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "请求未包含授权头")
			return
		}
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			abort(c, http.StatusUnauthorized, "无效的授权头格式")
			return
		}

		claims, err := jwtManager.VerifyToken(strings.TrimPrefix(authHeader, bearerPrefix))
		if err != nil {
			abort(c, http.StatusUnauthorized, "无效或已过期的 token")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFromContext 取出 AuthMiddleware 存入的 claims。
func ClaimsFromContext(c *gin.Context) (*token.CustomClaims, bool) {
	value, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*token.CustomClaims)
	return claims, ok
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"code": status, "message": message, "data": nil})
}
