package middleware

import (
	"net/http"

	"aqua-health-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware 只放行管理员，必须挂在 AuthMiddleware 之后。
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			// 路由配置错误
			abort(c, http.StatusInternalServerError, "无法获取用户信息")
			return
		}
		if claims.Role != token.RoleAdmin {
			abort(c, http.StatusForbidden, "权限不足，需要管理员权限")
			return
		}
		c.Next()
	}
}
