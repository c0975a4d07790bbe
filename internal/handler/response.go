// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": data})
}

func fail(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{"code": status, "message": message, "data": data})
}

// requestLanguage 依次从请求体、query 参数 lang 和 Accept-Language 头中取显示语言。
// 返回值可能为空，语言的规范化由 service 层完成。
func requestLanguage(c *gin.Context, bodyLang string) string {
	if bodyLang != "" {
		return bodyLang
	}
	if q := c.Query("lang"); q != "" {
		return q
	}
	accept := c.GetHeader("Accept-Language")
	if accept == "" {
		return ""
	}
	first := strings.Split(accept, ",")[0]
	return strings.TrimSpace(strings.Split(first, ";")[0])
}
