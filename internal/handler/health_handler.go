package handler

import (
	"github.com/gin-gonic/gin"
)

// Health 返回服务存活状态以及当前知识库规模。
func Health(diseases, symptoms int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok(c, gin.H{"status": "ok", "diseases": diseases, "symptoms": symptoms})
	}
}
