package handler

import (
	"aqua-health-go/internal/middleware"
	"aqua-health-go/internal/service"
	"aqua-health-go/pkg/log"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminHandler 负责管理员登录、意图统计与索引重建接口。
type AdminHandler struct {
	authService    service.AuthService
	statsService   service.StatsService
	diseaseService service.DiseaseService
}

// NewAdminHandler 创建一个新的 AdminHandler 实例。
func NewAdminHandler(authService service.AuthService, statsService service.StatsService, diseaseService service.DiseaseService) *AdminHandler {
	return &AdminHandler{
		authService:    authService,
		statsService:   statsService,
		diseaseService: diseaseService,
	}
}

// LoginRequest 定义了登录 API 的请求体结构。
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 处理管理员登录请求。
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Login: Invalid request payload, error: %v", err)
		fail(c, http.StatusBadRequest, "无效的请求负载：用户名和密码不能为空", nil)
		return
	}

	accessToken, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warnf("Login: Authentication failed for user '%s'", req.Username)
			fail(c, http.StatusUnauthorized, "用户名或密码错误", nil)
			return
		}
		log.Error("Login: Failed to issue token", err)
		fail(c, http.StatusInternalServerError, "登录失败", nil)
		return
	}
	ok(c, gin.H{"token": accessToken})
}

// IntentStats 返回聊天意图的聚合计数。
func (h *AdminHandler) IntentStats(c *gin.Context) {
	stats, err := h.statsService.GetStats(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrStatsDisabled) {
			fail(c, http.StatusServiceUnavailable, "统计功能未启用", nil)
			return
		}
		log.Error("IntentStats: Failed to read stats", err)
		fail(c, http.StatusInternalServerError, "获取统计失败", nil)
		return
	}
	ok(c, stats)
}

// Reindex 重建疾病检索索引。
func (h *AdminHandler) Reindex(c *gin.Context) {
	n, err := h.diseaseService.Reindex(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrSearchIndexDisabled) {
			fail(c, http.StatusServiceUnavailable, "检索索引未启用", nil)
			return
		}
		log.Error("Reindex: Failed to rebuild index", err)
		fail(c, http.StatusInternalServerError, "重建索引失败", nil)
		return
	}

	if claims, found := middleware.ClaimsFromContext(c); found {
		log.Infof("Admin user '%s' reindexed %d diseases", claims.Username, n)
	}
	ok(c, gin.H{"indexed": n})
}
