package handler

import (
	"aqua-health-go/internal/middleware"
	"aqua-health-go/internal/service"
	"aqua-health-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// Services 汇总了路由需要的全部 service。
type Services struct {
	Analysis service.AnalysisService
	Chat     service.ChatService
	Disease  service.DiseaseService
	Stats    service.StatsService
	Auth     service.AuthService
	Composer service.ResponseComposer
}

// NewRouter 创建 gin 引擎并注册全部路由。
func NewRouter(svc Services, jwtManager *token.JWTManager, diseases, symptoms int) *gin.Engine {
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestID(), middleware.RequestLogger(), gin.Recovery())

	analysisHandler := NewAnalysisHandler(svc.Analysis, svc.Composer)
	diseaseHandler := NewDiseaseHandler(svc.Disease)
	chatHandler := NewChatHandler(svc.Chat)
	adminHandler := NewAdminHandler(svc.Auth, svc.Stats, svc.Disease)

	r.GET("/healthz", Health(diseases, symptoms))

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/symptoms", analysisHandler.ListSymptoms)
		apiV1.POST("/analysis", analysisHandler.Analyze)

		diseasesGroup := apiV1.Group("/diseases")
		{
			diseasesGroup.GET("", diseaseHandler.List)
			diseasesGroup.GET("/search", diseaseHandler.Search)
			diseasesGroup.GET("/:id", diseaseHandler.Get)
		}

		apiV1.POST("/chat", chatHandler.Chat)

		apiV1.POST("/admin/login", adminHandler.Login)
		admin := apiV1.Group("/admin")
		// 管理员路由组，需要同时通过认证和管理员授权两个中间件
		admin.Use(middleware.AuthMiddleware(jwtManager), middleware.AdminAuthMiddleware())
		{
			admin.GET("/intent-stats", adminHandler.IntentStats)
			admin.POST("/diseases/reindex", adminHandler.Reindex)
		}
	}

	// Chat 路由 (WebSocket)
	r.GET("/chat/ws", chatHandler.Handle)
	return r
}
