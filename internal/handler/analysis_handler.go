package handler

import (
	"aqua-health-go/internal/service"
	"aqua-health-go/pkg/log"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AnalysisHandler 负责症状列表与症状分析接口。
type AnalysisHandler struct {
	analysisService service.AnalysisService
	composer        service.ResponseComposer
}

// NewAnalysisHandler 创建一个新的 AnalysisHandler 实例。
func NewAnalysisHandler(analysisService service.AnalysisService, composer service.ResponseComposer) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, composer: composer}
}

// AnalysisRequest 定义了症状分析 API 的请求体结构。
// Symptoms 可以是规范 ID，也可以是当前语言或英文的显示标签。
type AnalysisRequest struct {
	Symptoms []string `json:"symptoms"`
	Lang     string   `json:"lang"`
}

// ListSymptoms 返回规范症状及其显示标签。
func (h *AnalysisHandler) ListSymptoms(c *gin.Context) {
	lang := h.composer.Language(requestLanguage(c, ""))
	ok(c, gin.H{"language": lang, "symptoms": h.composer.Symptoms(lang)})
}

// Analyze 处理症状分析请求。没有匹配到疾病是正常结果，返回 200。
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Analyze: Invalid request payload, error: %v", err)
		fail(c, http.StatusBadRequest, "无效的请求负载", nil)
		return
	}

	resp, err := h.analysisService.Analyze(c.Request.Context(), requestLanguage(c, req.Lang), req.Symptoms)
	if err != nil {
		var unknownErr *service.UnknownSymptomsError
		if errors.As(err, &unknownErr) {
			fail(c, http.StatusBadRequest, "存在无法识别的症状", gin.H{"unknown": unknownErr.Labels})
			return
		}
		log.Error("Analyze: Failed to analyze symptoms", err)
		fail(c, http.StatusInternalServerError, "症状分析失败", nil)
		return
	}
	ok(c, resp)
}
