package handler

import (
	"aqua-health-go/internal/service"
	"aqua-health-go/pkg/log"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// DiseaseHandler 负责疾病目录的浏览与检索接口。
type DiseaseHandler struct {
	diseaseService service.DiseaseService
}

// NewDiseaseHandler 创建一个新的 DiseaseHandler 实例。
func NewDiseaseHandler(diseaseService service.DiseaseService) *DiseaseHandler {
	return &DiseaseHandler{diseaseService: diseaseService}
}

// List 返回全部疾病。
func (h *DiseaseHandler) List(c *gin.Context) {
	ok(c, h.diseaseService.List(requestLanguage(c, "")))
}

// Get 返回单个疾病。
func (h *DiseaseHandler) Get(c *gin.Context) {
	d, err := h.diseaseService.Get(requestLanguage(c, ""), c.Param("id"))
	if errors.Is(err, service.ErrDiseaseNotFound) {
		fail(c, http.StatusNotFound, "疾病不存在", nil)
		return
	}
	ok(c, d)
}

// Search 按关键词检索疾病，q 为空时返回空列表。
func (h *DiseaseHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "0"))
	results, err := h.diseaseService.Search(c.Request.Context(), c.Query("q"), requestLanguage(c, ""), size)
	if err != nil {
		log.Error("Search: Failed to search diseases", err)
		fail(c, http.StatusInternalServerError, "检索失败", nil)
		return
	}
	ok(c, results)
}
