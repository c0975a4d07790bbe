// Package service 包含了应用的业务逻辑层。
package service

import (
	"aqua-health-go/internal/i18n"
	"aqua-health-go/internal/knowledge"
	"aqua-health-go/internal/model"
	"strings"
)

// lastResortReply 只在翻译表连基础语言的兜底文案都缺失时使用，保证回复非空。
const lastResortReply = "Sorry, I did not understand that."

// ResponseComposer 把评分结果和意图解析结果渲染为当前显示语言的文本。
type ResponseComposer interface {
	Language(lang string) string
	SupportedLanguage(lang string) (string, bool)
	AnalysisResponse(lang string, result model.AnalysisResult) *model.AnalysisResponseDTO
	ChatResponse(lang string, res model.Resolution) string
	DiseaseDetail(lang, diseaseID string) (*model.DiseaseDetailDTO, bool)
	Symptoms(lang string) []model.SymptomDTO
	SymptomLabel(lang, symptomID string) string
	Text(lang, key string) string
}

type responseComposer struct {
	kb      *knowledge.KnowledgeBase
	catalog *i18n.Catalog
}

// NewResponseComposer 创建一个新的 ResponseComposer 实例。
func NewResponseComposer(kb *knowledge.KnowledgeBase, catalog *i18n.Catalog) ResponseComposer {
	return &responseComposer{kb: kb, catalog: catalog}
}

// Language 返回规范化后的显示语言。
func (c *responseComposer) Language(lang string) string {
	return c.catalog.Normalize(lang)
}

// SupportedLanguage 返回规范化后的语言；请求未指定或不支持该语言时返回 false。
func (c *responseComposer) SupportedLanguage(lang string) (string, bool) {
	return c.catalog.Supported(lang)
}

// Text 按点路径返回文案，缺失时返回空串。
func (c *responseComposer) Text(lang, key string) string {
	return c.catalog.Text(lang, key).Value
}

// AnalysisResponse 渲染评分结果。结果为空时带上"未检测到特定疾病"的提示。
func (c *responseComposer) AnalysisResponse(lang string, result model.AnalysisResult) *model.AnalysisResponseDTO {
	lang = c.catalog.Normalize(lang)
	resp := &model.AnalysisResponseDTO{
		Language:   lang,
		Results:    make([]model.DiseaseResultDTO, 0, len(result)),
		Disclaimer: c.Text(lang, "analysis.disclaimer"),
	}
	for _, scored := range result {
		resp.Results = append(resp.Results, model.DiseaseResultDTO{
			ID:          scored.DiseaseID,
			Name:        c.diseaseName(lang, scored.DiseaseID),
			Description: c.catalog.DiseaseDescription(lang, scored.DiseaseID).Value,
			Remedies:    c.catalog.DiseaseRemedies(lang, scored.DiseaseID).Value,
			Probability: scored.Confidence,
		})
	}
	if len(resp.Results) == 0 {
		resp.NoMatch = true
		resp.Message = c.Text(lang, "analysis.no_match")
	}
	return resp
}

func (c *responseComposer) diseaseName(lang, diseaseID string) string {
	if name := c.catalog.DiseaseName(lang, diseaseID); name.Status != i18n.Missing {
		return name.Value
	}
	return diseaseID
}

// ChatResponse 把一次意图解析渲染为回复文本，返回值一定非空。
func (c *responseComposer) ChatResponse(lang string, res model.Resolution) string {
	lang = c.catalog.Normalize(lang)
	var reply string
	switch res.Intent {
	case model.IntentGreeting:
		reply = c.Text(lang, "chat.greeting")
	case model.IntentDiseaseField:
		reply = c.fieldAnswer(lang, res.DiseaseID, res.Field)
	case model.IntentDiseaseSummary:
		reply = c.summary(lang, res.DiseaseID)
	case model.IntentGenericSymptom:
		reply = c.Text(lang, "chat.generic_symptom")
	}
	if strings.TrimSpace(reply) == "" {
		reply = c.Text(lang, "chat.fallback")
	}
	if strings.TrimSpace(reply) == "" {
		reply = lastResortReply
	}
	return reply
}

// fieldAnswer 渲染 "<字段名> of <疾病名>: <字段内容>"，模板随语言变化。
func (c *responseComposer) fieldAnswer(lang, diseaseID string, field model.InfoField) string {
	text := c.catalog.DiseaseField(lang, diseaseID, field)
	if text.Status == i18n.Missing {
		return ""
	}
	return fill(c.Text(lang, "chat.field_answer"), map[string]string{
		"field":   c.catalog.FieldLabel(lang, field).Value,
		"disease": c.diseaseName(lang, diseaseID),
		"text":    text.Value,
	})
}

// summary 依次拼接四个字段，每个字段一行。
func (c *responseComposer) summary(lang, diseaseID string) string {
	if _, ok := c.kb.Disease(diseaseID); !ok {
		return ""
	}
	lines := []string{fill(c.Text(lang, "chat.summary_heading"), map[string]string{
		"disease": c.diseaseName(lang, diseaseID),
	})}
	for _, f := range model.InfoFields {
		lines = append(lines, fill(c.Text(lang, "chat.summary_line"), map[string]string{
			"field": c.catalog.FieldLabel(lang, f).Value,
			"text":  c.catalog.DiseaseField(lang, diseaseID, f).Value,
		}))
	}
	return strings.Join(lines, "\n")
}

// fill 替换模板中的 {name} 占位符。
func fill(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// DiseaseDetail 渲染单个疾病的完整信息，并列出回退到基础语言的字段。
func (c *responseComposer) DiseaseDetail(lang, diseaseID string) (*model.DiseaseDetailDTO, bool) {
	if _, ok := c.kb.Disease(diseaseID); !ok {
		return nil, false
	}
	lang = c.catalog.Normalize(lang)
	dto := &model.DiseaseDetailDTO{
		ID:   diseaseID,
		Info: make(map[string]string, len(model.InfoFields)),
	}
	track := func(key string, status i18n.LookupStatus) {
		if status == i18n.FallbackToBase {
			dto.Fallback = append(dto.Fallback, key)
		}
	}

	name := c.catalog.DiseaseName(lang, diseaseID)
	dto.Name = name.Value
	track("name", name.Status)

	desc := c.catalog.DiseaseDescription(lang, diseaseID)
	dto.Description = desc.Value
	track("description", desc.Status)

	remedies := c.catalog.DiseaseRemedies(lang, diseaseID)
	dto.Remedies = remedies.Value
	track("remedies", remedies.Status)

	for _, f := range model.InfoFields {
		v := c.catalog.DiseaseField(lang, diseaseID, f)
		dto.Info[string(f)] = v.Value
		track("info."+string(f), v.Status)
	}
	return dto, true
}

// Symptoms 按知识库顺序返回症状及其显示标签。
func (c *responseComposer) Symptoms(lang string) []model.SymptomDTO {
	symptoms := c.kb.Symptoms()
	out := make([]model.SymptomDTO, 0, len(symptoms))
	for _, s := range symptoms {
		out = append(out, model.SymptomDTO{ID: s.ID, Label: c.SymptomLabel(lang, s.ID)})
	}
	return out
}

// SymptomLabel 返回症状的显示标签，找不到时返回 ID。
func (c *responseComposer) SymptomLabel(lang, symptomID string) string {
	if l := c.catalog.SymptomLabel(lang, symptomID); l.Status != i18n.Missing {
		return l.Value
	}
	return symptomID
}
