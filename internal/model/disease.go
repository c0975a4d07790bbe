// Package model 包含了应用的数据模型定义。
package model

// InfoField 表示疾病信息记录中的一个字段，同时也是聊天中的关键词族。
type InfoField string

const (
	FieldSymptoms   InfoField = "symptoms"
	FieldCauses     InfoField = "causes"
	FieldTreatment  InfoField = "treatment"
	FieldPrevention InfoField = "prevention"
)

// InfoFields 按固定优先级列出全部字段，聊天解析按此顺序匹配关键词族。
var InfoFields = []InfoField{FieldSymptoms, FieldCauses, FieldTreatment, FieldPrevention}

// Symptom 是规范症状。ID 与语言无关，Labels 为各语言的显示文本。
type Symptom struct {
	ID     string            `json:"id"`
	Labels map[string]string `json:"labels"`
}

// DiseaseInfo 是聊天中返回给用户的疾病信息记录。
type DiseaseInfo struct {
	Symptoms   string `json:"symptoms"`
	Causes     string `json:"causes"`
	Treatment  string `json:"treatment"`
	Prevention string `json:"prevention"`
}

// Field 返回指定字段的文本，未知字段返回空串。
func (i DiseaseInfo) Field(f InfoField) string {
	switch f {
	case FieldSymptoms:
		return i.Symptoms
	case FieldCauses:
		return i.Causes
	case FieldTreatment:
		return i.Treatment
	case FieldPrevention:
		return i.Prevention
	}
	return ""
}

// Disease 是知识库中的一种疾病。
//
// ScoringKeywords 与 RecognitionKeywords 是两套独立维护的词表：
// 前者是参与症状评分的规范症状 ID，后者是聊天识别用的病名变体、同义词和多语言写法。
// 两者内容并不一致，不能合并。
type Disease struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	Description         string      `json:"description"`
	Remedies            []string    `json:"remedies"`
	ScoringKeywords     []string    `json:"scoringKeywords"`
	RecognitionKeywords []string    `json:"recognitionKeywords"`
	Info                DiseaseInfo `json:"info"`
}
