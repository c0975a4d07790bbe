package model

// Intent 是聊天消息解析出的意图。
type Intent string

const (
	IntentGreeting       Intent = "greeting"
	IntentDiseaseField   Intent = "disease_field"
	IntentDiseaseSummary Intent = "disease_summary"
	IntentGenericSymptom Intent = "generic_symptom"
	IntentFallback       Intent = "fallback"
)

// Resolution 是意图解析器的输出。DiseaseID 和 Field 仅在疾病相关意图时有值。
type Resolution struct {
	Intent    Intent    `json:"intent"`
	DiseaseID string    `json:"diseaseId,omitempty"`
	Field     InfoField `json:"field,omitempty"`
}

// ChatReplyDTO 是聊天接口的响应体。
type ChatReplyDTO struct {
	Intent   Intent    `json:"intent"`
	Disease  string    `json:"disease,omitempty"`
	Field    InfoField `json:"field,omitempty"`
	Response string    `json:"response"`
	Language string    `json:"language"`
	Backend  string    `json:"backend"`
	// Notice 在远程后端不可用、改用本地解析器回答时给出提示。
	Notice string `json:"notice,omitempty"`
}

// IntentStatsDTO 是管理端统计接口的响应体，只包含聚合计数。
type IntentStatsDTO struct {
	Intents  map[string]int64 `json:"intents"`
	Diseases map[string]int64 `json:"diseases"`
	Fields   map[string]int64 `json:"fields"`
	// GeneratedAt 是统计读取时间。
	GeneratedAt LocalTime `json:"generatedAt"`
}
