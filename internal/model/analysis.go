package model

// ScoredDisease 是评分引擎输出的一项：疾病 ID 与 0-100 的匹配置信度。
type ScoredDisease struct {
	DiseaseID  string `json:"diseaseId"`
	Confidence int    `json:"confidence"`
}

// AnalysisResult 按置信度降序排列，最多 3 项，可以为空。
type AnalysisResult []ScoredDisease

// DiseaseResultDTO 定义了返回给前端的单个疾病分析结果。
type DiseaseResultDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Remedies    []string `json:"remedies"`
	Probability int      `json:"probability"`
}

// AnalysisResponseDTO 是症状分析接口的响应体。
type AnalysisResponseDTO struct {
	Language string             `json:"language"`
	Results  []DiseaseResultDTO `json:"results"`
	// NoMatch 为 true 表示没有检测到特定疾病，这是正常结果而不是错误。
	NoMatch bool   `json:"noMatch"`
	Message string `json:"message,omitempty"`
	// Disclaimer 提醒用户结果不是医学诊断。
	Disclaimer string `json:"disclaimer,omitempty"`
}

// SymptomDTO 是症状列表接口中的单项。
type SymptomDTO struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// DiseaseDetailDTO 是疾病目录接口中的单项。
type DiseaseDetailDTO struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Remedies    []string          `json:"remedies"`
	Info        map[string]string `json:"info"`
	// Fallback 列出了因缺少翻译而回退到基础语言的字段。
	Fallback []string `json:"fallback,omitempty"`
}
