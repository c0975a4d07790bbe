package model

import "time"

// SymptomRecord 对应于数据库中的 'kb_symptoms' 表。
type SymptomRecord struct {
	ID string `gorm:"type:varchar(64);primaryKey" json:"id"`
	// Position 保存症状在知识库中的声明顺序。
	Position int               `gorm:"not null;index" json:"position"`
	Labels   map[string]string `gorm:"type:text;serializer:json" json:"labels"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (SymptomRecord) TableName() string {
	return "kb_symptoms"
}

// DiseaseRecord 对应于数据库中的 'kb_diseases' 表。
type DiseaseRecord struct {
	ID string `gorm:"type:varchar(64);primaryKey" json:"id"`
	// Position 决定评分结果同分时的先后顺序。
	Position            int       `gorm:"not null;index" json:"position"`
	Name                string    `gorm:"type:varchar(100);not null" json:"name"`
	Description         string    `gorm:"type:text" json:"description"`
	Remedies            []string  `gorm:"type:text;serializer:json" json:"remedies"`
	ScoringKeywords     []string  `gorm:"type:text;serializer:json" json:"scoringKeywords"`
	RecognitionKeywords []string  `gorm:"type:text;serializer:json" json:"recognitionKeywords"`
	Symptoms            string    `gorm:"type:text" json:"symptoms"`
	Causes              string    `gorm:"type:text" json:"causes"`
	Treatment           string    `gorm:"type:text" json:"treatment"`
	Prevention          string    `gorm:"type:text" json:"prevention"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (DiseaseRecord) TableName() string {
	return "kb_diseases"
}

// ToDisease 将数据库记录转换为领域模型。
func (r DiseaseRecord) ToDisease() Disease {
	return Disease{
		ID:                  r.ID,
		Name:                r.Name,
		Description:         r.Description,
		Remedies:            r.Remedies,
		ScoringKeywords:     r.ScoringKeywords,
		RecognitionKeywords: r.RecognitionKeywords,
		Info: DiseaseInfo{
			Symptoms:   r.Symptoms,
			Causes:     r.Causes,
			Treatment:  r.Treatment,
			Prevention: r.Prevention,
		},
	}
}

// NewDiseaseRecord 根据领域模型构造数据库记录。
func NewDiseaseRecord(d Disease, position int) DiseaseRecord {
	return DiseaseRecord{
		ID:                  d.ID,
		Position:            position,
		Name:                d.Name,
		Description:         d.Description,
		Remedies:            d.Remedies,
		ScoringKeywords:     d.ScoringKeywords,
		RecognitionKeywords: d.RecognitionKeywords,
		Symptoms:            d.Info.Symptoms,
		Causes:              d.Info.Causes,
		Treatment:           d.Info.Treatment,
		Prevention:          d.Info.Prevention,
	}
}
