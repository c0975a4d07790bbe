// Package knowledge 提供只读的水源性疾病知识库及其加载校验。
package knowledge

import (
	"aqua-health-go/internal/model"
	"strings"
)

// DefaultBaseLanguage 是规范词表使用的语言。
const DefaultBaseLanguage = "en"

// KnowledgeBase 是加载后不可变的疾病与症状表。
// 所有方法都只读，可被多个 goroutine 并发使用。
type KnowledgeBase struct {
	baseLanguage string
	symptoms     []model.Symptom
	symptomIndex map[string]int
	diseases     []model.Disease
	diseaseIndex map[string]int
}

// New 校验并构建知识库。输入会被深拷贝，之后对入参的修改不会影响知识库。
// 校验失败时返回 *ConfigError。
func New(baseLanguage string, symptoms []model.Symptom, diseases []model.Disease) (*KnowledgeBase, error) {
	if baseLanguage == "" {
		baseLanguage = DefaultBaseLanguage
	}
	kb := &KnowledgeBase{
		baseLanguage: baseLanguage,
		symptomIndex: make(map[string]int, len(symptoms)),
		diseaseIndex: make(map[string]int, len(diseases)),
	}
	cfgErr := &ConfigError{}

	for _, s := range symptoms {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			cfgErr.addf("symptom with empty id")
			continue
		}
		if _, dup := kb.symptomIndex[id]; dup {
			cfgErr.addf("duplicate symptom id %q", id)
			continue
		}
		if strings.TrimSpace(s.Labels[baseLanguage]) == "" {
			cfgErr.addf("symptom %q has no %s label", id, baseLanguage)
		}
		labels := make(map[string]string, len(s.Labels))
		for lang, label := range s.Labels {
			labels[lang] = label
		}
		kb.symptomIndex[id] = len(kb.symptoms)
		kb.symptoms = append(kb.symptoms, model.Symptom{ID: id, Labels: labels})
	}

	if len(diseases) == 0 {
		cfgErr.addf("no diseases defined")
	}
	for _, d := range diseases {
		if !kb.validateDisease(d, cfgErr) {
			continue
		}
		kb.diseaseIndex[d.ID] = len(kb.diseases)
		kb.diseases = append(kb.diseases, cloneDisease(d))
	}

	if len(cfgErr.Problems) > 0 {
		return nil, cfgErr
	}
	return kb, nil
}

// validateDisease 记录问题并返回该疾病是否可以加入索引。
func (kb *KnowledgeBase) validateDisease(d model.Disease, cfgErr *ConfigError) bool {
	if strings.TrimSpace(d.ID) == "" {
		cfgErr.addf("disease with empty id")
		return false
	}
	if _, dup := kb.diseaseIndex[d.ID]; dup {
		cfgErr.addf("duplicate disease id %q", d.ID)
		return false
	}
	if strings.TrimSpace(d.Name) == "" {
		cfgErr.addf("disease %q has no name", d.ID)
	}
	// 空词表会导致评分时除以零，必须在加载阶段拒绝
	if len(d.ScoringKeywords) == 0 {
		cfgErr.addf("disease %q has no scoring keywords", d.ID)
	}
	seen := make(map[string]struct{}, len(d.ScoringKeywords))
	for _, kw := range d.ScoringKeywords {
		if _, ok := kb.symptomIndex[kw]; !ok {
			cfgErr.addf("disease %q references unknown symptom %q", d.ID, kw)
		}
		if _, dup := seen[kw]; dup {
			cfgErr.addf("disease %q lists scoring keyword %q twice", d.ID, kw)
		}
		seen[kw] = struct{}{}
	}
	for _, f := range model.InfoFields {
		if strings.TrimSpace(d.Info.Field(f)) == "" {
			cfgErr.addf("disease %q has empty %s info", d.ID, f)
		}
	}
	return true
}

func cloneDisease(d model.Disease) model.Disease {
	d.Remedies = append([]string(nil), d.Remedies...)
	d.ScoringKeywords = append([]string(nil), d.ScoringKeywords...)
	d.RecognitionKeywords = append([]string(nil), d.RecognitionKeywords...)
	return d
}

// BaseLanguage 返回规范词表的语言。
func (kb *KnowledgeBase) BaseLanguage() string {
	return kb.baseLanguage
}

// Diseases 按声明顺序返回全部疾病。返回的切片是副本，元素内的切片不应被修改。
func (kb *KnowledgeBase) Diseases() []model.Disease {
	return append([]model.Disease(nil), kb.diseases...)
}

// Disease 按 ID 查找疾病。
func (kb *KnowledgeBase) Disease(id string) (model.Disease, bool) {
	i, ok := kb.diseaseIndex[id]
	if !ok {
		return model.Disease{}, false
	}
	return kb.diseases[i], true
}

// Symptoms 按声明顺序返回全部症状。
func (kb *KnowledgeBase) Symptoms() []model.Symptom {
	return append([]model.Symptom(nil), kb.symptoms...)
}

// Symptom 按 ID 查找症状。
func (kb *KnowledgeBase) Symptom(id string) (model.Symptom, bool) {
	i, ok := kb.symptomIndex[id]
	if !ok {
		return model.Symptom{}, false
	}
	return kb.symptoms[i], true
}

// HasSymptom 判断 id 是否属于规范症状词表。
func (kb *KnowledgeBase) HasSymptom(id string) bool {
	_, ok := kb.symptomIndex[id]
	return ok
}
