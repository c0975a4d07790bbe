// Package scorer 根据规范症状集合为知识库中的疾病打分排序。
package scorer

import (
	"aqua-health-go/internal/knowledge"
	"aqua-health-go/internal/model"
	"math"
	"sort"
)

const (
	// MinConfidence 是入选结果的下限（不含）。
	MinConfidence = 20
	// MaxResults 是结果列表的最大长度。
	MaxResults = 3
)

// Scorer 是无状态的症状评分器，可并发使用。
type Scorer struct {
	kb *knowledge.KnowledgeBase
}

// New 创建一个基于指定知识库的 Scorer。
func New(kb *knowledge.KnowledgeBase) *Scorer {
	return &Scorer{kb: kb}
}

// Score 计算每种疾病评分词与症状集合的重合度。
// symptoms 必须是规范症状 ID，重复项会被合并，顺序无关。
// 没有疾病达标时返回空结果，这不是错误。
func (s *Scorer) Score(symptoms []string) model.AnalysisResult {
	set := make(map[string]struct{}, len(symptoms))
	for _, id := range symptoms {
		set[id] = struct{}{}
	}

	result := model.AnalysisResult{}
	if len(set) == 0 {
		return result
	}

	for _, d := range s.kb.Diseases() {
		matched := 0
		for _, kw := range d.ScoringKeywords {
			if _, ok := set[kw]; ok {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		confidence := Confidence(matched, len(d.ScoringKeywords))
		if confidence <= MinConfidence {
			continue
		}
		result = append(result, model.ScoredDisease{DiseaseID: d.ID, Confidence: confidence})
	}

	// 稳定排序：同分时保持知识库声明顺序
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Confidence > result[j].Confidence
	})
	if len(result) > MaxResults {
		result = result[:MaxResults]
	}
	return result
}

// Confidence 返回 round(matched/total*100)。total 由知识库加载时保证大于 0。
func Confidence(matched, total int) int {
	return int(math.Round(float64(matched) / float64(total) * 100))
}
