package service

import (
	"aqua-health-go/internal/i18n"
	"aqua-health-go/internal/model"
	"aqua-health-go/internal/scorer"
	"aqua-health-go/pkg/log"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownSymptoms 表示请求中有无法识别的症状标签。
var ErrUnknownSymptoms = errors.New("unknown symptoms")

// UnknownSymptomsError 列出无法转换为规范 ID 的输入。
type UnknownSymptomsError struct {
	Labels []string
}

func (e *UnknownSymptomsError) Error() string {
	return fmt.Sprintf("unknown symptoms: %s", strings.Join(e.Labels, ", "))
}

// Is 使 errors.Is(err, ErrUnknownSymptoms) 成立。
func (e *UnknownSymptomsError) Is(target error) bool {
	return target == ErrUnknownSymptoms
}

// AnalysisService 接口定义了症状分析操作。
type AnalysisService interface {
	Analyze(ctx context.Context, lang string, symptoms []string) (*model.AnalysisResponseDTO, error)
}

type analysisService struct {
	localizer *i18n.Localizer
	scorer    *scorer.Scorer
	composer  ResponseComposer
	delay     time.Duration
}

// NewAnalysisService 创建一个新的 AnalysisService 实例。delay 为 0 时不等待。
func NewAnalysisService(localizer *i18n.Localizer, sc *scorer.Scorer, composer ResponseComposer, delay time.Duration) AnalysisService {
	return &analysisService{
		localizer: localizer,
		scorer:    sc,
		composer:  composer,
		delay:     delay,
	}
}

// Analyze 把输入的症状（规范 ID 或显示标签）转换为规范 ID，评分并渲染结果。
// 空列表得到空结果而不是错误。
func (s *analysisService) Analyze(ctx context.Context, lang string, symptoms []string) (*model.AnalysisResponseDTO, error) {
	lang = s.composer.Language(lang)
	ids, unknown := s.localizer.Canonicalize(lang, symptoms)
	if len(unknown) > 0 {
		return nil, &UnknownSymptomsError{Labels: unknown}
	}

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}

	result := s.scorer.Score(ids)
	log.Infow("症状分析完成", "language", lang, "symptoms", ids, "matches", len(result))
	return s.composer.AnalysisResponse(lang, result), nil
}
