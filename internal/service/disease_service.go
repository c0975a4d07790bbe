package service

import (
	"aqua-health-go/internal/i18n"
	"aqua-health-go/internal/knowledge"
	"aqua-health-go/internal/model"
	"aqua-health-go/pkg/es"
	"aqua-health-go/pkg/log"
	"context"
	"errors"
	"strings"
)

var (
	// ErrDiseaseNotFound 表示知识库中没有该疾病。
	ErrDiseaseNotFound = errors.New("disease not found")
	// ErrSearchIndexDisabled 表示没有配置 Elasticsearch。
	ErrSearchIndexDisabled = errors.New("search index is disabled")
)

// DefaultSearchSize 是检索结果的默认条数。
const DefaultSearchSize = 5

// DiseaseIndexer 是疾病检索索引，*es.DiseaseIndex 实现了它。
type DiseaseIndexer interface {
	IndexDiseases(ctx context.Context, docs []es.DiseaseDocument) error
	Search(ctx context.Context, query string, size int) ([]string, error)
}

// DiseaseService 接口定义了疾病目录的浏览与检索操作。
type DiseaseService interface {
	List(lang string) []model.DiseaseDetailDTO
	Get(lang, diseaseID string) (*model.DiseaseDetailDTO, error)
	Search(ctx context.Context, query, lang string, size int) ([]model.DiseaseDetailDTO, error)
	Reindex(ctx context.Context) (int, error)
}

type diseaseService struct {
	kb       *knowledge.KnowledgeBase
	catalog  *i18n.Catalog
	composer ResponseComposer
	index    DiseaseIndexer
}

// NewDiseaseService 创建一个新的 DiseaseService 实例。index 为 nil 时使用内存检索。
func NewDiseaseService(kb *knowledge.KnowledgeBase, catalog *i18n.Catalog, composer ResponseComposer, index DiseaseIndexer) DiseaseService {
	return &diseaseService{
		kb:       kb,
		catalog:  catalog,
		composer: composer,
		index:    index,
	}
}

// List 按知识库顺序返回全部疾病。
func (s *diseaseService) List(lang string) []model.DiseaseDetailDTO {
	diseases := s.kb.Diseases()
	out := make([]model.DiseaseDetailDTO, 0, len(diseases))
	for _, d := range diseases {
		if dto, ok := s.composer.DiseaseDetail(lang, d.ID); ok {
			out = append(out, *dto)
		}
	}
	return out
}

// Get 返回单个疾病。
func (s *diseaseService) Get(lang, diseaseID string) (*model.DiseaseDetailDTO, error) {
	dto, ok := s.composer.DiseaseDetail(lang, diseaseID)
	if !ok {
		return nil, ErrDiseaseNotFound
	}
	return dto, nil
}

// Search 优先使用 Elasticsearch 检索，索引不可用时退回内存检索。
func (s *diseaseService) Search(ctx context.Context, query, lang string, size int) ([]model.DiseaseDetailDTO, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.DiseaseDetailDTO{}, nil
	}
	if size <= 0 {
		size = DefaultSearchSize
	}

	var ids []string
	if s.index != nil {
		found, err := s.index.Search(ctx, query, size)
		if err != nil {
			log.Warnf("Elasticsearch 检索失败，改用内存检索: %v", err)
		} else {
			ids = found
		}
	}
	if ids == nil {
		ids = s.searchInMemory(query, size)
	}

	out := make([]model.DiseaseDetailDTO, 0, len(ids))
	for _, id := range ids {
		if dto, ok := s.composer.DiseaseDetail(lang, id); ok {
			out = append(out, *dto)
		}
	}
	return out, nil
}

// searchInMemory 在各语言名称、识别词、描述和症状字段中做子串匹配，保持知识库顺序。
func (s *diseaseService) searchInMemory(query string, size int) []string {
	q := strings.ToLower(query)
	ids := []string{}
	for _, doc := range s.documents() {
		haystack := append(append([]string{}, doc.Names...), doc.Keywords...)
		haystack = append(haystack, doc.Description, doc.Symptoms)
		for _, h := range haystack {
			if strings.Contains(strings.ToLower(h), q) {
				ids = append(ids, doc.DiseaseID)
				break
			}
		}
		if len(ids) == size {
			break
		}
	}
	return ids
}

// documents 为每种疾病生成检索文档，名称包含所有受支持语言的译名。
func (s *diseaseService) documents() []es.DiseaseDocument {
	diseases := s.kb.Diseases()
	docs := make([]es.DiseaseDocument, 0, len(diseases))
	for _, d := range diseases {
		names := []string{d.Name}
		for _, lang := range s.catalog.Languages() {
			name := s.catalog.DiseaseName(lang, d.ID)
			if name.Status == i18n.Found && name.Value != d.Name {
				names = append(names, name.Value)
			}
		}
		docs = append(docs, es.DiseaseDocument{
			DiseaseID:   d.ID,
			Names:       names,
			Keywords:    d.RecognitionKeywords,
			Description: d.Description,
			Symptoms:    d.Info.Symptoms,
		})
	}
	return docs
}

// Reindex 把全部疾病重新写入 Elasticsearch，返回写入的数量。
func (s *diseaseService) Reindex(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, ErrSearchIndexDisabled
	}
	docs := s.documents()
	if err := s.index.IndexDiseases(ctx, docs); err != nil {
		return 0, err
	}
	return len(docs), nil
}
