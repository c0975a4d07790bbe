package knowledge

import (
	"aqua-health-go/internal/model"
	"encoding/json"
	"fmt"
	"io"
)

// DocumentVersion 是当前知识库 JSON 文档的格式版本。
const DocumentVersion = 1

// Document 是知识库的 JSON 交换格式，用于对象存储和命令行导出。
type Document struct {
	Version      int             `json:"version"`
	BaseLanguage string          `json:"baseLanguage"`
	Symptoms     []model.Symptom `json:"symptoms"`
	Diseases     []model.Disease `json:"diseases"`
}

// Document 导出知识库。
func (kb *KnowledgeBase) Document() Document {
	return Document{
		Version:      DocumentVersion,
		BaseLanguage: kb.baseLanguage,
		Symptoms:     kb.Symptoms(),
		Diseases:     kb.Diseases(),
	}
}

// Encode 将知识库以缩进 JSON 写入 w。
func (kb *KnowledgeBase) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(kb.Document()); err != nil {
		return fmt.Errorf("failed to encode knowledge base: %w", err)
	}
	return nil
}

// Decode 从 JSON 文档读取并校验知识库。
func Decode(r io.Reader) (*KnowledgeBase, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode knowledge base document: %w", err)
	}
	if doc.Version != DocumentVersion {
		return nil, &ConfigError{Problems: []string{fmt.Sprintf("unsupported document version %d", doc.Version)}}
	}
	return New(doc.BaseLanguage, doc.Symptoms, doc.Diseases)
}
