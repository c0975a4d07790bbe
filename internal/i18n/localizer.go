package i18n

import (
	"aqua-health-go/internal/knowledge"
	"strings"
)

// Localizer 在显示标签与规范症状 ID 之间转换。
// 查找基于显式的 ID -> 语言 -> 标签 映射，与各语言症状列表的顺序无关。
type Localizer struct {
	kb      *knowledge.KnowledgeBase
	catalog *Catalog
	// byLabel: 语言 -> 归一化标签 -> 症状 ID
	byLabel map[string]map[string]string
}

// NewLocalizer 为知识库中的全部症状建立反向索引。
func NewLocalizer(kb *knowledge.KnowledgeBase, catalog *Catalog) *Localizer {
	l := &Localizer{
		kb:      kb,
		catalog: catalog,
		byLabel: make(map[string]map[string]string),
	}
	for _, s := range kb.Symptoms() {
		for lang, label := range s.Labels {
			key := normalizeLabel(label)
			if key == "" {
				continue
			}
			idx, ok := l.byLabel[lang]
			if !ok {
				idx = make(map[string]string)
				l.byLabel[lang] = idx
			}
			idx[key] = s.ID
		}
	}
	return l
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Canonicalize 把输入（规范 ID，或当前语言/基础语言的标签）转换为去重后的规范 ID。
// 无法识别的输入原样放入 unknown。
func (l *Localizer) Canonicalize(lang string, inputs []string) (ids []string, unknown []string) {
	lang = l.catalog.Normalize(lang)
	base := l.catalog.BaseLanguage()
	seen := make(map[string]struct{}, len(inputs))
	ids = []string{}

	for _, in := range inputs {
		id, ok := l.resolve(lang, base, in)
		if !ok {
			unknown = append(unknown, in)
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, unknown
}

func (l *Localizer) resolve(lang, base, input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if l.kb.HasSymptom(trimmed) {
		return trimmed, true
	}
	key := normalizeLabel(trimmed)
	if id, ok := l.byLabel[lang][key]; ok {
		return id, true
	}
	if id, ok := l.byLabel[base][key]; ok {
		return id, true
	}
	return "", false
}

// Label 返回症状在指定语言下的标签，缺失时回退到基础语言。
func (l *Localizer) Label(lang, symptomID string) Lookup[string] {
	return l.catalog.SymptomLabel(lang, symptomID)
}
