// Package i18n 负责把规范 ID 渲染为显示语言，以及把显示文本还原为规范 ID。
package i18n

import (
	"aqua-health-go/internal/knowledge"
	"aqua-health-go/internal/model"
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// LookupStatus 标记一次翻译查找的来源。
type LookupStatus int

const (
	// Found 表示在请求的语言中找到了键。
	Found LookupStatus = iota
	// FallbackToBase 表示请求语言缺少该键，返回了基础语言的值。
	FallbackToBase
	// Missing 表示基础语言也没有该键。
	Missing
)

func (s LookupStatus) String() string {
	switch s {
	case Found:
		return "found"
	case FallbackToBase:
		return "fallback"
	default:
		return "missing"
	}
}

// Lookup 是带来源标记的查找结果。
type Lookup[T any] struct {
	Value    T
	Status   LookupStatus
	Language string
}

// Catalog 是按语言分层、以点路径为键的只读翻译表，例如 diseases.cholera.remedies。
// 基础语言层包含知识库中的全部英文内容，因此任何疾病字段都能回退成功。
type Catalog struct {
	base      string
	supported []string
	layers    map[string]map[string]interface{}
}

// NewCatalog 从内置的 locales/*.yaml 与知识库构建 Catalog。
func NewCatalog(kb *knowledge.KnowledgeBase, supported []string) (*Catalog, error) {
	return NewCatalogFS(kb, supported, localeFS)
}

// NewCatalogFS 与 NewCatalog 相同，但从指定文件系统读取 locales/<lang>.yaml。
func NewCatalogFS(kb *knowledge.KnowledgeBase, supported []string, fsys fs.FS) (*Catalog, error) {
	base := kb.BaseLanguage()
	c := &Catalog{
		base:   base,
		layers: make(map[string]map[string]interface{}),
	}
	langs := append([]string{base}, supported...)
	for _, lang := range langs {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" {
			continue
		}
		if _, done := c.layers[lang]; done {
			continue
		}
		layer, err := loadLayer(fsys, lang)
		if err != nil {
			return nil, err
		}
		c.layers[lang] = layer
		c.supported = append(c.supported, lang)
	}

	// 症状标签来自知识库的显式 ID -> 语言 -> 标签 映射
	for _, s := range kb.Symptoms() {
		for lang, label := range s.Labels {
			if layer, ok := c.layers[lang]; ok && label != "" {
				layer["symptoms."+s.ID] = label
			}
		}
	}
	// 基础语言层直接由知识库生成
	baseLayer := c.layers[base]
	for _, d := range kb.Diseases() {
		prefix := "diseases." + d.ID + "."
		baseLayer[prefix+"name"] = d.Name
		baseLayer[prefix+"description"] = d.Description
		baseLayer[prefix+"remedies"] = d.Remedies
		for _, f := range model.InfoFields {
			baseLayer[prefix+"info."+string(f)] = d.Info.Field(f)
		}
	}
	return c, nil
}

func loadLayer(fsys fs.FS, lang string) (map[string]interface{}, error) {
	layer := make(map[string]interface{})
	data, err := fs.ReadFile(fsys, "locales/"+lang+".yaml")
	if err != nil {
		// 没有翻译文件的语言只包含症状标签，其余全部回退
		return layer, nil
	}
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to parse locale %s: %w", lang, err)
	}
	for _, key := range v.AllKeys() {
		if _, isList := v.Get(key).([]interface{}); isList {
			layer[key] = v.GetStringSlice(key)
		} else {
			layer[key] = v.GetString(key)
		}
	}
	return layer, nil
}

// BaseLanguage 返回回退用的基础语言。
func (c *Catalog) BaseLanguage() string {
	return c.base
}

// Languages 返回支持的语言，基础语言在前。
func (c *Catalog) Languages() []string {
	return append([]string(nil), c.supported...)
}

// Normalize 把 "hi-IN"、"HI" 之类的标签规范为受支持的语言，无法识别时返回基础语言。
func (c *Catalog) Normalize(lang string) string {
	if supported, ok := c.Supported(lang); ok {
		return supported
	}
	return c.base
}

// Supported 去掉地区后缀后判断语言是否受支持，不受支持时返回 false 而不是基础语言。
func (c *Catalog) Supported(lang string) (string, bool) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if _, ok := c.layers[lang]; ok {
		return lang, true
	}
	return "", false
}

// Text 按点路径查找字符串。
func (c *Catalog) Text(lang, key string) Lookup[string] {
	return lookup[string](c, lang, key)
}

// List 按点路径查找字符串列表。
func (c *Catalog) List(lang, key string) Lookup[[]string] {
	res := lookup[[]string](c, lang, key)
	res.Value = append([]string(nil), res.Value...)
	return res
}

func lookup[T any](c *Catalog, lang, key string) Lookup[T] {
	lang = c.Normalize(lang)
	if v, ok := c.layers[lang][key].(T); ok && !isBlank(v) {
		return Lookup[T]{Value: v, Status: Found, Language: lang}
	}
	if v, ok := c.layers[c.base][key].(T); ok {
		status := FallbackToBase
		if lang == c.base {
			status = Found
		}
		return Lookup[T]{Value: v, Status: status, Language: c.base}
	}
	var zero T
	return Lookup[T]{Value: zero, Status: Missing, Language: c.base}
}

func isBlank(v interface{}) bool {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) == ""
	case []string:
		return len(t) == 0
	}
	return false
}

// DiseaseName 返回疾病的显示名称。
func (c *Catalog) DiseaseName(lang, diseaseID string) Lookup[string] {
	return c.Text(lang, "diseases."+diseaseID+".name")
}

// DiseaseDescription 返回疾病描述。
func (c *Catalog) DiseaseDescription(lang, diseaseID string) Lookup[string] {
	return c.Text(lang, "diseases."+diseaseID+".description")
}

// DiseaseRemedies 返回疾病的处理建议列表。
func (c *Catalog) DiseaseRemedies(lang, diseaseID string) Lookup[[]string] {
	return c.List(lang, "diseases."+diseaseID+".remedies")
}

// DiseaseField 返回疾病信息记录中的一个字段。
func (c *Catalog) DiseaseField(lang, diseaseID string, field model.InfoField) Lookup[string] {
	return c.Text(lang, "diseases."+diseaseID+".info."+string(field))
}

// FieldLabel 返回字段名称，例如 "Symptoms"。
func (c *Catalog) FieldLabel(lang string, field model.InfoField) Lookup[string] {
	return c.Text(lang, "fields."+string(field))
}

// SymptomLabel 返回症状的显示标签。
func (c *Catalog) SymptomLabel(lang, symptomID string) Lookup[string] {
	return c.Text(lang, "symptoms."+symptomID)
}
