package i18n

import (
	"testing"
	"testing/fstest"

	"aqua-health-go/internal/knowledge"
	"aqua-health-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(knowledge.Builtin(), []string{"en", "hi", "bn"})
	require.NoError(t, err)
	return c
}

func TestCatalog_DiseaseFieldFallback(t *testing.T) {
	c := newCatalog(t)

	found := c.DiseaseField("hi", "cholera", model.FieldSymptoms)
	assert.Equal(t, Found, found.Status)
	assert.Equal(t, "hi", found.Language)
	assert.Contains(t, found.Value, "उल्टी")

	// hi.yaml 没有 typhoid 的 causes，回退到英文
	fallback := c.DiseaseField("hi", "typhoid", model.FieldCauses)
	assert.Equal(t, FallbackToBase, fallback.Status)
	assert.Equal(t, "en", fallback.Language)
	assert.Contains(t, fallback.Value, "Salmonella Typhi")

	base := c.DiseaseField("en", "typhoid", model.FieldCauses)
	assert.Equal(t, Found, base.Status)
	assert.Equal(t, fallback.Value, base.Value)
}

func TestCatalog_DotPathLookups(t *testing.T) {
	c := newCatalog(t)

	remedies := c.List("hi", "diseases.cholera.remedies")
	assert.Equal(t, Found, remedies.Status)
	assert.Len(t, remedies.Value, 3)

	bnRemedies := c.DiseaseRemedies("bn", "cholera")
	assert.Equal(t, FallbackToBase, bnRemedies.Status)
	assert.Equal(t, "Drink oral rehydration solution (ORS) frequently", bnRemedies.Value[0])

	missing := c.Text("hi", "diseases.unknown.name")
	assert.Equal(t, Missing, missing.Status)
	assert.Empty(t, missing.Value)

	assert.Equal(t, "Symptoms", c.FieldLabel("en", model.FieldSymptoms).Value)
	assert.Equal(t, "लक्षण", c.FieldLabel("hi", model.FieldSymptoms).Value)
}

func TestCatalog_Normalize(t *testing.T) {
	c := newCatalog(t)

	assert.Equal(t, "hi", c.Normalize("hi-IN"))
	assert.Equal(t, "bn", c.Normalize("BN"))
	assert.Equal(t, "en", c.Normalize("fr"))
	assert.Equal(t, "en", c.Normalize(""))
	assert.Equal(t, []string{"en", "hi", "bn"}, c.Languages())
}

func TestCatalog_Supported(t *testing.T) {
	c := newCatalog(t)

	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"带地区后缀", "hi-IN", "hi", true},
		{"大写", "BN", "bn", true},
		{"不支持的语言", "fr", "", false},
		{"未指定", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Supported(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalog_LanguageWithoutLocaleFile(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("fields:\n  symptoms: Symptoms\n")},
	}
	c, err := NewCatalogFS(knowledge.Builtin(), []string{"hi"}, fsys)
	require.NoError(t, err)

	// 症状标签来自知识库本身
	assert.Equal(t, Found, c.SymptomLabel("hi", "fever").Status)
	assert.Equal(t, "बुखार", c.SymptomLabel("hi", "fever").Value)
	assert.Equal(t, FallbackToBase, c.FieldLabel("hi", model.FieldSymptoms).Status)
}

func TestCatalog_InvalidLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("fields: [unclosed\n")},
	}
	_, err := NewCatalogFS(knowledge.Builtin(), nil, fsys)
	assert.Error(t, err)
}

func TestLocalizer_Canonicalize(t *testing.T) {
	kb := knowledge.Builtin()
	l := NewLocalizer(kb, newCatalog(t))

	tests := []struct {
		name        string
		lang        string
		inputs      []string
		wantIDs     []string
		wantUnknown []string
	}{
		{
			name:    "规范 ID 直接通过",
			lang:    "en",
			inputs:  []string{"fever", "rice_water_stool"},
			wantIDs: []string{"fever", "rice_water_stool"},
		},
		{
			name:    "印地语标签",
			lang:    "hi",
			inputs:  []string{"बुखार", "उल्टी"},
			wantIDs: []string{"fever", "vomiting"},
		},
		{
			name:    "当前语言下也接受英文标签，忽略大小写与多余空格",
			lang:    "bn",
			inputs:  []string{"  rice-water   STOOL ", "জ্বর"},
			wantIDs: []string{"rice_water_stool", "fever"},
		},
		{
			name:    "重复项合并",
			lang:    "hi",
			inputs:  []string{"fever", "बुखार", "Fever"},
			wantIDs: []string{"fever"},
		},
		{
			name:        "未知标签单独返回",
			lang:        "en",
			inputs:      []string{"fever", "sneezing"},
			wantIDs:     []string{"fever"},
			wantUnknown: []string{"sneezing"},
		},
		{
			name:    "空输入",
			lang:    "en",
			inputs:  nil,
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, unknown := l.Canonicalize(tt.lang, tt.inputs)
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantUnknown, unknown)
		})
	}
}

func TestLocalizer_Label(t *testing.T) {
	l := NewLocalizer(knowledge.Builtin(), newCatalog(t))

	assert.Equal(t, "Dehydration", l.Label("en", "dehydration").Value)
	assert.Equal(t, "পানিশূন্যতা", l.Label("bn", "dehydration").Value)
}
