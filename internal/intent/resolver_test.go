package intent

import (
	"testing"

	"aqua-health-go/internal/knowledge"
	"aqua-health-go/internal/model"

	"github.com/stretchr/testify/assert"
)

func newResolver() *Resolver {
	return NewResolver(knowledge.Builtin(), DefaultLexicon())
}

func TestResolver_Cascade(t *testing.T) {
	r := newResolver()

	tests := []struct {
		name string
		text string
		lang string
		want model.Resolution
	}{
		{
			name: "问候",
			text: "hello",
			lang: "en",
			want: model.Resolution{Intent: model.IntentGreeting},
		},
		{
			name: "问候优先于疾病关键词",
			text: "Hello, what are the symptoms of cholera?",
			lang: "en",
			want: model.Resolution{Intent: model.IntentGreeting},
		},
		{
			name: "疾病症状",
			text: "What are the symptoms of cholera?",
			lang: "en",
			want: model.Resolution{Intent: model.IntentDiseaseField, DiseaseID: "cholera", Field: model.FieldSymptoms},
		},
		{
			name: "疾病病因",
			text: "What causes giardiasis?",
			lang: "en",
			want: model.Resolution{Intent: model.IntentDiseaseField, DiseaseID: "giardiasis", Field: model.FieldCauses},
		},
		{
			name: "疾病治疗",
			text: "How is TYPHOID treated?",
			lang: "en",
			want: model.Resolution{Intent: model.IntentDiseaseField, DiseaseID: "typhoid", Field: model.FieldTreatment},
		},
		{
			name: "疾病预防",
			text: "How can I prevent dysentery",
			lang: "en",
			want: model.Resolution{Intent: model.IntentDiseaseField, DiseaseID: "dysentery", Field: model.FieldPrevention},
		},
		{
			name: "字段族按固定顺序匹配，症状优先于预防",
			text: "prevent cholera symptoms",
			lang: "en",
			want: model.Resolution{Intent: model.IntentDiseaseField, DiseaseID: "cholera", Field: model.FieldSymptoms},
		},
		{
			name: "只提到疾病返回概要",
			text: "Tell me about leptospirosis",
			lang: "en",
			want: model.Resolution{Intent: model.IntentDiseaseSummary, DiseaseID: "leptospirosis"},
		},
		{
			name: "识别词同义词",
			text: "what causes enteric fever",
			lang: "en",
			want: model.Resolution{Intent: model.IntentDiseaseField, DiseaseID: "typhoid", Field: model.FieldCauses},
		},
		{
			name: "多个疾病时按知识库顺序取第一个",
			text: "dysentery or cholera treatment",
			lang: "en",
			want: model.Resolution{Intent: model.IntentDiseaseField, DiseaseID: "cholera", Field: model.FieldTreatment},
		},
		{
			name: "印地语提问",
			text: "हैजा के लक्षण क्या हैं",
			lang: "hi",
			want: model.Resolution{Intent: model.IntentDiseaseField, DiseaseID: "cholera", Field: model.FieldSymptoms},
		},
		{
			name: "通用症状提问",
			text: "What are common symptoms of waterborne diseases?",
			lang: "en",
			want: model.Resolution{Intent: model.IntentGenericSymptom},
		},
		{
			name: "兜底",
			text: "xyz unrelated gibberish",
			lang: "en",
			want: model.Resolution{Intent: model.IntentFallback},
		},
		{
			name: "空消息走兜底",
			text: "",
			lang: "en",
			want: model.Resolution{Intent: model.IntentFallback},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.text, tt.lang))
		})
	}
}

func TestResolver_GreetingDependsOnLanguage(t *testing.T) {
	r := newResolver()

	assert.Equal(t, model.IntentGreeting, r.Resolve("Namaste", "hi").Intent)
	assert.Equal(t, model.IntentGreeting, r.Resolve("নমস্কার", "bn").Intent)
	// 英语环境只使用通用问候语
	assert.Equal(t, model.IntentFallback, r.Resolve("namaste", "en").Intent)
	// 未指定语言时使用全部问候语
	assert.Equal(t, model.IntentGreeting, r.Resolve("namaste", "").Intent)
}

func TestLexicon_FieldWordsDoNotContainGreetings(t *testing.T) {
	lex := DefaultLexicon()
	for field, words := range lex.Families {
		for _, w := range words {
			for _, g := range lex.Greetings[CommonGreetings] {
				assert.NotContains(t, w, g, "字段 %s 的触发词 %q 会被问候语抢先匹配", field, w)
			}
		}
	}
}

func TestResolver_RuleOrder(t *testing.T) {
	r := newResolver()

	assert.Equal(t, []model.Intent{
		model.IntentGreeting,
		model.IntentDiseaseField,
		model.IntentGenericSymptom,
		model.IntentFallback,
	}, r.RuleNames())
}

func TestResolver_WithoutFallbackRuleStillAnswers(t *testing.T) {
	r := NewResolverWithRules(GreetingRule(DefaultLexicon()))

	assert.Equal(t, model.IntentFallback, r.Resolve("anything", "en").Intent)
}

func TestRules_Individually(t *testing.T) {
	lex := DefaultLexicon()
	kb := knowledge.Builtin()

	_, ok := GreetingRule(lex).Match(NewMessage("HEY there", "en"))
	assert.True(t, ok)
	_, ok = GreetingRule(lex).Match(NewMessage("cholera", "en"))
	assert.False(t, ok)

	res, ok := DiseaseRule(kb, lex).Match(NewMessage("Hepatitis A", "en"))
	assert.True(t, ok)
	assert.Equal(t, model.Resolution{Intent: model.IntentDiseaseSummary, DiseaseID: "hepatitis_a"}, res)
	_, ok = DiseaseRule(kb, lex).Match(NewMessage("symptoms please", "en"))
	assert.False(t, ok)

	_, ok = GenericSymptomRule(lex).Match(NewMessage("लक्षण", "hi"))
	assert.True(t, ok)
	_, ok = GenericSymptomRule(lex).Match(NewMessage("prevention", "en"))
	assert.False(t, ok)

	res, ok = FallbackRule().Match(NewMessage("", ""))
	assert.True(t, ok)
	assert.Equal(t, model.IntentFallback, res.Intent)
}
