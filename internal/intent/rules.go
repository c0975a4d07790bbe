package intent

import (
	"aqua-health-go/internal/knowledge"
	"aqua-health-go/internal/model"
	"strings"
)

// Message 是一条待解析的聊天消息。
type Message struct {
	Text  string
	Lower string
	Lang  string
}

// NewMessage 预先计算小写文本。
func NewMessage(text, lang string) Message {
	return Message{Text: text, Lower: strings.ToLower(text), Lang: strings.ToLower(lang)}
}

// Rule 是级联中的一条规则：Match 返回 true 时级联结束。
type Rule struct {
	Name  model.Intent
	Match func(msg Message) (model.Resolution, bool)
}

// containsAny 判断 text 是否包含任意一个（已小写的）关键词。
func containsAny(text string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// GreetingRule 对问候语做大小写不敏感的子串匹配。
func GreetingRule(lex Lexicon) Rule {
	return Rule{
		Name: model.IntentGreeting,
		Match: func(msg Message) (model.Resolution, bool) {
			if containsAny(msg.Lower, lex.greetingsFor(msg.Lang)) {
				return model.Resolution{Intent: model.IntentGreeting}, true
			}
			return model.Resolution{}, false
		},
	}
}

type diseaseMatcher struct {
	id    string
	words []string
}

// DiseaseRule 按知识库顺序寻找第一个被提及的疾病，再按固定顺序匹配字段关键词族。
// 没有字段命中时返回疾病概要。
func DiseaseRule(kb *knowledge.KnowledgeBase, lex Lexicon) Rule {
	var matchers []diseaseMatcher
	for _, d := range kb.Diseases() {
		words := []string{strings.ToLower(d.Name)}
		for _, kw := range d.RecognitionKeywords {
			words = append(words, strings.ToLower(kw))
		}
		matchers = append(matchers, diseaseMatcher{id: d.ID, words: words})
	}

	return Rule{
		Name: model.IntentDiseaseField,
		Match: func(msg Message) (model.Resolution, bool) {
			for _, m := range matchers {
				if !containsAny(msg.Lower, m.words) {
					continue
				}
				for _, f := range model.InfoFields {
					if containsAny(msg.Lower, lex.Families[f]) {
						return model.Resolution{Intent: model.IntentDiseaseField, DiseaseID: m.id, Field: f}, true
					}
				}
				return model.Resolution{Intent: model.IntentDiseaseSummary, DiseaseID: m.id}, true
			}
			return model.Resolution{}, false
		},
	}
}

// GenericSymptomRule 匹配未指明疾病的症状类提问。
func GenericSymptomRule(lex Lexicon) Rule {
	return Rule{
		Name: model.IntentGenericSymptom,
		Match: func(msg Message) (model.Resolution, bool) {
			if containsAny(msg.Lower, lex.Families[model.FieldSymptoms]) {
				return model.Resolution{Intent: model.IntentGenericSymptom}, true
			}
			return model.Resolution{}, false
		},
	}
}

// FallbackRule 总是匹配。
func FallbackRule() Rule {
	return Rule{
		Name: model.IntentFallback,
		Match: func(Message) (model.Resolution, bool) {
			return model.Resolution{Intent: model.IntentFallback}, true
		},
	}
}

// DefaultRules 返回固定优先级的规则：问候 > 疾病字段 > 通用症状 > 兜底。
func DefaultRules(kb *knowledge.KnowledgeBase, lex Lexicon) []Rule {
	return []Rule{
		GreetingRule(lex),
		DiseaseRule(kb, lex),
		GenericSymptomRule(lex),
		FallbackRule(),
	}
}
