// Package intent 把自由文本聊天消息解析为固定的信息类意图。
package intent

import "aqua-health-go/internal/model"

// CommonGreetings 对所有显示语言都生效。
const CommonGreetings = "*"

// Lexicon 是意图解析使用的多语言关键词表，全部以小写保存。
type Lexicon struct {
	// Greetings: 语言 -> 问候语。键 CommonGreetings 对所有语言生效。
	Greetings map[string][]string
	// Families: 信息字段 -> 触发词，用户可以用任意受支持的语言提问。
	Families map[model.InfoField][]string
}

// DefaultLexicon 返回内置词表。
// 问候语按子串匹配且优先级最高，其他词不能包含 "hi"、"hey"、"hello"。
func DefaultLexicon() Lexicon {
	return Lexicon{
		Greetings: map[string][]string{
			CommonGreetings: {"hello", "hi", "hey", "good morning", "good evening"},
			"hi":            {"namaste", "namaskar", "pranam", "नमस्ते", "नमस्कार", "प्रणाम"},
			"bn":            {"nomoskar", "nomoshkar", "adab", "নমস্কার", "আদাব", "হ্যালো"},
		},
		Families: map[model.InfoField][]string{
			model.FieldSymptoms:   {"symptom", "sign", "लक्षण", "lakshan", "লক্ষণ", "lokkhon"},
			model.FieldCauses:     {"cause", "why", "reason", "spread", "कारण", "karan", "क्यों", "কারণ", "keno"},
			model.FieldTreatment:  {"treat", "cure", "remed", "medicine", "इलाज", "उपचार", "ilaj", "upchar", "চিকিৎসা", "cikitsa", "osudh"},
			model.FieldPrevention: {"prevent", "avoid", "protect", "बचाव", "रोकथाम", "bachav", "প্রতিরোধ", "protirodh"},
		},
	}
}

// greetingsFor 返回某语言下生效的问候语：通用问候语加上该语言自己的问候语。
// 语言为空或没有专门词表时（英语除外）使用全部语言的问候语。
func (l Lexicon) greetingsFor(lang string) []string {
	words := append([]string(nil), l.Greetings[CommonGreetings]...)
	if own, ok := l.Greetings[lang]; ok {
		return append(words, own...)
	}
	if lang == "en" {
		return words
	}
	for key, own := range l.Greetings {
		if key != CommonGreetings {
			words = append(words, own...)
		}
	}
	return words
}
