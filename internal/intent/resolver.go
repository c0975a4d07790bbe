package intent

import (
	"aqua-health-go/internal/knowledge"
	"aqua-health-go/internal/model"
)

// Resolver 依次执行规则，第一条命中的规则决定结果。它没有可变状态，可并发使用。
type Resolver struct {
	rules []Rule
}

// NewResolver 使用默认规则创建 Resolver。
func NewResolver(kb *knowledge.KnowledgeBase, lex Lexicon) *Resolver {
	return NewResolverWithRules(DefaultRules(kb, lex)...)
}

// NewResolverWithRules 使用自定义规则创建 Resolver。
func NewResolverWithRules(rules ...Rule) *Resolver {
	return &Resolver{rules: append([]Rule(nil), rules...)}
}

// Resolve 解析一条消息。即使没有任何规则命中也返回兜底意图，从不失败。
func (r *Resolver) Resolve(text, lang string) model.Resolution {
	msg := NewMessage(text, lang)
	for _, rule := range r.rules {
		if res, ok := rule.Match(msg); ok {
			return res
		}
	}
	return model.Resolution{Intent: model.IntentFallback}
}

// RuleNames 按优先级返回规则名称。
func (r *Resolver) RuleNames() []model.Intent {
	names := make([]model.Intent, 0, len(r.rules))
	for _, rule := range r.rules {
		names = append(names, rule.Name)
	}
	return names
}
