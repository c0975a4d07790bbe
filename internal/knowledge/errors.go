package knowledge

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKnowledgeBase 是所有知识库配置错误的哨兵值，可用 errors.Is 判断。
var ErrInvalidKnowledgeBase = errors.New("invalid knowledge base")

// ConfigError 汇总了加载知识库时发现的全部问题。
// 它只在启动加载阶段出现，评分和聊天阶段不会返回它。
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidKnowledgeBase, strings.Join(e.Problems, "; "))
}

// Is 让 errors.Is(err, ErrInvalidKnowledgeBase) 成立。
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidKnowledgeBase
}

func (e *ConfigError) addf(format string, args ...interface{}) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}
