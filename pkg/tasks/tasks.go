// Package tasks defines the messages that are sent to Kafka.
package tasks

import "time"

// ChatEvent 记录一次聊天解析的结果，只包含意图分类，不包含消息原文。
type ChatEvent struct {
	Intent    string    `json:"intent"`
	DiseaseID string    `json:"disease_id,omitempty"`
	Field     string    `json:"field,omitempty"`
	Language  string    `json:"language"`
	Backend   string    `json:"backend"`
	Timestamp time.Time `json:"timestamp"`
}
