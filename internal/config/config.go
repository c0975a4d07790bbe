// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Admin         AdminConfig         `mapstructure:"admin"`
	Log           LogConfig           `mapstructure:"log"`
	Knowledge     KnowledgeConfig     `mapstructure:"knowledge"`
	I18n          I18nConfig          `mapstructure:"i18n"`
	Analysis      AnalysisConfig      `mapstructure:"analysis"`
	Chat          ChatConfig          `mapstructure:"chat"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	LLM           LLMConfig           `mapstructure:"llm"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 存储所有数据库连接的配置。
type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
	Redis RedisConfig `mapstructure:"redis"`
}

// MySQLConfig 存储 MySQL 数据库的配置。DSN 为空时不连接 MySQL。
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig 存储 Redis 的配置。Addr 为空时关闭统计功能。
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig 存储 JWT 相关的配置。
type JWTConfig struct {
	Secret                 string `mapstructure:"secret"`
	AccessTokenExpireHours int    `mapstructure:"access_token_expire_hours"`
}

// AdminConfig 存储管理员账号。PasswordHash 是 bcrypt 哈希。
type AdminConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// KnowledgeConfig 决定知识库从哪里加载。
// Source 取值 builtin | mysql | minio。
type KnowledgeConfig struct {
	Source     string `mapstructure:"source"`
	ObjectName string `mapstructure:"object_name"`
	// Seed 为 true 时，mysql 表为空会用内置知识库填充。
	Seed bool `mapstructure:"seed"`
}

// I18nConfig 存储多语言相关配置。
type I18nConfig struct {
	BaseLanguage       string   `mapstructure:"base_language"`
	SupportedLanguages []string `mapstructure:"supported_languages"`
}

// AnalysisConfig 存储症状分析相关配置。
type AnalysisConfig struct {
	// SimulatedDelayMs 在调用评分引擎前人为等待的毫秒数，0 表示不等待。
	SimulatedDelayMs int `mapstructure:"simulated_delay_ms"`
}

// ChatConfig 存储聊天相关配置。Backend 取值 local | remote。
type ChatConfig struct {
	Backend      string `mapstructure:"backend"`
	StatsEnabled bool   `mapstructure:"stats_enabled"`
}

// KafkaConfig 存储 Kafka 相关的配置。Brokers 为空时聊天事件直接写入统计。
type KafkaConfig struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// ElasticsearchConfig 存储 Elasticsearch 相关的配置。Addresses 为空时使用内存检索。
type ElasticsearchConfig struct {
	Addresses string `mapstructure:"addresses"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	IndexName string `mapstructure:"index_name"`
}

// MinIOConfig 存储 MinIO 对象存储的配置。
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
}

// LLMConfig 存储远程聊天后端（OpenAI 兼容接口）的配置。
type LLMConfig struct {
	APIKey     string              `mapstructure:"api_key"`
	BaseURL    string              `mapstructure:"base_url"`
	Model      string              `mapstructure:"model"`
	Generation LLMGenerationConfig `mapstructure:"generation"`
	Prompt     LLMPromptConfig     `mapstructure:"prompt"`
}

// LLMGenerationConfig 配置生成相关参数（可选）。
type LLMGenerationConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	TopP        float64 `mapstructure:"top_p"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// LLMPromptConfig 配置系统提示（可选）。
type LLMPromptConfig struct {
	Rules string `mapstructure:"rules"`
}

// Init 初始化配置加载，从指定的路径读取 YAML 文件并解析到 Conf 变量中。
// 环境变量以 AQUA_ 为前缀覆盖配置，例如 AQUA_SERVER_PORT。
func Init(configPath string) {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	Conf = *cfg
}

// Load 读取并解析配置文件，不修改全局变量。
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("AQUA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("无法将配置解析到结构体中: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8081")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("knowledge.source", "builtin")
	v.SetDefault("knowledge.object_name", "knowledge/knowledge_base.json")
	v.SetDefault("i18n.base_language", "en")
	v.SetDefault("i18n.supported_languages", []string{"en", "hi", "bn"})
	v.SetDefault("chat.backend", "local")
	v.SetDefault("kafka.topic", "chat-events")
	v.SetDefault("kafka.group_id", "aqua-health-stats")
	v.SetDefault("elasticsearch.index_name", "waterborne_diseases")
	v.SetDefault("jwt.access_token_expire_hours", 12)
}
