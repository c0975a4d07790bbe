package service

import (
	"aqua-health-go/internal/config"
	"aqua-health-go/internal/knowledge"
	"aqua-health-go/internal/repository"
	"aqua-health-go/pkg/log"
	"context"
	"errors"
	"fmt"
	"io"
)

const (
	SourceBuiltin = "builtin"
	SourceMySQL   = "mysql"
	SourceMinIO   = "minio"
)

// ErrEmptyKnowledgeStore 表示数据库中没有知识库数据且未开启 seed。
var ErrEmptyKnowledgeStore = errors.New("knowledge tables are empty")

// ObjectReader 读取对象存储中的一个对象，*storage.ObjectStore 实现了它。
type ObjectReader interface {
	GetObject(ctx context.Context, name string) (io.ReadCloser, error)
}

// KnowledgeLoader 在启动时加载并校验知识库，加载后知识库不可变。
type KnowledgeLoader interface {
	Load(ctx context.Context) (*knowledge.KnowledgeBase, error)
}

type knowledgeLoader struct {
	cfg          config.KnowledgeConfig
	baseLanguage string
	repo         repository.KnowledgeRepository
	objects      ObjectReader
}

// NewKnowledgeLoader 创建一个新的 KnowledgeLoader 实例。
// repo 只在 mysql 来源时需要，objects 只在 minio 来源时需要。
func NewKnowledgeLoader(cfg config.KnowledgeConfig, baseLanguage string, repo repository.KnowledgeRepository, objects ObjectReader) KnowledgeLoader {
	if baseLanguage == "" {
		baseLanguage = knowledge.DefaultBaseLanguage
	}
	return &knowledgeLoader{
		cfg:          cfg,
		baseLanguage: baseLanguage,
		repo:         repo,
		objects:      objects,
	}
}

// Load 按配置的来源加载知识库。任何校验失败都返回 *knowledge.ConfigError。
func (l *knowledgeLoader) Load(ctx context.Context) (*knowledge.KnowledgeBase, error) {
	switch l.cfg.Source {
	case "", SourceBuiltin:
		return knowledge.New(l.baseLanguage, knowledge.BuiltinSymptoms(), knowledge.BuiltinDiseases())
	case SourceMySQL:
		return l.loadFromDatabase(ctx)
	case SourceMinIO:
		return l.loadFromObjectStore(ctx)
	default:
		return nil, fmt.Errorf("unsupported knowledge source %q", l.cfg.Source)
	}
}

func (l *knowledgeLoader) loadFromDatabase(ctx context.Context) (*knowledge.KnowledgeBase, error) {
	if l.repo == nil {
		return nil, errors.New("knowledge source mysql requires a database connection")
	}
	if err := l.repo.AutoMigrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate knowledge tables: %w", err)
	}
	n, err := l.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count diseases: %w", err)
	}
	if n == 0 {
		if !l.cfg.Seed {
			return nil, ErrEmptyKnowledgeStore
		}
		log.Info("知识库表为空，使用内置知识库填充")
		if err := l.repo.Seed(ctx, knowledge.BuiltinSymptoms(), knowledge.BuiltinDiseases()); err != nil {
			return nil, fmt.Errorf("failed to seed knowledge tables: %w", err)
		}
	}

	symptoms, diseases, err := l.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	log.Infof("从数据库加载了 %d 个症状、%d 种疾病", len(symptoms), len(diseases))
	return knowledge.New(l.baseLanguage, symptoms, diseases)
}

func (l *knowledgeLoader) loadFromObjectStore(ctx context.Context) (*knowledge.KnowledgeBase, error) {
	if l.objects == nil {
		return nil, errors.New("knowledge source minio requires an object store")
	}
	obj, err := l.objects.GetObject(ctx, l.cfg.ObjectName)
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	kb, err := knowledge.Decode(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", l.cfg.ObjectName, err)
	}
	log.Infof("从对象存储加载了知识库: %s", l.cfg.ObjectName)
	return kb, nil
}
