package main

import (
	"aqua-health-go/internal/config"
	"aqua-health-go/internal/i18n"
	"aqua-health-go/internal/knowledge"
	"aqua-health-go/internal/repository"
	"aqua-health-go/internal/service"
	"aqua-health-go/pkg/database"
	"aqua-health-go/pkg/log"
	"aqua-health-go/pkg/storage"
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

// options 是所有子命令共享的全局参数。
type options struct {
	configPath string
	lang       string
	out        io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{out: out}
	cmd := &cobra.Command{
		Use:           "aquactl",
		Short:         "Offline tools for the waterborne disease symptom checker",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.SetOut(out)
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to config file; the builtin knowledge base is used when empty")
	cmd.PersistentFlags().StringVarP(&opts.lang, "lang", "l", "en", "Display language")

	cmd.AddCommand(
		newAnalyzeCmd(opts),
		newChatCmd(opts),
		newKBCmd(opts),
		newHashPasswordCmd(opts),
	)
	return cmd
}

// loadConfig 读取配置文件并初始化日志。没有指定配置文件时返回 nil。
func (o *options) loadConfig() (*config.Config, error) {
	if o.configPath == "" {
		return nil, nil
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	log.Init(cfg.Log.Level, "console", "")
	return cfg, nil
}

// runtime 是离线调用核心逻辑所需的知识库和翻译表。
type runtime struct {
	kb       *knowledge.KnowledgeBase
	catalog  *i18n.Catalog
	composer service.ResponseComposer
}

func (o *options) loadRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	kb := knowledge.Builtin()
	supported := []string{"en", "hi", "bn"}
	if cfg != nil {
		var repo repository.KnowledgeRepository
		if cfg.Knowledge.Source == service.SourceMySQL {
			db, err := database.OpenMySQL(cfg.Database.MySQL.DSN)
			if err != nil {
				return nil, err
			}
			repo = repository.NewKnowledgeRepository(db)
		}
		var objects service.ObjectReader
		if cfg.Knowledge.Source == service.SourceMinIO {
			store, err := storage.NewObjectStore(ctx, cfg.MinIO)
			if err != nil {
				return nil, err
			}
			objects = store
		}
		if kb, err = service.NewKnowledgeLoader(cfg.Knowledge, cfg.I18n.BaseLanguage, repo, objects).Load(ctx); err != nil {
			return nil, err
		}
		supported = cfg.I18n.SupportedLanguages
	}

	catalog, err := i18n.NewCatalog(kb, supported)
	if err != nil {
		return nil, err
	}
	return &runtime{kb: kb, catalog: catalog, composer: service.NewResponseComposer(kb, catalog)}, nil
}

func (o *options) printJSON(v interface{}) error {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
