// Package main 是应用程序的入口点。
package main

import (
	"aqua-health-go/internal/config"
	"aqua-health-go/internal/handler"
	"aqua-health-go/internal/i18n"
	"aqua-health-go/internal/intent"
	"aqua-health-go/internal/repository"
	"aqua-health-go/internal/scorer"
	"aqua-health-go/internal/service"
	"aqua-health-go/pkg/database"
	"aqua-health-go/pkg/es"
	"aqua-health-go/pkg/kafka"
	"aqua-health-go/pkg/llm"
	"aqua-health-go/pkg/log"
	"aqua-health-go/pkg/storage"
	"aqua-health-go/pkg/token"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "./configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 1. 初始化配置
	config.Init(*configPath)
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// 3. 加载知识库，校验失败直接退出
	var knowledgeRepo repository.KnowledgeRepository
	if cfg.Knowledge.Source == service.SourceMySQL {
		db, err := database.OpenMySQL(cfg.Database.MySQL.DSN)
		if err != nil {
			log.Fatal("MySQL 初始化失败", err)
		}
		knowledgeRepo = repository.NewKnowledgeRepository(db)
	}
	var objects service.ObjectReader
	if cfg.Knowledge.Source == service.SourceMinIO {
		store, err := storage.NewObjectStore(rootCtx, cfg.MinIO)
		if err != nil {
			log.Fatal("MinIO 初始化失败", err)
		}
		objects = store
	}
	kb, err := service.NewKnowledgeLoader(cfg.Knowledge, cfg.I18n.BaseLanguage, knowledgeRepo, objects).Load(rootCtx)
	if err != nil {
		log.Fatal("知识库加载失败", err)
	}
	log.Infof("知识库加载成功: 来源=%s, 疾病=%d, 症状=%d", cfg.Knowledge.Source, len(kb.Diseases()), len(kb.Symptoms()))

	catalog, err := i18n.NewCatalog(kb, cfg.I18n.SupportedLanguages)
	if err != nil {
		log.Fatal("翻译表加载失败", err)
	}

	// 4. 可选的基础设施：Redis 统计、Kafka 事件、Elasticsearch 检索、远程聊天后端
	var statsRepo repository.StatsRepository
	if cfg.Chat.StatsEnabled && cfg.Database.Redis.Addr != "" {
		rdb, err := database.OpenRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
		if err != nil {
			log.Error("Redis 初始化失败，意图统计已关闭", err)
		} else {
			defer rdb.Close()
			statsRepo = repository.NewStatsRepository(rdb)
		}
	}
	statsService := service.NewStatsService(statsRepo)

	var publisher service.EventPublisher
	if statsRepo != nil {
		if cfg.Kafka.Brokers != "" {
			producer := kafka.NewProducer(cfg.Kafka)
			defer producer.Close()
			publisher = producer
			go kafka.StartConsumer(rootCtx, cfg.Kafka, statsService)
		} else {
			publisher = service.NewDirectPublisher(statsService)
		}
	}

	var diseaseIndex service.DiseaseIndexer
	if cfg.Elasticsearch.Addresses != "" {
		idx, err := es.NewDiseaseIndex(cfg.Elasticsearch)
		if err != nil {
			log.Error("Elasticsearch 初始化失败，使用内存检索", err)
		} else {
			diseaseIndex = idx
		}
	}

	var llmClient llm.Client
	if cfg.Chat.Backend == service.BackendRemote {
		if cfg.LLM.BaseURL == "" {
			log.Warnf("chat.backend=remote 但未配置 llm.base_url，使用本地解析器")
		} else {
			llmClient = llm.NewClient(cfg.LLM)
		}
	}

	// 5. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours)
	composer := service.NewResponseComposer(kb, catalog)
	diseaseService := service.NewDiseaseService(kb, catalog, composer, diseaseIndex)
	if diseaseIndex != nil {
		if n, err := diseaseService.Reindex(rootCtx); err != nil {
			log.Error("初始化疾病索引失败", err)
		} else {
			log.Infof("疾病索引已就绪: %d 条", n)
		}
	}
	services := handler.Services{
		Analysis: service.NewAnalysisService(
			i18n.NewLocalizer(kb, catalog),
			scorer.New(kb),
			composer,
			time.Duration(cfg.Analysis.SimulatedDelayMs)*time.Millisecond,
		),
		Chat: service.NewChatService(
			intent.NewResolver(kb, intent.DefaultLexicon()),
			composer,
			llmClient,
			cfg.LLM.Prompt.Rules,
			publisher,
		),
		Disease:  diseaseService,
		Stats:    statsService,
		Auth:     service.NewAuthService(cfg.Admin, jwtManager),
		Composer: composer,
	}

	// 6. 设置 Gin 模式并注册路由
	gin.SetMode(cfg.Server.Mode)
	r := handler.NewRouter(services, jwtManager, len(kb.Diseases()), len(kb.Symptoms()))

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 停止 Kafka 消费者等后台任务
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}
	log.Info("服务已优雅关闭")
}
