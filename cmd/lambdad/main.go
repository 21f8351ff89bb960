package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"Lambda-Link/internal/api"
	"Lambda-Link/internal/config"
	"Lambda-Link/internal/session"
	"Lambda-Link/internal/translate"
	"Lambda-Link/internal/vocab"
	"Lambda-Link/pkg/logger"
)

// main 是 Lambda Link 守护进程的入口。
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("lambdad 运行失败: %v", err)
	}
}

func run(ctx context.Context) error {
	configPath := os.Getenv("LAMBDALINK_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("configs", "lambdalink.json")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: cfg.Logging.Outputs,
		Audit: logger.AuditConfig{
			Enabled:    cfg.Logging.Audit.Enabled,
			Path:       cfg.Logging.Audit.Path,
			MaxSizeMB:  cfg.Logging.Audit.MaxSizeMB,
			MaxBackups: cfg.Logging.Audit.MaxBackups,
		},
	}); err != nil {
		return err
	}
	defer logger.Sync()

	// 加载词汇表。未配置外部词汇文件时使用内置词汇表。
	var table *vocab.Table
	if cfg.Vocabulary.Path != "" {
		table, err = vocab.Load(cfg.Vocabulary.Path)
		if err != nil {
			return err
		}
	} else {
		table = vocab.Builtin()
	}

	var sessionStore session.Store
	switch cfg.Sessions.Driver {
	case "", "memory":
		sessionStore = session.NewMemoryStore()
	case "redis":
		store, err := session.NewRedisStore(session.RedisStoreConfig{
			Address:   cfg.Sessions.Redis.Address,
			Password:  cfg.Sessions.Redis.Password,
			DB:        cfg.Sessions.Redis.DB,
			KeyPrefix: cfg.Sessions.Redis.KeyPrefix,
			TTL:       time.Duration(cfg.Sessions.Redis.TTLSeconds) * time.Second,
		})
		if err != nil {
			return err
		}
		sessionStore = store
	default:
		return fmt.Errorf("未知的会话存储驱动: %s", cfg.Sessions.Driver)
	}

	var jobStore translate.Store
	switch cfg.History.Driver {
	case "", "memory":
		jobStore = translate.NewMemoryStore()
	case "mysql":
		store, err := translate.NewMySQLStore(cfg.History.DSN)
		if err != nil {
			return err
		}
		jobStore = store
	default:
		return fmt.Errorf("未知的任务存储驱动: %s", cfg.History.Driver)
	}

	var jobQueue translate.Queue
	switch cfg.Queue.Driver {
	case "", "memory":
		jobQueue = translate.NewMemoryQueue(1024)
	case "redis":
		queue, err := translate.NewRedisQueue(translate.RedisQueueConfig{
			Address:   cfg.Queue.Redis.Address,
			Password:  cfg.Queue.Redis.Password,
			DB:        cfg.Queue.Redis.DB,
			Queue:     cfg.Queue.Redis.Queue,
			BlockWait: time.Duration(cfg.Queue.Redis.BlockWait) * time.Second,
		})
		if err != nil {
			return err
		}
		jobQueue = queue
	case "rabbitmq":
		queue, err := translate.NewRabbitMQQueue(translate.RabbitMQConfig{
			URL:        cfg.Queue.RabbitMQ.URL,
			Queue:      cfg.Queue.RabbitMQ.Queue,
			Prefetch:   cfg.Queue.RabbitMQ.Prefetch,
			Durable:    cfg.Queue.RabbitMQ.Durable,
			AutoDelete: cfg.Queue.RabbitMQ.AutoDelete,
		})
		if err != nil {
			return err
		}
		jobQueue = queue
	default:
		return fmt.Errorf("未知的队列驱动: %s", cfg.Queue.Driver)
	}

	service := translate.NewService(table, sessionStore, jobStore, jobQueue, cfg.History.Retries)
	defer func() {
		if err := service.Close(); err != nil {
			log.Printf("关闭翻译服务失败: %v", err)
		}
	}()

	processor := translate.NewProcessor(service, jobStore, jobQueue, jobQueue,
		translate.WithWorkerCount(cfg.Queue.Worker),
		translate.WithProcessorLogger(logger.L()),
	)

	processorCtx, processorCancel := context.WithCancel(ctx)
	defer processorCancel()

	go func() {
		if err := processor.Start(processorCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("任务处理器异常退出: %v", err)
		}
	}()

	server := api.NewServer(cfg.Server.Address, service)

	if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
