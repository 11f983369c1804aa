package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/inventory/internal/inventory/application"
	"github.com/wyfcoding/inventory/internal/inventory/domain"
	"github.com/wyfcoding/inventory/internal/inventory/infrastructure/messaging"
	"github.com/wyfcoding/inventory/internal/inventory/infrastructure/persistence/mysql"
	httpserver "github.com/wyfcoding/inventory/internal/inventory/interfaces/http"
	"github.com/wyfcoding/inventory/pkg/config"
	"github.com/wyfcoding/inventory/pkg/db"
	"github.com/wyfcoding/inventory/pkg/logger"
	"github.com/wyfcoding/inventory/pkg/metrics"
	"github.com/wyfcoding/inventory/pkg/middleware"
	"github.com/wyfcoding/inventory/pkg/mq"
)

var configPath = flag.String("config", "configs/inventory/config.toml", "config file path")

func main() {
	flag.Parse()

	// 1. 初始化配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. 初始化日志
	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	ctx := context.Background()

	// 3. 初始化指标
	metricsImpl := metrics.New(cfg.ServiceName)
	if cfg.Metrics.Enabled {
		go metricsImpl.ExposeHTTP(cfg.Metrics.Port, cfg.Metrics.Path)
	}

	// 4. 初始化基础设施
	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to connect database", "error", err)
	}

	// Auto Migrate (仅用于开发方便)
	if cfg.Environment == "dev" {
		if err := database.AutoMigrate(&mysql.ProductModel{}, &mysql.TransactionModel{}); err != nil {
			logger.Error(ctx, "failed to migrate database", "error", err)
		}
	}

	var publisher domain.EventPublisher
	var producer *mq.KafkaProducer
	if cfg.Kafka.Enabled {
		producer, err = mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Fatal(ctx, "failed to init kafka producer", "error", err)
		}
		publisher = messaging.NewKafkaEventPublisher(producer)
	} else {
		publisher = messaging.NewNopEventPublisher()
	}

	// 5. 初始化仓储
	productRepo := mysql.NewProductRepository(database.DB)
	transactionRepo := mysql.NewTransactionRepository(database.DB)

	// 6. 初始化应用服务
	commandSvc := application.NewInventoryCommandService(productRepo, transactionRepo, publisher, metricsImpl)
	querySvc := application.NewInventoryQueryService(productRepo, transactionRepo)
	appService := application.NewInventoryService(commandSvc, querySvc)

	// 7. 初始化接口层
	gin.SetMode(gin.ReleaseMode)
	if cfg.Environment == "dev" {
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(
		middleware.GinRecoveryMiddleware(),
		middleware.GinLoggingMiddleware(),
		middleware.GinCORSMiddleware(),
		middleware.GinMetricsMiddleware(metricsImpl),
	)

	handler := httpserver.NewInventoryHandler(appService)
	handler.RegisterRoutes(r)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 8. 启动服务
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info(ctx, "HTTP server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "HTTP server exited", "error", err)
		}
	}()

	// 9. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "HTTP server shutdown failed", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error(ctx, "failed to close kafka producer", "error", err)
		}
	}
	if err := database.Close(); err != nil {
		logger.Error(ctx, "failed to close database", "error", err)
	}
}
