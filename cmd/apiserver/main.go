package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bllokusync/bllokusync/internal/apiserver/cache"
	"github.com/bllokusync/bllokusync/internal/apiserver/database"
	"github.com/bllokusync/bllokusync/internal/apiserver/handler"
	"github.com/bllokusync/bllokusync/internal/apiserver/scheduler"
	"github.com/bllokusync/bllokusync/internal/auth/jwt"
	"github.com/bllokusync/bllokusync/internal/common/cnst"
	"github.com/bllokusync/bllokusync/internal/common/config"
	"github.com/bllokusync/bllokusync/internal/i18n"
	"github.com/bllokusync/bllokusync/internal/payment"
	"github.com/bllokusync/bllokusync/pkg/logger"
	"github.com/bllokusync/bllokusync/pkg/metrics"
	"github.com/bllokusync/bllokusync/pkg/version"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of " + cnst.CommandName,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", cnst.CommandName, version.Get())
		},
	}

	rootCmd = &cobra.Command{
		Use:   cnst.CommandName,
		Short: "BllokuSync API Server",
		Long:  `BllokuSync API Server provides property management and payment reconciliation endpoints`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", cnst.ApiServerYaml, "path to configuration file")
	rootCmd.AddCommand(versionCmd)
}

func run() {
	cfg, cfgPath, err := config.LoadConfig[config.APIServerConfig](configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %s: %v", cfgPath, err)
	}

	zapLogger, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()
	zapLogger.Info("loaded configuration", zap.String("path", cfgPath))

	if err := i18n.InitTranslator(cfg.I18n.Path); err != nil {
		zapLogger.Warn("failed to load translations, falling back to message IDs", zap.Error(err))
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		zapLogger.Fatal("failed to initialize database",
			zap.String("type", cfg.Database.Type),
			zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	if err := database.EnsureSuperAdmin(context.Background(), db, &cfg.SuperAdmin); err != nil {
		zapLogger.Fatal("failed to ensure super admin account", zap.Error(err))
	}

	jwtService, err := jwt.NewService(jwt.Config{
		SecretKey: cfg.JWT.SecretKey,
		Duration:  cfg.JWT.Duration,
	})
	if err != nil {
		zapLogger.Fatal("failed to initialize JWT service", zap.Error(err))
	}

	var redisClient redis.Cmdable
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			zapLogger.Warn("redis unreachable, statistics cache runs memory-only",
				zap.String("addr", cfg.Redis.Addr),
				zap.Error(err))
		} else {
			redisClient = client
			defer func() {
				_ = client.Close()
			}()
		}
	}

	statsCache := cache.NewStatsCache(cache.StatsCacheConfig{
		RedisClient: redisClient,
		KeyPrefix:   cfg.Redis.Prefix,
	}, zapLogger)

	m := metrics.New(cfg.Metrics)
	reconciler := payment.NewReconciler(db, zapLogger)

	handlers := &handler.Handlers{
		Auth:          handler.NewAuth(db, jwtService, zapLogger),
		User:          handler.NewUser(db, zapLogger),
		Property:      handler.NewProperty(db, zapLogger),
		Tenant:        handler.NewTenant(db, zapLogger),
		Payment:       handler.NewPayment(db, reconciler, statsCache, m, zapLogger),
		Submission:    handler.NewSubmission(db, zapLogger),
		MonthlyReport: handler.NewMonthlyReport(db, zapLogger),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(m.Middleware())
	r.GET("/metrics", gin.WrapH(m.Handler()))
	handler.RegisterRoutes(r, jwtService, handlers)

	if cfg.Scheduler.Enabled {
		overdue := scheduler.NewOverdueScheduler(scheduler.OverdueSchedulerConfig{
			DB:       db,
			Logger:   zapLogger,
			Interval: cfg.Scheduler.Interval,
			OnSweep: func(marked int) {
				m.SweepDone(marked)
				if marked > 0 {
					statsCache.Invalidate(context.Background())
				}
			},
		})
		if err := overdue.Start(); err != nil {
			zapLogger.Fatal("failed to start overdue scheduler", zap.Error(err))
		}
		defer func() {
			_ = overdue.Stop()
		}()
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		zapLogger.Info("starting apiserver",
			zap.String("version", version.Get()),
			zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down apiserver")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("forced shutdown", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
