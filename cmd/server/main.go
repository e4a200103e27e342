package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stocksim/internal/config"
	cronrunner "stocksim/internal/cron"
	"stocksim/internal/db"
	"stocksim/internal/handler"
	"stocksim/internal/logger"
	gormrepository "stocksim/internal/repository/gorm"
	"stocksim/internal/service"
	"stocksim/internal/simcache"
)

func main() {
	cfgPath := os.Getenv("SS_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("SS_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)

	var (
		cache  simcache.ResultCache
		tokens simcache.TokenStore
		memory *simcache.Memory
	)
	switch strings.ToLower(cfg.Cache.Backend) {
	case "redis":
		rds := simcache.NewRedis(cfg.Cache.Redis, cfg.Cache.ResultTTL, cfg.Cache.TokenTTL)
		defer rds.Close()
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rds.Ping(pingCtx); err != nil {
			cancel()
			logger.Fatal("redis ping failed", zap.Error(err))
		}
		cancel()
		cache, tokens = rds, rds
		logger.Info("cache backend: redis", zap.String("addr", cfg.Cache.Redis.Addr))
	default:
		memory = simcache.NewMemory(cfg.Cache.ResultTTL, cfg.Cache.TokenTTL)
		cache, tokens = memory, memory
		logger.Info("cache backend: memory")
	}

	simulator := &service.SimulatorService{
		Repo:     store,
		Cache:    cache,
		Tokens:   tokens,
		Logger:   logger,
		TokenTTL: cfg.Cache.TokenTTL,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn}
	healthHandler.Register(engine)
	simHandler := &handler.SimulationHandler{Service: simulator, Logger: logger}
	simHandler.Register(engine)
	presetHandler := &handler.PresetHandler{Repo: store}
	presetHandler.Register(engine)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled && memory != nil {
		cronRunner := cronrunner.New(logger, ctx)
		_, err := cronRunner.Add("cache_sweep", cfg.Cron.CacheSweep, func(ctx context.Context) {
			results, burned := memory.SweepExpired()
			if results > 0 || burned > 0 {
				logger.Info("cache sweep",
					zap.Int("results", results),
					zap.Int("tokens", burned),
				)
			}
		})
		if err == nil {
			cronRunner.Start()
			defer cronRunner.Stop()
		}
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
