package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"uni-analytics/backend/config"
	"uni-analytics/backend/internal/api/handler"
	"uni-analytics/backend/internal/api/router"
	"uni-analytics/backend/internal/service"
	"uni-analytics/backend/internal/store"
	"uni-analytics/backend/pkg/database"
	"uni-analytics/backend/pkg/elastic"
	"uni-analytics/backend/pkg/jwt"
	applogger "uni-analytics/backend/pkg/logger"
	appmongo "uni-analytics/backend/pkg/mongo"
	appneo4j "uni-analytics/backend/pkg/neo4j"
	"uni-analytics/backend/pkg/redis"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting report server",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Connect the five backing stores
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}

	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Fatal("redis connection failed", zap.Error(err))
	}

	mongoDB, mongoClose, err := appmongo.NewDatabase(&cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("mongodb connection failed", zap.Error(err))
	}

	neoDriver, err := appneo4j.NewDriver(&cfg.Neo4j, logger)
	if err != nil {
		logger.Fatal("neo4j connection failed", zap.Error(err))
	}

	es, err := elastic.NewClient(&cfg.Elastic, logger)
	if err != nil {
		logger.Fatal("elasticsearch connection failed", zap.Error(err))
	}

	// 4. JWT manager
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 5. Dependency injection: Store → Service → Handler
	st := store.NewStore(db, rdb, mongoDB, neoDriver, es, cfg, logger)
	svc := service.NewService(cfg, st, jwtMgr, logger)
	h := handler.NewHandler(svc)

	// 6. Router
	engine := router.Setup(cfg, h, jwtMgr, logger)

	// 7. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 8. Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	rdb.Close()
	if err := mongoClose(ctx); err != nil {
		logger.Error("mongodb disconnect failed", zap.Error(err))
	}
	if err := neoDriver.Close(ctx); err != nil {
		logger.Error("neo4j driver close failed", zap.Error(err))
	}

	logger.Info("server stopped")
}
