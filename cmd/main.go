package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JMURv/session-guard/internal/audit"
	"github.com/JMURv/session-guard/internal/auth"
	"github.com/JMURv/session-guard/internal/cache/noop"
	"github.com/JMURv/session-guard/internal/cache/redis"
	"github.com/JMURv/session-guard/internal/config"
	"github.com/JMURv/session-guard/internal/ctrl"
	"github.com/JMURv/session-guard/internal/hdl/grpc"
	"github.com/JMURv/session-guard/internal/hdl/http"
	mid "github.com/JMURv/session-guard/internal/hdl/http/middleware"
	"github.com/JMURv/session-guard/internal/observability/metrics/prometheus"
	"github.com/JMURv/session-guard/internal/observability/tracing/jaeger"
	"github.com/JMURv/session-guard/internal/presence"
	"github.com/JMURv/session-guard/internal/repo/db"
	"github.com/JMURv/session-guard/internal/repo/memory"
	"github.com/JMURv/session-guard/internal/smtp"
	"go.uber.org/zap"
)

const configPath = "configs/local.config.yaml"

type repository interface {
	ctrl.AppRepo
	Close(ctx context.Context) error
}

type cacheService interface {
	ctrl.CacheService
	mid.Limiter
}

func mustRegisterLogger(mode string) {
	switch mode {
	case "prod":
		zap.ReplaceGlobals(zap.Must(zap.NewProduction()))
	case "dev":
		zap.ReplaceGlobals(zap.Must(zap.NewDevelopment()))
	}
}

func mustRegisterRepo(conf config.Config) repository {
	switch conf.DB.Driver {
	case "memory":
		zap.L().Warn("using in-memory storage, sessions will not survive a restart")
		return memory.New()
	default:
		return db.New(conf)
	}
}

func main() {
	defer func() {
		if err := recover(); err != nil {
			zap.L().Panic("panic occurred", zap.Any("error", err))
			os.Exit(1)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conf := config.MustLoad(configPath)
	mustRegisterLogger(conf.Server.Mode)

	go prometheus.New(conf.Server.Port + 5).Start(ctx)
	go jaeger.Start(ctx, conf.ServiceName, conf.Jaeger)

	repo := mustRegisterRepo(conf)

	var cache cacheService = noop.New()
	var notifier presence.Notifier = presence.NoOp{}
	if conf.Redis.Enabled {
		rc := redis.New(conf.Redis)
		cache = rc
		notifier = presence.NewRedis(rc.Client())
	}

	sinks := audit.Multi{audit.LogSink{}}
	if conf.Audit.Persist {
		sinks = append(sinks, audit.NewStoreSink(repo, conf.Auth.StoreTimeout))
	}
	dispatcher := audit.NewDispatcher(conf.Audit, sinks)

	opts := []ctrl.Option{
		ctrl.WithAudit(dispatcher),
		ctrl.WithPresence(notifier),
	}
	if conf.Email.Enabled {
		opts = append(opts, ctrl.WithMailer(smtp.New(conf)))
	}

	au := auth.New(conf)
	svc := ctrl.New(au, repo, cache, conf, opts...)

	hh := http.New(au, svc, cache, conf)
	gh := grpc.New(conf.ServiceName, au, svc)

	zap.L().Info(
		fmt.Sprintf(
			"Starting server on %v://%v:%v",
			conf.Server.Scheme,
			conf.Server.Domain,
			conf.Server.Port,
		),
	)
	go hh.Start(conf.Server.Port)
	if conf.Server.GRPCPort > 0 {
		go gh.Start(conf.Server.GRPCPort)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-c

	zap.L().Info("Shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := hh.Close(shutdownCtx); err != nil {
		zap.L().Warn("Error closing http handler", zap.Error(err))
	}

	if err := gh.Close(); err != nil {
		zap.L().Warn("Error closing grpc handler", zap.Error(err))
	}

	if err := dispatcher.Close(); err != nil {
		zap.L().Warn("Error draining audit events", zap.Error(err))
	}
	if n := dispatcher.Dropped(); n > 0 {
		zap.L().Warn("Audit events dropped", zap.Uint64("count", n))
	}

	if err := cache.Close(); err != nil {
		zap.L().Warn("Failed to close connection to Redis: ", zap.Error(err))
	}

	if err := repo.Close(shutdownCtx); err != nil {
		zap.L().Warn("Error closing repository", zap.Error(err))
	}

	cancel()
	os.Exit(0)
}
