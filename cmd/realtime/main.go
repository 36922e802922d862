package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/skillswap/realtime-service/internal/api"
	"github.com/skillswap/realtime-service/internal/cache"
	"github.com/skillswap/realtime-service/internal/config"
	"github.com/skillswap/realtime-service/internal/events"
	"github.com/skillswap/realtime-service/internal/hub"
	"github.com/skillswap/realtime-service/internal/logger"
	"github.com/skillswap/realtime-service/internal/metrics"
	"github.com/skillswap/realtime-service/internal/repository"
	"github.com/skillswap/realtime-service/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	zlog, err := logger.New(cfg.App.Env == "development")
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx := context.Background()

	mongoClient, err := repository.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		zlog.Fatalw("mongo connect", "err", err)
	}
	repo := repository.NewExchangeRepository(mongoClient.Database(cfg.Mongo.Database))

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		cancel()
		zlog.Fatalw("redis ping", "err", err)
	}
	cancel()
	displays := cache.NewDisplayCache(rdb, repo, cfg.DisplayTTL)

	producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicMessageSent)

	m := metrics.New()
	presence := hub.NewPresence()
	rooms := hub.NewRooms(m)
	relay := hub.NewRelay(repo, displays, rooms, producer, m, zlog)
	signaler := hub.NewSignaler(presence, m, zlog)
	gateway := ws.NewGateway(presence, rooms, relay, signaler, m, cfg, zlog)

	app := api.NewServer(cfg, gateway, repo, zlog)

	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler: m.Handler(),
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Errorw("metrics server", "err", err)
		}
	}()

	errs := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		zlog.Infow("realtime service listening", "addr", addr)
		errs <- app.Listen(addr)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errs:
		zlog.Fatalw("server error", "err", err)
	case s := <-sig:
		zlog.Infow("signal received", "signal", s.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Shutdown(); err != nil {
		zlog.Warnw("fiber shutdown", "err", err)
	}
	_ = metricsSrv.Shutdown(shutdownCtx)
	if err := producer.Close(); err != nil {
		zlog.Warnw("kafka close", "err", err)
	}
	if err := rdb.Close(); err != nil {
		zlog.Warnw("redis close", "err", err)
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		zlog.Warnw("mongo disconnect", "err", err)
	}
	zlog.Info("shutdown complete")
}
