package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	apihttp "github.com/combet/combet-server/internal/combet-api/http"
	kpub "github.com/combet/combet-server/internal/combet-api/producer"
	"github.com/combet/combet-server/internal/combet-api/repo"
	"github.com/combet/combet-server/internal/combet-api/session"
	"github.com/combet/combet-server/internal/combet-api/ws"
	"github.com/combet/combet-server/internal/shared/cache"
	"github.com/combet/combet-server/internal/shared/config"
	"github.com/combet/combet-server/internal/shared/db"
	skafka "github.com/combet/combet-server/internal/shared/kafka"
	"github.com/combet/combet-server/internal/shared/logger"
	"github.com/combet/combet-server/internal/shared/metrics"
	"github.com/combet/combet-server/internal/shared/migrations"
)

func main() {
	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	// Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	if err := migrations.Apply(context.Background(), pg); err != nil {
		log.Fatal("migrations", zap.Error(err))
	}

	// Redis (sessões + pubsub do feed ao vivo)
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	// Kafka writer (tópico feed_events)
	writer := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicFeedEvents)
	defer writer.Close()

	// deps
	repository := repo.NewPostgres(pg)
	sessions := session.NewRedisStore(rdb)
	publ := kpub.NewKafkaPublisher(writer)

	hub := ws.NewHub(func(r *http.Request) bool { return true })
	ws.StartRedisSubscriber(context.Background(), rdb, cfg.RedisPubSubChannel, hub)

	// metrics/health
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return rdb.Ping(ctx).Err()
	})

	// HTTP público
	api := apihttp.NewServer(log, repository, sessions, publ, hub)
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: api.Router(),
	}

	log.Info("combet-api listening", zap.String("addr", apiSrv.Addr))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
