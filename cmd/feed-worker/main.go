package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/combet/combet-server/internal/feed-worker/closer"
	"github.com/combet/combet-server/internal/feed-worker/consumer"
	"github.com/combet/combet-server/internal/feed-worker/pubsub"
	"github.com/combet/combet-server/internal/feed-worker/repo"
	"github.com/combet/combet-server/internal/shared/cache"
	"github.com/combet/combet-server/internal/shared/config"
	"github.com/combet/combet-server/internal/shared/db"
	skafka "github.com/combet/combet-server/internal/shared/kafka"
	"github.com/combet/combet-server/internal/shared/logger"
	"github.com/combet/combet-server/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Inicializa dependências: Postgres e Redis
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer rdb.Close()

	repository := repo.NewPostgres(pg)

	// Consumer Kafka (consumer group feed-worker)
	reader := skafka.NewReader(cfg.KafkaBrokers, cfg.TopicFeedEvents, "feed-worker")
	defer reader.Close()

	// Métricas Prometheus para monitoramento do fan-out
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "feed_worker_events_consumed_total", Help: "eventos consumidos"})
	published := prometheus.NewCounter(prometheus.CounterOpts{Name: "feed_worker_pushes_published_total", Help: "pushes publicados no pubsub"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "feed_worker_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, published, errorsBy)

	broadcaster := pubsub.NewRedisBroadcaster(rdb)

	proc := &consumer.Processor{
		Log:         log,
		Reader:      reader,
		Repo:        repository,
		Broadcaster: broadcaster,
		Channel:     cfg.RedisPubSubChannel,

		OnConsumed:  func() { consumed.Inc() },
		OnPublished: func() { published.Inc() },
		OnError:     func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	// Fechamento periódico de apostas vencidas
	cr := closer.Schedule(log, repository)
	defer cr.Stop()

	// Servidor HTTP para métricas e health check
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return rdb.Ping(ctx).Err()
	})

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("feed-worker started")
	if err := proc.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("processor stopped with error", zap.Error(err))
	}
	log.Info("feed-worker stopped")
}
