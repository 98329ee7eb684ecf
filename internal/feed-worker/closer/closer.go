package closer

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// BetCloser fecha apostas vencidas
type BetCloser interface {
	CloseExpiredBets(ctx context.Context) (int64, error)
}

// Schedule registra o job de fechamento no cron e devolve o scheduler
// já iniciado. Roda a cada minuto
func Schedule(log *zap.Logger, repo BetCloser) *cron.Cron {
	c := cron.New()
	_, _ = c.AddFunc("@every 1m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		n, err := repo.CloseExpiredBets(ctx)
		if err != nil {
			log.Warn("close expired bets failed", zap.Error(err))
			return
		}
		if n > 0 {
			log.Info("bets closed", zap.Int64("count", n))
		}
	})
	c.Start()
	return c
}
