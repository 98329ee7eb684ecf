package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/combet/combet-server/internal/feed-worker/pubsub"
	skafka "github.com/combet/combet-server/internal/shared/kafka"
	"github.com/combet/combet-server/pkg/contracts/events"
)

// Recipients resolve quem deve receber um evento de feed
type Recipients interface {
	CircleRecipients(ctx context.Context, circleID, actorID string) ([]string, error)
}

// Broadcaster publica os pushes resolvidos (Redis Pub/Sub)
type Broadcaster interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Processor consome eventos de feed do Kafka, resolve a audiência no banco
// e publica um push por destinatário no canal do WebSocket.
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa
type Processor struct {
	Log         *zap.Logger
	Reader      *kafka.Reader
	Repo        Recipients
	Broadcaster Broadcaster
	Channel     string

	OnConsumed  func()       // métricas (counter++)
	OnPublished func()       // métricas
	OnError     func(string) // métricas por fase
}

// Run inicia o loop principal de consumo e fan-out dos eventos
func (p *Processor) Run(ctx context.Context) error {
	for {
		_, value, err := skafka.ReadNext(ctx, p.Reader)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("read")
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if p.OnConsumed != nil {
			p.OnConsumed()
		}

		var ev events.FeedEvent
		if err := json.Unmarshal(value, &ev); err != nil {
			p.Log.Warn("invalid message", zap.Error(err))
			if p.OnError != nil {
				p.OnError("decode")
			}
			continue
		}

		recipients, payload, err := p.resolve(ctx, ev)
		if err != nil {
			p.Log.Warn("resolve recipients failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("resolve")
			}
			continue
		}

		for _, userID := range recipients {
			push := pubsub.FeedPush{UserID: userID, Kind: ev.Kind, Payload: payload}
			b, _ := json.Marshal(push)
			if err := p.Broadcaster.Publish(ctx, p.Channel, b); err != nil {
				p.Log.Warn("pubsub publish failed", zap.Error(err))
				if p.OnError != nil {
					p.OnError("publish")
				}
				continue
			}
			if p.OnPublished != nil {
				p.OnPublished()
			}
		}
	}
}

// resolve devolve os userIDs alvo do evento e o payload repassado ao cliente
func (p *Processor) resolve(ctx context.Context, ev events.FeedEvent) ([]string, json.RawMessage, error) {
	switch ev.Kind {
	case events.KindBetCreated:
		if ev.Bet == nil {
			return nil, nil, nil
		}
		payload, _ := json.Marshal(ev.Bet)
		if ev.Bet.TargetType == "user" {
			return []string{ev.Bet.TargetID}, payload, nil
		}
		recipients, err := p.Repo.CircleRecipients(ctx, ev.Bet.TargetID, ev.Bet.CreatorID)
		return recipients, payload, err

	case events.KindInviteCreated:
		if ev.Invite == nil {
			return nil, nil, nil
		}
		payload, _ := json.Marshal(ev.Invite)
		return []string{ev.Invite.InviteeID}, payload, nil
	}

	return nil, nil, nil
}
