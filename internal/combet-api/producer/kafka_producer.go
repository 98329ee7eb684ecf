package producer

import (
	"context"
	"encoding/json"
	"time"

	skafka "github.com/combet/combet-server/internal/shared/kafka"
	"github.com/combet/combet-server/pkg/contracts/events"
)

type KafkaPublisher struct {
	Writer *skafka.Writer
}

func NewKafkaPublisher(w *skafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: w}
}

func (p *KafkaPublisher) PublishFeedEvent(ctx context.Context, e events.FeedEvent) error {
	if e.TsUnixMs == 0 {
		e.TsUnixMs = time.Now().UnixMilli()
	}
	b, _ := json.Marshal(e)
	return skafka.WriteJSON(ctx, p.Writer, e.Kind, b)
}
