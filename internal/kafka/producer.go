package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sellerhub/market-mock-api/internal/model"
)

type Config struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration // default 200ms
	WriteTimeout time.Duration // default 5s
}

// Publisher is a thin wrapper around segmentio/kafka-go Writer. Generated
// mock orders are published for downstream ETL consumers.
type Publisher struct {
	w *kafka.Writer
}

func NewPublisherFromConfig(c Config) *Publisher {
	bt := c.BatchTimeout
	if bt <= 0 {
		bt = 200 * time.Millisecond
	}
	wt := c.WriteTimeout
	if wt <= 0 {
		wt = 5 * time.Second
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(c.Brokers...),
		Topic:                  c.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           bt,
		WriteTimeout:           wt,
		AllowAutoTopicCreation: true,
	}

	return &Publisher{w: w}
}

// PublishOrderEvents writes one message per event, keyed by platform so a
// platform's events stay ordered within a partition.
func (p *Publisher) PublishOrderEvents(ctx context.Context, events []model.OrderEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		b, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(ev.Platform.String()),
			Value: b,
		})
	}

	return p.w.WriteMessages(ctx, msgs...)
}

func (p *Publisher) Close() error {
	return p.w.Close()
}
