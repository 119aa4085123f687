// Package kafka streams audit events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "tailscan/pkg/platform/audit"
)

// Producer is the subset of *kgo.Client the sink needs.
type Producer interface {
	Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
}

// Sink implements audit.Store by producing one JSON record per event, keyed
// by tail number so events for one aircraft stay ordered.
type Sink struct {
	producer Producer
	topic    string
	logger   *slog.Logger
}

// New creates a Kafka audit sink.
func New(producer Producer, topic string, logger *slog.Logger) (*Sink, error) {
	if producer == nil {
		return nil, fmt.Errorf("kafka producer is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("audit topic is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{producer: producer, topic: topic, logger: logger}, nil
}

// Append enqueues the record and returns once it is buffered by the client.
// Delivery failures are reported through the logger.
func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.TailNumber),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "action", Value: []byte(event.Action)},
			{Key: "category", Value: []byte(event.Category)},
		},
	}
	// the produce context must outlive the request
	s.producer.Produce(context.WithoutCancel(ctx), record, func(r *kgo.Record, err error) {
		if err != nil {
			s.logger.Error("failed to deliver audit event",
				"topic", r.Topic,
				"action", event.Action,
				"tail_number", event.TailNumber,
				"error", err,
			)
		}
	})
	return nil
}
