package producer

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

type Option func(*producer)

// WithHeader adds a static header to every message.
func WithHeader(key, value string) Option {
	return func(p *producer) {
		p.headers = append(p.headers, sarama.RecordHeader{Key: []byte(key), Value: []byte(value)})
	}
}

type producer struct {
	syncProducer sarama.SyncProducer
	topic        string
	headers      []sarama.RecordHeader
	logger       Logger
}

func NewProducer(syncProducer sarama.SyncProducer, topic string, logger Logger, opts ...Option) *producer {
	p := &producer{
		syncProducer: syncProducer,
		topic:        topic,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Send publishes value under key. An empty key leaves partitioning to the
// partitioner.
func (p *producer) Send(ctx context.Context, key, value []byte) error {
	msg := &sarama.ProducerMessage{
		Topic:   p.topic,
		Value:   sarama.ByteEncoder(value),
		Headers: p.headers,
	}
	if len(key) > 0 {
		msg.Key = sarama.ByteEncoder(key)
	}

	partition, offset, err := p.syncProducer.SendMessage(msg)
	if err != nil {
		p.logger.Error(ctx, "failed to send message",
			zap.String("topic", p.topic),
			zap.String("key", string(key)),
			zap.Error(err),
		)
		return fmt.Errorf("kafka.producer.Send %s: %w", p.topic, err)
	}

	p.logger.Info(ctx, "message sent",
		zap.String("topic", p.topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
		zap.String("key", string(key)),
		zap.Int("value_bytes", len(value)),
	)

	return nil
}

// SyncProducerConfig is the sarama config used by every sync producer of
// the service.
func SyncProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3

	return config
}
