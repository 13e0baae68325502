package producer

import (
	"context"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

type Option func(*producer)

// WithHeader attaches a static header to every message sent by the producer.
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

func (p *producer) Send(ctx context.Context, key, value []byte) error {
	partition, offset, err := p.syncProducer.SendMessage(&sarama.ProducerMessage{
		Topic:   p.topic,
		Key:     sarama.ByteEncoder(key),
		Value:   sarama.ByteEncoder(value),
		Headers: p.headers,
	})
	if err != nil {
		p.logger.Error(ctx, "Failed to send message",
			zap.String("topic", p.topic),
			zap.Error(err),
		)
		return err
	}

	p.logger.Info(ctx, "Message sent",
		zap.String("topic", p.topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
		zap.String("key", string(key)),
		zap.Int("value_bytes", len(value)),
	)

	return nil
}
