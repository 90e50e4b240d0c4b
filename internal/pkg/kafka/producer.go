package kafka

import (
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"dispatch/pkg/logger"
)

// Producer — тонкая обёртка над sarama.SyncProducer для push-уведомлений.
type Producer struct {
	log      logger.Logger
	producer sarama.SyncProducer
}

func NewProducer(log logger.Logger, brokers []string, versionStr string) (*Producer, error) {
	cfg := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", versionStr, err)
	}
	cfg.Version = version

	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Retry.Backoff = 100 * time.Millisecond
	cfg.Producer.Return.Successes = true // обязательно для SyncProducer

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create sync producer: %w", err)
	}

	return &Producer{
		log: log.With(
			logger.NewField("brokers", brokers),
		),
		producer: producer,
	}, nil
}

func (p *Producer) Send(topic, key string, value []byte) error {
	_, _, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("send message to topic %s: %w", topic, err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
