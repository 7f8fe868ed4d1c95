package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"wallet-topup-service/config"
	"wallet-topup-service/internal/core/domain"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
)

// Publisher emits applied top-up events to a Kafka topic so downstream
// consumers (notifications, analytics) can react without polling the ledger.
// Messages are keyed by userId, keeping one user's events in partition order.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	log      zerolog.Logger
}

// NewPublisher wraps an existing producer. Used directly by tests with a mock
// producer.
func NewPublisher(producer sarama.SyncProducer, topic string, log zerolog.Logger) *Publisher {
	return &Publisher{producer: producer, topic: topic, log: log}
}

// NewSyncProducer connects a synchronous producer with delivery confirmation
// enabled, as required by sarama for SyncProducer.
func NewSyncProducer(cfg config.KafkaConfig) (sarama.SyncProducer, error) {
	sc := sarama.NewConfig()
	sc.Producer.Return.Successes = true
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("connecting kafka producer: %w", err)
	}
	return producer, nil
}

// PublishTopupApplied sends the stored ledger record as a JSON event.
func (p *Publisher) PublishTopupApplied(_ context.Context, txn *domain.Transaction) error {
	value, err := json.Marshal(txn)
	if err != nil {
		return fmt.Errorf("marshal topup event: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(txn.UserID),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("publish topup event: %w", err)
	}

	p.log.Debug().
		Str("topic", p.topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Str("transactionId", txn.TransactionID).
		Msg("Topup event published")
	return nil
}

// Close releases the underlying producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
