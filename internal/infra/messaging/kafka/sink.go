// Package kafka publishes large transfers to a Kafka topic.
//
// Delivery is at-least-once. Unlike the Postgres sink, a topic cannot ignore a
// conflicting write, so every call publishes a new message: a transaction that
// is processed again (a retried block, a restart over the same range, or a
// fan-out where another sink failed) is published again. Each record is sent as
// JSON with the transaction hash as message key, so consumers deduplicate on the
// key and partitioning keeps a transaction's messages in order.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gabapcia/transferwatch/internal/transferwatch"

	"github.com/IBM/sarama"
)

// ErrNoBrokers is returned by NewSink when the broker list is empty.
var ErrNoBrokers = errors.New("no kafka brokers configured")

type sink struct {
	topic    string
	producer sarama.SyncProducer
}

// Compile-time assertion to ensure sink implements the TransferSink interface.
var _ transferwatch.TransferSink = (*sink)(nil)

// NewSink connects a synchronous producer to brokers that publishes to topic.
// Every send waits for all in-sync replicas to acknowledge.
func NewSink(brokers []string, topic string) (*sink, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}

	cfg := sarama.NewConfig()
	cfg.ClientID = "transferwatch"
	cfg.Version = sarama.V2_1_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Retry.Backoff = 200 * time.Millisecond
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return newSink(producer, topic), nil
}

func newSink(producer sarama.SyncProducer, topic string) *sink {
	return &sink{topic: topic, producer: producer}
}

// UpsertTransfer publishes record and waits for the broker acknowledgement.
// Publishing the same record twice produces two messages with the same key.
func (s *sink) UpsertTransfer(ctx context.Context, record transferwatch.TransferRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode transfer %s: %w", record.TxHash, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(record.TxHash),
		Value: sarama.ByteEncoder(payload),
	}

	if _, _, err := s.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("publish transfer %s: %w", record.TxHash, err)
	}

	return nil
}

// Close flushes and closes the producer.
func (s *sink) Close() error {
	return s.producer.Close()
}
