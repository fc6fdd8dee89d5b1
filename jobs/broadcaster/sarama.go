package broadcaster

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/cockroachdb/errors"
)

// SaramaPublisher publishes through a sarama SyncProducer. All messages go
// to partition 0 to keep ledger order.
type SaramaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewSaramaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Partitioner = sarama.NewManualPartitioner
	return cfg
}

func NewSarama(brokers []string, topic string) (*SaramaPublisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewSaramaConfig())
	if err != nil {
		return nil, errors.Wrap(err, "sarama: connect")
	}
	return NewSaramaFromProducer(producer, topic), nil
}

// NewSaramaFromProducer wraps an existing producer, which must report
// successes.
func NewSaramaFromProducer(producer sarama.SyncProducer, topic string) *SaramaPublisher {
	return &SaramaPublisher{producer: producer, topic: topic}
}

// Publish ignores ctx: a SyncProducer call cannot be abandoned. Its own
// retry and timeout settings bound it.
func (s *SaramaPublisher) Publish(_ context.Context, key, value []byte) error {
	_, _, err := s.producer.SendMessage(&sarama.ProducerMessage{
		Topic:     s.topic,
		Partition: 0,
		Key:       sarama.ByteEncoder(key),
		Value:     sarama.ByteEncoder(value),
	})
	return errors.Wrapf(err, "sarama: send to %s", s.topic)
}

func (s *SaramaPublisher) Close() error {
	return s.producer.Close()
}
