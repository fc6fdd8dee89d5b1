// Package kafka is the segmentio/kafka-go driver for the pre-block mirror.
package kafka

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/segmentio/kafka-go"
)

// Producer writes keyed messages to one topic, waiting for all in-sync
// replicas. Every message goes to the topic's first partition, so consumers
// see pre-blocks in ledger order.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     firstPartition,
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

var firstPartition = kafka.BalancerFunc(func(_ kafka.Message, partitions ...int) int {
	if len(partitions) == 0 {
		return 0
	}
	return partitions[0]
})

// Publish blocks until the message is acknowledged.
func (p *Producer) Publish(ctx context.Context, key, value []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
	return errors.Wrapf(err, "kafka-go: write to %s", p.writer.Topic)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
