package kafka

import (
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "pre-blocks")
	require.Equal(t, "pre-blocks", p.writer.Topic)
	require.Equal(t, kafka.RequireAll, p.writer.RequiredAcks)
	require.False(t, p.writer.Async)
	require.NoError(t, p.Close())
}

func TestFirstPartition(t *testing.T) {
	require.Equal(t, 3, firstPartition.Balance(kafka.Message{}, 3, 4, 5))
	require.Equal(t, 0, firstPartition.Balance(kafka.Message{}))
}
