package kafka_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gradinghub/pkg/kafka"
)

func TestNewProducer(t *testing.T) {
	t.Run("requires at least one broker", func(t *testing.T) {
		_, err := kafka.NewProducer(kafka.Config{})
		require.Error(t, err)
	})

	t.Run("builds a writer without dialing", func(t *testing.T) {
		producer, err := kafka.NewProducer(kafka.Config{Brokers: []string{"localhost:9092"}})
		require.NoError(t, err)
		require.NotNil(t, producer)
		require.NoError(t, producer.Close())
	})
}
