package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerList(t *testing.T) {
	assert.Equal(t, []string{"a:9092"}, Kafka{Brokers: "a:9092"}.BrokerList())
	assert.Equal(t, []string{"a:9092", "b:9092"}, Kafka{Brokers: "a:9092, b:9092"}.BrokerList())
	assert.Nil(t, Kafka{Brokers: " , "}.BrokerList())
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	var cfg struct {
		Kafka Kafka
	}
	require.NoError(t, Load(&cfg))
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.BrokerList())
	assert.Equal(t, "booking", cfg.Kafka.BookingTopic)
	assert.Equal(t, "booking-status", cfg.Kafka.StatusTopic)
}
