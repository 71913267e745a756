package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Kafka holds the event-log settings shared by every service binary.
// Embed it in the binary's Cfg struct and call Load on the whole thing.
type Kafka struct {
	Brokers      string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	BookingTopic string `envconfig:"KAFKA_BOOKING_TOPIC" default:"booking"`
	StatusTopic  string `envconfig:"KAFKA_STATUS_TOPIC" default:"booking-status"`
}

// BrokerList splits the comma-separated broker string.
func (k Kafka) BrokerList() []string {
	var out []string
	for _, p := range strings.Split(k.Brokers, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Load(cfg any) error {
	return envconfig.Process("", cfg)
}
