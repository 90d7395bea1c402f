package config

import (
	"strings"

	"github.com/segmentio/kafka-go"
)

func (c *Config) kafkaBrokerURLs() []string {
	return strings.Split(c.KafkaBrokers, ",")
}

// NewKafkaWriter builds a writer for the given topic.
func (c *Config) NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(c.kafkaBrokerURLs()...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaReader builds a consumer-group reader for the given topic.
func (c *Config) NewKafkaReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  c.kafkaBrokerURLs(),
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
}
