package config

import (
	"time"

	"github.com/IBM/sarama"
)

type Server interface {
	Host() string
	Port() int
	Address() string
	ReadTimeout() time.Duration
	ShutdownTimeout() time.Duration
	DBReadTimeout() time.Duration
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type Catalog interface {
	Source() string
	IsMongo() bool
	Bootstrap() bool
	SeedPath() string
	CacheSize() int
	CacheTTL() time.Duration
}

type Database interface {
	DSN() string
	DatabaseName() string
	PartsCollection() string
}

type Kafka interface {
	Enabled() bool
	Brokers() []string
	BuildSubmittedTopic() string
	BuildVerifiedTopic() string
	ConsumerGroupID() string
	BuildSubmittedConsumerConfig() *sarama.Config
	BuildVerifiedProducerConfig() *sarama.Config
}
