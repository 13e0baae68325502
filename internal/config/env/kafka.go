package envconfig

import (
	"errors"

	"github.com/IBM/sarama"
	"github.com/caarlos0/env/v11"
)

type kafkaEnv struct {
	Enabled                 bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	Brokers                 []string `env:"KAFKA_BROKERS"`
	BuildSubmittedTopicName string   `env:"BUILD_SUBMITTED_TOPIC_NAME" envDefault:"build.submitted"`
	BuildVerifiedTopicName  string   `env:"BUILD_VERIFIED_TOPIC_NAME" envDefault:"build.verified"`
	ConsumerGroupID         string   `env:"BUILD_SUBMITTED_CONSUMER_GROUP_ID" envDefault:"pcbuilder-configurator"`
}

type kafka struct {
	raw kafkaEnv
}

func NewKafkaConfig() (*kafka, error) {
	var raw kafkaEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	if raw.Enabled && len(raw.Brokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	return &kafka{raw: raw}, nil
}

func (cfg *kafka) Enabled() bool               { return cfg.raw.Enabled }
func (cfg *kafka) Brokers() []string           { return cfg.raw.Brokers }
func (cfg *kafka) BuildSubmittedTopic() string { return cfg.raw.BuildSubmittedTopicName }
func (cfg *kafka) BuildVerifiedTopic() string  { return cfg.raw.BuildVerifiedTopicName }
func (cfg *kafka) ConsumerGroupID() string     { return cfg.raw.ConsumerGroupID }

func (cfg *kafka) BuildSubmittedConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	return config
}

func (cfg *kafka) BuildVerifiedProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	return config
}
