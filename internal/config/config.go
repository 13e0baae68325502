package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	envconfig "github.com/you-humble/pcbuilder/internal/config/env"
)

var cfg *config

type config struct {
	Server  Server
	Logger  Logger
	Catalog Catalog
	Mongo   Database
	Kafka   Kafka
}

func Load(path ...string) error {
	const op = "config.Load"

	if shouldLoadDotenv() {
		if err := godotenv.Load(path...); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: load .env: %w", op, err)
		}
	}

	serverCfg, err := envconfig.NewHTTPServerConfig()
	if err != nil {
		return fmt.Errorf("%s Server: %w", op, err)
	}

	loggerCfg, err := envconfig.NewLoggerConfig()
	if err != nil {
		return fmt.Errorf("%s Logger: %w", op, err)
	}

	catalogCfg, err := envconfig.NewCatalogConfig()
	if err != nil {
		return fmt.Errorf("%s Catalog: %w", op, err)
	}

	// Mongo settings are required only when the catalog lives there.
	var mongoCfg Database
	if catalogCfg.IsMongo() {
		mongoCfg, err = envconfig.NewMongoConfig()
		if err != nil {
			return fmt.Errorf("%s Mongo: %w", op, err)
		}
	}

	kafkaCfg, err := envconfig.NewKafkaConfig()
	if err != nil {
		return fmt.Errorf("%s Kafka: %w", op, err)
	}

	cfg = &config{
		Server:  serverCfg,
		Logger:  loggerCfg,
		Catalog: catalogCfg,
		Mongo:   mongoCfg,
		Kafka:   kafkaCfg,
	}

	return nil
}

func C() *config { return cfg }

func shouldLoadDotenv() bool {
	return os.Getenv("APP_ENV") == "local"
}
