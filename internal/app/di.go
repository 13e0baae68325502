package app

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/you-humble/pcbuilder/internal/config"
	"github.com/you-humble/pcbuilder/internal/converter"
	"github.com/you-humble/pcbuilder/internal/model"
	"github.com/you-humble/pcbuilder/internal/repository/cache"
	"github.com/you-humble/pcbuilder/internal/repository/facet"
	"github.com/you-humble/pcbuilder/internal/repository/memory"
	repository "github.com/you-humble/pcbuilder/internal/repository/part"
	"github.com/you-humble/pcbuilder/internal/repository/seed"
	"github.com/you-humble/pcbuilder/internal/rules"
	"github.com/you-humble/pcbuilder/internal/service/build"
	"github.com/you-humble/pcbuilder/internal/service/candidate"
	"github.com/you-humble/pcbuilder/internal/service/validation"
	"github.com/you-humble/pcbuilder/internal/service/verification"
	thttp "github.com/you-humble/pcbuilder/internal/transport/http/configurator/v1"
	"github.com/you-humble/pcbuilder/platform/closer"
	"github.com/you-humble/pcbuilder/platform/kafka"
	"github.com/you-humble/pcbuilder/platform/kafka/consumer"
	"github.com/you-humble/pcbuilder/platform/kafka/middleware"
	"github.com/you-humble/pcbuilder/platform/kafka/producer"
	"github.com/you-humble/pcbuilder/platform/logger"
)

type PartCatalog interface {
	candidate.CatalogProvider
	build.PartLookup
}

type MongoPartRepository interface {
	PartCatalog
	repository.BatchCreator
}

type VerificationService interface {
	RunConsumer(ctx context.Context) error
}

type ConfiguratorHandler interface {
	Routes(r chi.Router)
}

type di struct {
	mongo      *mongo.Client
	collection *mongo.Collection
	mongoRepo  MongoPartRepository

	catalog PartCatalog
	facets  candidate.FacetSchemaProvider
	rules   *rules.Set

	buildService     thttp.BuildResolver
	validator        thttp.Validator
	candidateService thttp.CandidateService

	consumerGroup          sarama.ConsumerGroup
	buildSubmittedConsumer kafka.Consumer
	syncProducer           sarama.SyncProducer
	buildVerifiedProducer  kafka.Producer
	verification           VerificationService

	handler ConfiguratorHandler
	router  *chi.Mux
}

func NewDI() *di { return &di{} }

func (d *di) MongoDB(ctx context.Context) *mongo.Client {
	if d.mongo == nil {
		cfg := config.C()

		mongoClient, err := mongo.Connect(
			options.Client().ApplyURI(cfg.Mongo.DSN()),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create mongodb client: %v\n", err))
		}
		closer.AddNamed("Mongo Client",
			func(ctx context.Context) error {
				return mongoClient.Disconnect(ctx)
			})

		if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
			panic(fmt.Sprintf("failed to ping database: %v\n", err))
		}

		d.mongo = mongoClient
	}

	return d.mongo
}

func (d *di) PartsCollection(ctx context.Context) *mongo.Collection {
	if d.collection == nil {
		d.collection = d.MongoDB(ctx).
			Database(config.C().Mongo.DatabaseName()).
			Collection(config.C().Mongo.PartsCollection())

		if err := repository.EnsureIndexes(ctx, d.collection); err != nil {
			panic(fmt.Sprintf("failed to ensure indexes: %v\n", err))
		}
	}

	return d.collection
}

func (d *di) MongoPartRepository(ctx context.Context) MongoPartRepository {
	if d.mongoRepo == nil {
		d.mongoRepo = repository.NewPartRepository(d.PartsCollection(ctx))
	}

	return d.mongoRepo
}

// SeedParts loads the catalog seed, the embedded one unless a path is set.
func (d *di) SeedParts(_ context.Context) ([]*model.Part, error) {
	return seed.Load(config.C().Catalog.SeedPath())
}

func (d *di) Catalog(ctx context.Context) PartCatalog {
	if d.catalog == nil {
		if cfg := config.C().Catalog; cfg.IsMongo() {
			d.catalog = d.MongoPartRepository(ctx)
			if cfg.CacheSize() > 0 {
				d.catalog = cache.NewPartRepository(d.catalog, cfg.CacheSize(), cfg.CacheTTL())
			}
			return d.catalog
		}

		parts, err := d.SeedParts(ctx)
		if err != nil {
			panic(fmt.Sprintf("failed to load catalog seed: %v\n", err))
		}

		repo, err := memory.NewPartRepository(parts)
		if err != nil {
			panic(fmt.Sprintf("failed to build in-memory catalog: %v\n", err))
		}
		d.catalog = repo
	}

	return d.catalog
}

func (d *di) FacetSchema(_ context.Context) candidate.FacetSchemaProvider {
	if d.facets == nil {
		repo, err := facet.NewFacetRepository()
		if err != nil {
			panic(fmt.Sprintf("failed to load facet schema: %v\n", err))
		}
		d.facets = repo
	}

	return d.facets
}

func (d *di) Rules(_ context.Context) *rules.Set {
	if d.rules == nil {
		d.rules = rules.Default()
	}

	return d.rules
}

func (d *di) BuildService(ctx context.Context) thttp.BuildResolver {
	if d.buildService == nil {
		d.buildService = build.NewBuildService(
			d.Catalog(ctx),
			config.C().Server.DBReadTimeout(),
		)
	}

	return d.buildService
}

func (d *di) ValidationService(ctx context.Context) thttp.Validator {
	if d.validator == nil {
		d.validator = validation.NewValidationService(d.Rules(ctx))
	}

	return d.validator
}

func (d *di) CandidateService(ctx context.Context) thttp.CandidateService {
	if d.candidateService == nil {
		d.candidateService = candidate.NewCandidateService(
			d.Catalog(ctx),
			d.FacetSchema(ctx),
			d.Rules(ctx),
			config.C().Server.DBReadTimeout(),
		)
	}

	return d.candidateService
}

func (d *di) ConsumerGroup(_ context.Context) sarama.ConsumerGroup {
	if d.consumerGroup == nil {
		cfg := config.C()

		consumerGroup, err := sarama.NewConsumerGroup(
			cfg.Kafka.Brokers(),
			cfg.Kafka.ConsumerGroupID(),
			cfg.Kafka.BuildSubmittedConsumerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create consumer group: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka consumer group", func(ctx context.Context) error {
			return consumerGroup.Close()
		})

		d.consumerGroup = consumerGroup
	}

	return d.consumerGroup
}

func (d *di) BuildSubmittedConsumer(ctx context.Context) kafka.Consumer {
	if d.buildSubmittedConsumer == nil {
		d.buildSubmittedConsumer = consumer.NewConsumer(
			d.ConsumerGroup(ctx),
			[]string{
				config.C().Kafka.BuildSubmittedTopic(),
			},
			logger.L(),
			middleware.Recovery(logger.L()),
			middleware.Logging(logger.L()),
		)
	}

	return d.buildSubmittedConsumer
}

func (d *di) SyncProducer(_ context.Context) sarama.SyncProducer {
	if d.syncProducer == nil {
		cfg := config.C()

		p, err := sarama.NewSyncProducer(
			cfg.Kafka.Brokers(),
			cfg.Kafka.BuildVerifiedProducerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create sync producer: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka sync producer", func(ctx context.Context) error {
			return p.Close()
		})

		d.syncProducer = p
	}

	return d.syncProducer
}

func (d *di) BuildVerifiedProducer(ctx context.Context) kafka.Producer {
	if d.buildVerifiedProducer == nil {
		d.buildVerifiedProducer = producer.NewProducer(
			d.SyncProducer(ctx),
			config.C().Kafka.BuildVerifiedTopic(),
			logger.L(),
			producer.WithHeader(kafka.HeaderContentType, "application/json"),
		)
	}

	return d.buildVerifiedProducer
}

func (d *di) VerificationService(ctx context.Context) VerificationService {
	if d.verification == nil {
		d.verification = verification.NewVerificationService(
			d.BuildSubmittedConsumer(ctx),
			d.BuildVerifiedProducer(ctx),
			converter.NewKafkaConverter(),
			d.BuildService(ctx),
			d.ValidationService(ctx),
		)
	}

	return d.verification
}

func (d *di) ConfiguratorHandler(ctx context.Context) ConfiguratorHandler {
	if d.handler == nil {
		d.handler = thttp.NewConfiguratorHandler(
			d.BuildService(ctx),
			d.ValidationService(ctx),
			d.CandidateService(ctx),
		)
	}

	return d.handler
}

func (d *di) Router(_ context.Context) *chi.Mux {
	if d.router == nil {
		d.router = chi.NewRouter()
	}

	return d.router
}
