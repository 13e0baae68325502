package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/you-humble/pcbuilder/internal/config"
	repository "github.com/you-humble/pcbuilder/internal/repository/part"
	"github.com/you-humble/pcbuilder/internal/transport/http/health"
	"github.com/you-humble/pcbuilder/platform/closer"
	"github.com/you-humble/pcbuilder/platform/logger"
)

type app struct {
	di     *di
	server *http.Server
}

func New(ctx context.Context) (*app, error) {
	a := &app{}

	if err := a.init(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *app) Run(ctx context.Context) error { return a.run(ctx) }

func (a *app) init(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initLogger,
		a.initCloser,
		a.initDI,
		a.initCatalog,
		a.initServer,
	}

	for _, initFn := range inits {
		if err := initFn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) initConfig(_ context.Context) error {
	return config.Load()
}

func (a *app) initLogger(_ context.Context) error {
	return logger.Init(
		config.C().Logger.Level(),
		config.C().Logger.AsJSON(),
	)
}

func (a *app) initCloser(_ context.Context) error {
	closer.SetLogger(logger.L())
	closer.AddNamed("Logger", func(context.Context) error {
		_ = logger.Sync()
		return nil
	})
	return nil
}

func (a *app) initDI(_ context.Context) error {
	a.di = NewDI()
	return nil
}

// initCatalog builds the catalog up front so a broken seed or an unreachable
// database stops startup. A mongo catalog is seeded when empty.
func (a *app) initCatalog(ctx context.Context) error {
	cfg := config.C().Catalog
	a.di.Catalog(ctx)

	if !cfg.IsMongo() || !cfg.Bootstrap() {
		logger.Info(ctx, "catalog ready", logger.String("source", cfg.Source()))
		return nil
	}

	parts, err := a.di.SeedParts(ctx)
	if err != nil {
		logger.Error(ctx, "failed to load catalog seed", logger.ErrorF(err))
		return err
	}

	if err := repository.PartsBootstrap(ctx, a.di.MongoPartRepository(ctx), parts); err != nil {
		logger.Error(ctx, "failed to bootstrap parts", logger.ErrorF(err))
		return err
	}
	return nil
}

func (a *app) initServer(ctx context.Context) error {
	cfg := config.C()

	r := a.di.Router(ctx)
	r.Use(
		middleware.Recoverer,
		middleware.Logger,
	)

	a.di.ConfiguratorHandler(ctx).Routes(r)
	r.HandleFunc("/health", health.HealthCheck)

	a.server = &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadTimeout(),
	}
	return nil
}

func (a *app) run(ctx context.Context) error {
	defer gracefulShutdown()

	eg, egCtx := errgroup.WithContext(ctx)

	if config.C().Kafka.Enabled() {
		eg.Go(func() error {
			logger.Info(egCtx,
				"🚀 build verification consumer running",
				logger.Strings("kafka_brokers", config.C().Kafka.Brokers()),
				logger.String("topic", config.C().Kafka.BuildSubmittedTopic()),
			)
			err := a.di.VerificationService(egCtx).RunConsumer(egCtx)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			return nil
		})
	}

	eg.Go(func() error {
		logger.Info(egCtx,
			"🚀 configurator server listening",
			logger.String("address", config.C().Server.Address()),
		)
		err := a.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			config.C().Server.ShutdownTimeout(),
		)
		defer cancel()

		return a.server.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	return nil
}

//nolint:contextcheck
func gracefulShutdown() {
	ctx, cancel := context.WithTimeout(
		context.Background(), // do not inherit cancellation from ctx
		config.C().Server.ShutdownTimeout(),
	)
	defer cancel()

	err := closer.CloseAll(ctx)
	if err != nil {
		logger.Error(ctx, "❌ Error during server shutdown", logger.ErrorF(err))
		logger.Error(ctx, "❌😵‍💫 Server stopped")
		return
	}
	logger.Info(ctx, "✅ Server stopped")
}
