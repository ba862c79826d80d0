package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"fabric-ledger/internal/accounting"
	"fabric-ledger/internal/aggregators"
	"fabric-ledger/internal/catalogs"
	"fabric-ledger/internal/correlation"
	"fabric-ledger/internal/events"
	"fabric-ledger/internal/fabric"
	internalhttp "fabric-ledger/internal/http"
	"fabric-ledger/internal/ingestors"
	"fabric-ledger/internal/shared/configs"
	"fabric-ledger/internal/shared/filestorages"
	"fabric-ledger/internal/shared/loggers"
	"fabric-ledger/internal/shared/tracing"
	"fabric-ledger/internal/stores"
	"fabric-ledger/internal/streams"
	"fabric-ledger/internal/supervisors"
)

const appName = "fabric-ledger"

// Option customizes App construction.
type Option func(*options)

type options struct {
	logOutput io.Writer
}

// WithLogOutput sends application logs to w instead of stdout.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) {
		o.logOutput = w
	}
}

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	logChannel  streams.LogChannel
	fabric      *fabric.LocalFabric
	supervisor  supervisors.InvocationSupervisor
	accountant  accounting.CostAccountingEngine
	unsubscribe func()

	shutdownTracing  func()
	startOnce        sync.Once
	backgroundCtx    context.Context
	backgroundCancel context.CancelFunc
}

// New creates and initializes a new App instance.
func New(config *configs.Config, opts ...Option) (*App, error) {
	o := &options{logOutput: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	appLogger, err := loggers.NewWithWriter(config.Log.Level, o.logOutput)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, appName).
		Logger()

	tracer, shutdownTracing, err := tracing.Init(context.Background(), config.Tracing)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	// Initialize blob store
	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		shutdownTracing()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize metering and accounting
	catalog, err := catalogs.NewMetricCatalogFromConfig(config.Catalog.Metrics)
	if err != nil {
		shutdownTracing()
		return nil, fmt.Errorf("failed to initialize metric catalog: %w", err)
	}
	aggregator := aggregators.NewUsageAggregator(catalog)
	collector, err := aggregators.NewUsageCollector(catalog, aggregator, aggregators.BindingsFromConfig(config.UsageBindings))
	if err != nil {
		shutdownTracing()
		return nil, fmt.Errorf("failed to initialize usage collector: %w", err)
	}
	accountant := accounting.NewCostAccountingEngine(catalog, aggregator)

	// Initialize log channel and correlation
	matcher, err := correlation.NewRegexTokenMatcher(config.Correlation.TokenPattern)
	if err != nil {
		shutdownTracing()
		return nil, fmt.Errorf("failed to initialize token matcher: %w", err)
	}
	correlator := correlation.NewLogCorrelationEngine(matcher,
		correlation.AnomalyPolicy(config.Correlation.AnomalyPolicy),
		correlation.WithUntaggedPolicy(correlation.UntaggedPolicy(config.Correlation.UntaggedRecords)))

	channelLogger := appLogger.With().Str(loggers.FieldComponent, "log_channel").Logger()
	logQueue := streams.NewPartitionedQueue[events.LogRecord](config.Channel.Partitions, config.Channel.Buffer)
	logChannel := streams.NewLogChannel(logQueue, channelLogger)
	unsubscribe := logChannel.Subscribe(correlator.HandleRecord)

	// Initialize execution fabric
	fab, err := newLocalFabric(config.Fabric, tracer)
	if err != nil {
		unsubscribe()
		shutdownTracing()
		return nil, err
	}
	fab.AttachLogger(logChannel)

	// Initialize supervisor
	supervisorOpts := []supervisors.Option{
		supervisors.WithMaxConcurrency(config.Supervisor.MaxConcurrency),
		supervisors.WithAwaitTimeout(time.Duration(config.Correlation.AwaitTimeoutMs) * time.Millisecond),
		supervisors.WithLogDrain(logChannel),
	}
	if config.Fabric.StartupProbe {
		probe := fabric.NewInvokeProbe(fab, config.Fabric.Function, fabric.StartupMarker)
		supervisorOpts = append(supervisorOpts, supervisors.WithStartupProbe(probe))
	}
	var reportStore stores.CostReportStore
	if config.Supervisor.PersistReports {
		reportStore = stores.NewCostReportStore(fileStorage)
		supervisorOpts = append(supervisorOpts, supervisors.WithReportStore(reportStore))
	}
	supervisor := supervisors.NewInvocationSupervisor(fab, correlator, collector, accountant, tracer, supervisorOpts...)

	// Initialize ingestion
	batchStore := stores.NewLogBatchStore(fileStorage)
	ingestionService := ingestors.NewIngestionService(batchStore, logChannel)
	usageIngestionService := ingestors.NewUsageIngestionService(catalog, aggregator)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(internalhttp.RouterDeps{
		IngestionService:      ingestionService,
		UsageIngestionService: usageIngestionService,
		Accountant:            accountant,
		Supervisor:            supervisor,
		ReportStore:           reportStore,
		DefaultInvocations:    config.Supervisor.DefaultInvocations,
	}, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:          config,
		appLogger:       appLogger,
		server:          server,
		logChannel:      logChannel,
		fabric:          fab,
		supervisor:      supervisor,
		accountant:      accountant,
		unsubscribe:     unsubscribe,
		shutdownTracing: shutdownTracing,
	}, nil
}

func newLocalFabric(cfg configs.FabricConfig, tracer tracing.Tracer) (*fabric.LocalFabric, error) {
	fabricOpts := []fabric.Option{
		fabric.WithBillingGranularity(time.Duration(cfg.BillingGranularityMs) * time.Millisecond),
	}
	if cfg.RedeliveryRate > 0 {
		fabricOpts = append(fabricOpts, fabric.WithRedeliveryRate(cfg.RedeliveryRate, cfg.RedeliverySeed))
	}
	fab := fabric.NewLocalFabric(tracer, fabricOpts...)

	handler := fabric.EchoTokenFunction(
		time.Duration(cfg.MinLatencyMs)*time.Millisecond,
		time.Duration(cfg.JitterMs)*time.Millisecond,
	)
	if err := fab.Register(cfg.Function, handler); err != nil {
		return nil, fmt.Errorf("failed to register function %q: %w", cfg.Function, err)
	}
	return fab, nil
}

// Supervisor returns the batch supervisor wired to the local fabric.
func (app *App) Supervisor() supervisors.InvocationSupervisor {
	return app.supervisor
}

// Accountant returns the cost accounting engine.
func (app *App) Accountant() accounting.CostAccountingEngine {
	return app.accountant
}

// StartBackground starts the log channel workers. Safe to call more than once.
func (app *App) StartBackground() {
	app.startOnce.Do(func() {
		app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())
		app.logChannel.Start(app.backgroundCtx)
	})
}

// Start starts the background workers and the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting %s service on port %d (log_level=%s, file_storage_root_dir=%s, function=%s)",
			appName,
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.FileStorage.RootDir,
			app.config.Fabric.Function)

	app.StartBackground()

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Detach the fabric and flush what it already emitted
	app.fabric.AttachLogger(nil)
	if app.backgroundCancel != nil {
		if err := app.logChannel.Drain(ctx); err != nil {
			app.appLogger.Warn().Err(err).Msg("log channel not drained before shutdown")
		}
		app.backgroundCancel()
		app.appLogger.Info().Msg("Background workers cancelled")
	}

	// 3) Wait for background workers to finish
	app.logChannel.Stop()
	app.unsubscribe()
	app.appLogger.Info().Msg("Background workers stopped")

	app.shutdownTracing()
	return nil
}
