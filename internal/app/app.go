package app

import (
	"context"
	"crypto/rand"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/restapi"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
	"gopkg.in/natefinch/lumberjack.v2"
)

const sessionSecretLen = 32

type outbound struct {
	storage   port.CatalogStorage
	sqlDB     *storage.SQLDB
	events    port.CatalogEventsProducer
	producer  *kafka.CatalogEventsProducer
	logWriter io.Closer
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	outbound   outbound
	catalog    *service.Catalog
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initEventsProducer()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	var w io.Writer = os.Stderr
	if app.cfg.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   app.cfg.LogFile,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		}
		app.outbound.logWriter = rotator
		w = io.MultiWriter(os.Stderr, rotator)
	}

	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(w, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"
	log := slog.With("op", op)

	storeCfg := app.cfg.Store

	switch storeCfg.Backend {
	case config.BackendREST:
		cl, err := restapi.NewClient(
			storeCfg.RestURL, storeCfg.RestAPIKey, storeCfg.RequestTimeout,
		)
		if err != nil {
			app.fallDown(op, err)
		}
		app.outbound.storage = restapi.NewStore(cl)
		log.Info("using rest store", "url", storeCfg.RestURL)

	case config.BackendSQL:
		db, err := storage.NewSQLDB(app.ctx, storeCfg.SQLDB)
		if err != nil {
			app.fallDown(op, err)
		}
		app.outbound.sqlDB = &db
		app.outbound.storage = storage.NewCatalogRepository(db)
		log.Info("using sql store")

	default:
		log.Warn("store is not configured, serving the built-in catalog")
	}
}

func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"
	log := slog.With("op", op)

	brokerCfg := app.cfg.Broker
	if !brokerCfg.Enabled() {
		log.Info("catalog events are disabled")
		return
	}

	srClient, err := sr.NewClient(sr.URLs(brokerCfg.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	topic := brokerCfg.Topics.CatalogEvents
	serde, err := schema.NewSerdeCatalogEventV1(
		app.ctx,
		schema.SubjectOpt(topic+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	tlsCfg := brokerCfg.TLS
	var clientTLS *tls.Config
	if tlsCfg.Enabled() {
		clientTLS, err = adapter.MakeTLSConfig(tlsCfg.CA, tlsCfg.Cert, tlsCfg.Key)
		if err != nil {
			app.fallDown(op, err)
		}
	}

	producer, err := kafka.NewCatalogEventsProducer(
		kafka.ProducerClientOpt(app.ctx, brokerCfg.SeedBrokers, topic, clientTLS),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.outbound.producer = &producer
	app.outbound.events = producer
	log.Info("catalog events are enabled", "topic", topic)
}

func (app *App) initCoreService() {
	const op = "App.initCoreService"

	ids, err := service.NewSnowflakeIDs(app.cfg.IDNode)
	if err != nil {
		app.fallDown(op, err)
	}

	app.catalog = service.New(app.outbound.storage, app.outbound.events, ids)
	if err := app.catalog.Load(app.ctx); err != nil {
		slog.Error("catalog is partially loaded", "op", op, "err", err)
	}
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	adminCfg := app.cfg.Admin

	mux := http.NewServeMux()
	sessions := httphandler.NewAdminSessions(app.sessionSecret())
	credentials := service.NewStaticCredentials(
		adminCfg.Username, adminCfg.Password,
	)

	httphandler.RegisterCatalog(mux, app.catalog)
	httphandler.RegisterSession(mux, credentials, sessions)
	httphandler.RegisterAdmin(mux, sessions, app.catalog, app.catalog, app.catalog)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(
		addr, handler, app.cfg.Store.RequestTimeout,
	)
}

func (app *App) sessionSecret() []byte {
	const op = "App.sessionSecret"

	if secret := app.cfg.Admin.SessionSecret; secret != "" {
		return []byte(secret)
	}

	slog.Warn(
		"admin.session_secret is empty, admin sessions end on restart",
		"op", op,
	)
	secret := make([]byte, sessionSecretLen)
	if _, err := rand.Read(secret); err != nil {
		app.fallDown(op, err)
	}
	return secret
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.catalog.Close()
	if app.outbound.producer != nil {
		app.outbound.producer.Close()
	}
	if app.outbound.sqlDB != nil {
		app.outbound.sqlDB.Close()
	}

	slog.Info("application is closed")

	if app.outbound.logWriter != nil {
		_ = app.outbound.logWriter.Close()
	}
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
