package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	httpapi "github.com/aussiebroadwan/orgs/internal/orgs/http"
	"github.com/aussiebroadwan/orgs/internal/orgs/mail"
	"github.com/aussiebroadwan/orgs/internal/orgs/service"
	"github.com/aussiebroadwan/orgs/internal/orgs/store"
	"github.com/aussiebroadwan/orgs/internal/orgs/store/drivers/sqlite"
	"github.com/aussiebroadwan/orgs/pkg/jwtx"
	"github.com/aussiebroadwan/orgs/pkg/slogx"
)

const (
	// BuildVersion is overridden at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application owns the organization service and its background workers.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db          store.Store
	redis       *redis.Client // nil with the in-memory queue
	queue       mail.Queue
	renderer    *mail.Renderer
	keys        *jwtx.KeySet
	verifier    jwtx.Verifier
	stopRefresh context.CancelFunc

	identityService     *service.IdentityService
	organizationService *service.OrganizationService
	inviteService       *service.InviteService
	searchService       *service.SearchService
	housekeepingService *service.HousekeepingService
	mailWorker          *mail.Worker

	server  *http.Server
	router  *httpapi.Router
	started bool
}

func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "orgs-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initQueue(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initKeys(); err != nil {
		app.closeBackends()
		return nil, err
	}

	renderer, err := mail.NewRenderer()
	if err != nil {
		app.closeBackends()
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	app.renderer = renderer

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Start launches the housekeeping and mail workers.
func (app *Application) Start() {
	app.housekeepingService.Start()
	app.mailWorker.Start()
	app.started = true
}

// Handler returns the routed HTTP handler without starting a listener.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the workers and the HTTP server and blocks until shutdown.
func (app *Application) Run() error {
	app.Start()

	app.logger.Info("orgs service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.stopWorkers()
			app.closeBackends()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

func (app *Application) Shutdown() error {
	app.logger.Info("shutting down orgs service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.stopWorkers()

	if err := app.closeBackends(); err != nil {
		return err
	}

	app.logger.Info("orgs service stopped")
	return nil
}

func (app *Application) stopWorkers() {
	if !app.started {
		return
	}
	app.started = false
	app.mailWorker.Stop()
	app.housekeepingService.Stop()
}

// closeBackends releases everything opened by New, in reverse order.
func (app *Application) closeBackends() error {
	if app.stopRefresh != nil {
		app.stopRefresh()
	}

	if mq, ok := app.queue.(*mail.MemoryQueue); ok {
		_ = mq.Close()
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initQueue() error {
	if app.cfg.RedisAddr == "" {
		app.queue = mail.NewMemoryQueue(app.cfg.MailQueueSize)
		app.logger.Warn("ORGS_REDIS_ADDR not set, using in-memory mail queue")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     app.cfg.RedisAddr,
		Password: app.cfg.RedisPassword,
		DB:       app.cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	app.redis = client
	app.queue = mail.NewRedisQueue(client, app.cfg.MailQueueKey)
	app.logger.Info("mail queue connected", "addr", app.cfg.RedisAddr, "key", app.cfg.MailQueueKey)
	return nil
}

// initKeys loads the verification keys, either pinned from config or
// fetched from the auth service and refreshed in the background.
func (app *Application) initKeys() error {
	app.keys = jwtx.NewKeySet()
	app.verifier = &jwtx.EdDSAVerifier{
		Keys:     app.keys,
		Issuer:   app.cfg.JWTIssuer,
		Audience: app.cfg.JWTAudience,
		Leeway:   app.cfg.JWTLeeway,
	}

	if app.cfg.JWKSJSON != "" {
		var jwks jwtx.JWKS
		if err := json.Unmarshal([]byte(app.cfg.JWKSJSON), &jwks); err != nil {
			return fmt.Errorf("failed to parse ORGS_JWKS_JSON: %w", err)
		}
		if err := app.keys.ResetFromJWKS(jwks); err != nil {
			return fmt.Errorf("failed to load static JWKS: %w", err)
		}
		app.logger.Info("using static JWKS", "keys", len(jwks.Keys))
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := jwtx.RefreshKeySet(ctx, app.keys, app.cfg.JWKSURL, app.cfg.JWKSRefresh, app.logger); err != nil {
		// Readiness stays degraded until a later refresh succeeds.
		app.logger.Warn("initial JWKS fetch failed", "url", app.cfg.JWKSURL, "error", err)
		go app.retryKeys(ctx)
	}
	app.stopRefresh = cancel
	return nil
}

func (app *Application) retryKeys(ctx context.Context) {
	ticker := time.NewTicker(app.cfg.JWKSRefresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := jwtx.RefreshKeySet(ctx, app.keys, app.cfg.JWKSURL, app.cfg.JWKSRefresh, app.logger); err == nil {
				app.logger.Info("JWKS loaded", "url", app.cfg.JWKSURL)
				return
			}
		}
	}
}

func (app *Application) initServices() {
	app.identityService = &service.IdentityService{Store: app.db}
	app.organizationService = &service.OrganizationService{Store: app.db}
	app.inviteService = &service.InviteService{
		Store:          app.db,
		Queue:          app.queue,
		Renderer:       app.renderer,
		BaseURL:        app.cfg.BaseURL,
		MailFrom:       app.cfg.MailFrom,
		InviteTTL:      app.cfg.InviteTTL,
		LinkPolicy:     app.cfg.LinkPolicy(),
		TargetedPolicy: app.cfg.TargetedPolicy(),
	}
	app.searchService = &service.SearchService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	app.housekeepingService.LinkPolicy = app.inviteService.LinkPolicy
	app.housekeepingService.TargetedPolicy = app.inviteService.TargetedPolicy
	app.mailWorker = mail.NewWorker(app.queue, mail.LogSender{Logger: app.logger}, app.logger)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		app.verifier,
		BuildVersion,
		app.db,
		app.queue,
		app.logger,
	)

	router.IdentityService = app.identityService
	router.OrganizationService = app.organizationService
	router.InviteService = app.inviteService
	router.SearchService = app.searchService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
