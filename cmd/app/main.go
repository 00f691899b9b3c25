package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"parcelhub/api"
	"parcelhub/cmd"
	httpadapter "parcelhub/internal/adapters/in/http"
	"parcelhub/internal/adapters/in/http/auth"
	"parcelhub/internal/adapters/out/postgres"
	redisadapter "parcelhub/internal/adapters/out/redis"
	"parcelhub/internal/adapters/out/redis/feecache"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/jobs"
	"parcelhub/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configs := getConfigs()

	l := logger.New(configs.Log)
	defer func() { _ = l.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(gormpostgres.Open(dsn(configs.DB)), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return err
	}

	var feeCache ports.FeeConfigCache
	if configs.FeeCache.Enabled {
		client, clientErr := redisadapter.NewClient(ctx, configs.Redis)
		if clientErr != nil {
			return clientErr
		}
		defer func() { _ = client.Close() }()
		feeCache = feecache.NewRedisFeeConfigCache(client, configs.FeeCache.TTL)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, feeCache, l)
	if err != nil {
		return err
	}

	go app.TrackingHub().Run(ctx)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	nrApp, err := newRelicApp(configs.NewRelic)
	if err != nil {
		return err
	}
	if nrApp != nil {
		defer nrApp.Shutdown(10 * time.Second)
	}

	return startWebServer(ctx, app, configs.HTTP, nrApp, l)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, cfg cmd.HTTPConfig, nrApp *newrelic.Application, l *zap.Logger) error {
	doc, err := httpadapter.LoadDocument(ctx, api.OpenAPI)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.WARN)
	e.HTTPErrorHandler = httpadapter.NewErrorHandler(logger.Component(l, "http"))
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(httpadapter.NewRelic(nrApp))
	e.Use(httpadapter.RequestLogger(logger.Component(l, "http")))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if err = httpadapter.RegisterDocs(e, doc); err != nil {
		return err
	}
	httpadapter.RegisterHandlers(e, app.CreateServer(), app.TokenVerifier(), doc)

	errCh := make(chan error, 1)
	go func() {
		l.Info("http server started", zap.String("port", cfg.Port))
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.Port)); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			errCh <- startErr
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	l.Info("shutting down http server")
	return e.Shutdown(shutdownCtx)
}

func newRelicApp(cfg cmd.NewRelicConfig) (*newrelic.Application, error) {
	if cfg.LicenseKey == "" {
		return nil, nil
	}
	nrApp, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigAppLogForwardingEnabled(true),
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		return nil, fmt.Errorf("new relic: %w", err)
	}
	return nrApp, nil
}

func dsn(cfg cmd.DBConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SslMode)
}

func getConfigs() cmd.Config {
	// Variables may come from the process environment alone.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTP: cmd.HTTPConfig{
			Port:            envOr("HTTP_PORT", "8080"),
			ShutdownTimeout: envDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		DB: cmd.DBConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     envOr("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SslMode:  envOr("DB_SSLMODE", "disable"),
		},
		Auth: auth.Config{
			Secret:        os.Getenv("JWT_SECRET"),
			Issuer:        envOr("JWT_ISSUER", auth.DefaultIssuer),
			TokenTTL:      envDuration("JWT_TTL", auth.DefaultTokenTTL),
			RefreshTTL:    envDuration("JWT_REFRESH_TTL", auth.DefaultRefreshTTL),
			BcryptCost:    envInt("BCRYPT_COST", bcrypt.DefaultCost),
			SecureCookies: envBool("COOKIE_SECURE", false),
		},
		Redis: redisadapter.Config{
			Host:         envOr("REDIS_HOST", "localhost"),
			Port:         envOr("REDIS_PORT", "6379"),
			Password:     os.Getenv("REDIS_PASSWORD"),
			DB:           envInt("REDIS_DB", 0),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		FeeCache: cmd.FeeCacheConfig{
			Enabled: envBool("FEE_CACHE_ENABLED", false),
			TTL:     envDuration("FEE_CACHE_TTL", feecache.DefaultTTL),
		},
		Log: logger.Config{
			Level:  envOr("LOG_LEVEL", "info"),
			Format: envOr("LOG_FORMAT", logger.FormatJSON),
		},
		Jobs: jobs.Config{
			RiderReconcileSchedule: envOr("JOBS_RIDER_RECONCILE_CRON", jobs.DefaultRiderReconcileSchedule),
		},
		NewRelic: cmd.NewRelicConfig{
			AppName:    envOr("NEW_RELIC_APP_NAME", "parcelhub"),
			LicenseKey: os.Getenv("NEW_RELIC_LICENSE_KEY"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
