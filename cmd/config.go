package cmd

import (
	"time"

	"parcelhub/internal/adapters/in/http/auth"
	redisadapter "parcelhub/internal/adapters/out/redis"
	"parcelhub/internal/jobs"
	"parcelhub/internal/pkg/logger"
)

type Config struct {
	HTTP     HTTPConfig
	DB       DBConfig
	Auth     auth.Config
	Redis    redisadapter.Config
	FeeCache FeeCacheConfig
	Log      logger.Config
	Jobs     jobs.Config
	NewRelic NewRelicConfig
}

type HTTPConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SslMode  string
}

// FeeCacheConfig switches the Redis fee-config cache. With Enabled false fee
// configs are always read from Postgres and Redis is not contacted.
type FeeCacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// NewRelicConfig enables the APM agent when LicenseKey is set.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
}
