package store

import (
	"time"

	"rolegate/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG  PGConfig
	RDS RedisConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled          bool
	URL              string
	MaxConns         int32
	LogSQL           bool
	SlowQueryMs      int
	StatementTimeout time.Duration

	// ConnectRetries bounds the boot ping loop, default 20
	ConnectRetries int
}

// RedisConfig configures redis connectivity
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// ConfigFrom reads SERVICE_PGSQL_* and SERVICE_REDIS_* style keys from the given views
func ConfigFrom(appName string, pg, redis config.Conf) Config {
	return Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:          true,
			URL:              pg.MustString("DBURL"),
			MaxConns:         int32(pg.MayInt("MAX_CONNS", 8)),
			SlowQueryMs:      pg.MayInt("SLOW_MS", 250),
			LogSQL:           pg.MayBool("LOG_SQL", false),
			StatementTimeout: pg.MayDuration("STATEMENT_TIMEOUT", 0),
			ConnectRetries:   pg.MayInt("CONNECT_RETRIES", 20),
		},
		RDS: RedisConfig{
			Enabled:  redis.MayBool("ENABLED", false),
			Addr:     redis.MayString("ADDR", "localhost:6379"),
			Password: redis.MayString("PASSWORD", ""),
			DB:       redis.MayInt("DB", 0),
		},
	}
}
