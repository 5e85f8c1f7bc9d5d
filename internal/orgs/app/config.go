package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/aussiebroadwan/orgs/internal/orgs/service"
)

type Config struct {
	Env       string `env:"ENV"        envDefault:"dev"`  // dev, staging, prod
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"` // debug, info, warn, error
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // json, text
	Port      int    `env:"PORT"       envDefault:"8081"`

	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`

	// BaseURL is the frontend origin invite links point at.
	BaseURL      string `env:"ORGS_BASE_URL"      envDefault:"http://localhost:3000"`
	DatabaseFile string `env:"ORGS_DATABASE_FILE" envDefault:"orgs.db"`

	// Token verification. JWKSURL is polled every JWKSRefresh; JWKSJSON pins
	// a static key set instead and takes precedence.
	JWKSURL     string        `env:"ORGS_JWKS_URL"     envDefault:"http://localhost:8080/.well-known/jwks.json"`
	JWKSJSON    string        `env:"ORGS_JWKS_JSON"`
	JWKSRefresh time.Duration `env:"ORGS_JWKS_REFRESH" envDefault:"5m"`
	JWTIssuer   string        `env:"ORGS_JWT_ISSUER"`
	JWTAudience []string      `env:"ORGS_JWT_AUDIENCE" envSeparator:","`
	JWTLeeway   time.Duration `env:"ORGS_JWT_LEEWAY"   envDefault:"30s"`

	// Mail queue. Without a redis address messages go to an in-process queue.
	RedisAddr     string `env:"ORGS_REDIS_ADDR"`
	RedisPassword string `env:"ORGS_REDIS_PASSWORD"`
	RedisDB       int    `env:"ORGS_REDIS_DB"         envDefault:"0"`
	MailQueueKey  string `env:"ORGS_MAIL_QUEUE_KEY"   envDefault:"orgs:mail"`
	MailQueueSize int    `env:"ORGS_MAIL_QUEUE_SIZE"  envDefault:"256"`
	MailFrom      string `env:"ORGS_MAIL_FROM"        envDefault:"no-reply@orgs.local"`

	// Zero keeps the one year default.
	InviteTTL time.Duration `env:"ORGS_INVITE_TTL"`

	LinkEnforceExpiry     bool `env:"ORGS_LINK_ENFORCE_EXPIRY"     envDefault:"true"`
	LinkSingleUse         bool `env:"ORGS_LINK_SINGLE_USE"         envDefault:"false"`
	TargetedEnforceExpiry bool `env:"ORGS_TARGETED_ENFORCE_EXPIRY" envDefault:"true"`
	TargetedSingleUse     bool `env:"ORGS_TARGETED_SINGLE_USE"     envDefault:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if c.BaseURL == "" {
		errs = append(errs, errors.New("ORGS_BASE_URL is required"))
	}
	if c.JWKSURL == "" && c.JWKSJSON == "" {
		errs = append(errs, errors.New("one of ORGS_JWKS_URL or ORGS_JWKS_JSON is required"))
	}
	if c.InviteTTL < 0 {
		errs = append(errs, errors.New("ORGS_INVITE_TTL must not be negative"))
	}
	if c.MailQueueSize <= 0 {
		errs = append(errs, errors.New("ORGS_MAIL_QUEUE_SIZE must be positive"))
	}
	return errors.Join(errs...)
}

// LinkPolicy and TargetedPolicy turn the flags into per-kind invite policies.
func (c Config) LinkPolicy() service.InvitePolicy {
	return service.InvitePolicy{EnforceExpiry: c.LinkEnforceExpiry, SingleUse: c.LinkSingleUse}
}

func (c Config) TargetedPolicy() service.InvitePolicy {
	return service.InvitePolicy{EnforceExpiry: c.TargetedEnforceExpiry, SingleUse: c.TargetedSingleUse}
}
