package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"

	"github.com/SammyMuraya-DA/online-cyber/internal/notify"
)

// Config holds the complete application configuration, loadable from
// environment variables (CYBER_ prefix), flags, or YAML config files.
type Config struct {
	Addr        string `default:"0.0.0.0:8080" usage:"storefront listen address"`
	DatabaseURL string `usage:"PostgreSQL connection URL (CYBER_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	AdminToken  string `usage:"Bearer token for the admin API; empty disables admin routes" flag:"admin-token"`
	Payment     PaymentConfig
	Session     SessionConfig
	SMTP        SMTPConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	Graceful    GracefulConfig
}

// PaymentConfig controls the simulated payment timing.
type PaymentConfig struct {
	ProcessingDelay time.Duration `default:"3s" usage:"Simulated gateway round trip" flag:"processing-delay"`
	SuccessDisplay  time.Duration `default:"2s" usage:"Success display interval before completion" flag:"success-display"`
}

// SessionConfig controls per-visitor checkout session lifecycle.
type SessionConfig struct {
	SweepInterval time.Duration `default:"5m"  usage:"How often idle sessions are swept" flag:"sweep-interval"`
	MaxIdle       time.Duration `default:"30m" usage:"Idle duration before a session is evicted" flag:"max-idle"`
}

// SMTPConfig configures the order notification mailer. Leaving Host empty
// disables email and installs a no-op notifier.
type SMTPConfig struct {
	Host     string `usage:"SMTP server host; empty disables email"`
	Port     int    `default:"587" usage:"SMTP server port"`
	Username string `usage:"SMTP username"`
	Password string `usage:"SMTP password"`
	From     string `usage:"Notification sender address"`
	To       string `usage:"Notification recipient address"`
}

// RateLimitConfig controls the per-client rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins []string `default:"*" usage:"Allowed CORS origins"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "CYBER",
		Files:     []string{"config.yaml", "/etc/cyber/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.DatabaseURL == "" {
		return nil, errors.New("database URL is required: set CYBER_DATABASE_URL or DATABASE_URL")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables (Railway,
// Render, etc.) that use standard names like DATABASE_URL and PORT to the
// application's CYBER_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}

// notifySMTP converts the config section to the notify package's settings.
func (c *Config) notifySMTP() notify.SMTPConfig {
	return notify.SMTPConfig{
		Host:     c.SMTP.Host,
		Port:     c.SMTP.Port,
		Username: c.SMTP.Username,
		Password: c.SMTP.Password,
		From:     c.SMTP.From,
		To:       c.SMTP.To,
	}
}
