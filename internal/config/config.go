package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	MailDriverLog  = "log"
	MailDriverSMTP = "smtp"
	MailDriverAPI  = "api"

	QueueDriverMemory = "memory"
	QueueDriverRedis  = "redis"
)

type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	DB        DBConfig
	Redis     RedisConfig
	Site      SiteConfig
	Mail      MailConfig
	Notify    NotifyConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Name    string `env:"APP_NAME" envDefault:"varejao-api"`
	Env     string `env:"APP_ENV" envDefault:"development"`
	Port    string `env:"PORT" envDefault:"3000"`
	Version string `env:"APP_VERSION" envDefault:"2.0"`
}

type HTTPConfig struct {
	AllowedOrigins    []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type DBConfig struct {
	URL          string        `env:"DATABASE_URL,required,notEmpty"`
	MaxConns     int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	QueryTimeout time.Duration `env:"DB_QUERY_TIMEOUT" envDefault:"3s"`
}

type RedisConfig struct {
	URL string `env:"REDIS_URL"`
}

func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.URL) != ""
}

type SiteConfig struct {
	URL        string `env:"SITE_URL"`
	AdminEmail string `env:"ADMIN_EMAIL"`
	StoreName  string `env:"STORE_NAME" envDefault:"Varejão Online"`
}

type MailConfig struct {
	Driver   string `env:"MAIL_DRIVER" envDefault:"log"`
	From     string `env:"MAIL_FROM" envDefault:"nao-responda@varejao.online"`
	FromName string `env:"MAIL_FROM_NAME" envDefault:"Varejão Online"`

	SMTP SMTPConfig `envPrefix:"SMTP_"`
	API  APIConfig  `envPrefix:"MAIL_API_"`
}

type SMTPConfig struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"587"`
	Username string `env:"USER"`
	Password string `env:"PASS"`
}

type APIConfig struct {
	URL     string        `env:"URL" envDefault:"https://api.resend.com"`
	Key     string        `env:"KEY"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type NotifyConfig struct {
	QueueDriver string        `env:"NOTIFY_QUEUE_DRIVER" envDefault:"memory"`
	QueueKey    string        `env:"NOTIFY_QUEUE_KEY" envDefault:"varejao:queue:notifications"`
	QueueSize   int           `env:"NOTIFY_QUEUE_SIZE" envDefault:"1000"`
	Workers     int           `env:"NOTIFY_WORKERS" envDefault:"2"`
	SendTimeout time.Duration `env:"NOTIFY_SEND_TIMEOUT" envDefault:"15s"`
}

type CacheConfig struct {
	Prefix          string        `env:"CACHE_PREFIX" envDefault:"varejao:cache:"`
	ProductTTL      time.Duration `env:"PRODUCTS_CACHE_TTL" envDefault:"2m"`
	ProductsListTTL time.Duration `env:"PRODUCTS_LIST_CACHE_TTL" envDefault:"30s"`
}

type RateLimitConfig struct {
	Prefix      string        `env:"RATE_LIMIT_PREFIX" envDefault:"varejao:ratelimit:"`
	LoginLimit  int           `env:"LOGIN_RATE_LIMIT" envDefault:"5"`
	LoginWindow time.Duration `env:"LOGIN_RATE_WINDOW" envDefault:"1m"`
}

type TelemetryConfig struct {
	Enabled bool `env:"OTEL_ENABLED" envDefault:"false"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Mail.Driver {
	case MailDriverLog:
	case MailDriverSMTP:
		if c.Mail.SMTP.Host == "" || c.Mail.SMTP.Username == "" {
			errs = append(errs, errors.New("MAIL_DRIVER=smtp requires SMTP_HOST and SMTP_USER"))
		}
	case MailDriverAPI:
		if c.Mail.API.Key == "" {
			errs = append(errs, errors.New("MAIL_DRIVER=api requires MAIL_API_KEY"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid MAIL_DRIVER %q", c.Mail.Driver))
	}

	switch c.Notify.QueueDriver {
	case QueueDriverMemory:
	case QueueDriverRedis:
		if !c.Redis.Enabled() {
			errs = append(errs, errors.New("NOTIFY_QUEUE_DRIVER=redis requires REDIS_URL"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid NOTIFY_QUEUE_DRIVER %q", c.Notify.QueueDriver))
	}

	if c.Notify.Workers <= 0 {
		errs = append(errs, errors.New("NOTIFY_WORKERS must be positive"))
	}

	return errors.Join(errs...)
}
