package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timeouts, standard settings)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Cookie  CookieConfig
	Booking BookingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

// BookingConfig holds the knobs of the availability engine.
type BookingConfig struct {
	// LockTimeout bounds how long a create/update waits for the per-resource
	// guard before failing with Busy.
	LockTimeout time.Duration `envconfig:"BOOKING_LOCK_TIMEOUT" default:"3s"`
	// IdempotencyTTL is how long a processed Idempotency-Key stays replayable.
	IdempotencyTTL time.Duration `envconfig:"BOOKING_IDEMPOTENCY_TTL" default:"24h"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level: "error",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: time.Hour,
		},
		Booking: BookingConfig{
			LockTimeout:    3 * time.Second,
			IdempotencyTTL: 24 * time.Hour,
		},
	}
}
