package config

import (
	"fmt"
	"time"

	"tsehay_admin/pkg/utils"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the admin server.
type Config struct {
	Port        string   `env:"PORT" envDefault:"8080"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty   bool     `env:"LOG_PRETTY" envDefault:"true"`
	SiteURL     string   `env:"SITE_URL" envDefault:"/"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
	Admin       AdminConfig
	Session     SessionConfig
	Mock        MockConfig
}

type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME" envDefault:"admin"`
	Password string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
}

type SessionConfig struct {
	Secret string        `env:"SESSION_SECRET" envDefault:"tsehay-kitfo-dev-secret-change-me"`
	TTL    time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	Secure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}

type MockConfig struct {
	Latency time.Duration `env:"MOCK_LATENCY" envDefault:"0s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if utils.IsEmpty(c.Admin.Username) {
		return fmt.Errorf("ADMIN_USERNAME must not be empty")
	}
	if c.Admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD must not be empty")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET must not be empty")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.Session.TTL)
	}
	if c.Mock.Latency < 0 {
		return fmt.Errorf("MOCK_LATENCY must not be negative, got %s", c.Mock.Latency)
	}
	return nil
}
