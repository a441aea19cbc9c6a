package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full service configuration loaded from config.toml
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	MercadoPago MercadoPagoConfig `toml:"mercadopago"`
	Mailer      MailerConfig      `toml:"mailer"`
	Pricing     PricingConfig     `toml:"pricing"`
	Checkout    CheckoutConfig    `toml:"checkout"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN builds the lib/pq connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type MercadoPagoConfig struct {
	BaseURL     string `toml:"base_url"`
	AccessToken string `toml:"access_token"`
	WebhookURL  string `toml:"webhook_url"`
	Timeout     int    `toml:"timeout"`
}

type MailerConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// PricingConfig holds the session prices in BRL. The principal booking of a
// package carries the package's full price.
type PricingConfig struct {
	Single         float64 `toml:"single"`
	MonthlyPackage float64 `toml:"monthly_package"`
	AnnualPackage  float64 `toml:"annual_package"`
}

// CheckoutConfig holds the return URLs passed to the payment provider
type CheckoutConfig struct {
	SuccessURL string `toml:"success_url"`
	PendingURL string `toml:"pending_url"`
	FailureURL string `toml:"failure_url"`
}

// Load reads and validates the configuration file
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.MercadoPago.BaseURL == "" {
		cfg.MercadoPago.BaseURL = "https://api.mercadopago.com"
	}

	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		return nil, fmt.Errorf("config: database host and dbname are required")
	}

	return &cfg, nil
}

// applyEnvOverrides lets secrets come from the environment instead of the
// config file. Environment wins when set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MP_ACCESS_TOKEN"); v != "" {
		cfg.MercadoPago.AccessToken = v
	}
	if v := os.Getenv("MP_WEBHOOK_URL"); v != "" {
		cfg.MercadoPago.WebhookURL = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
}
