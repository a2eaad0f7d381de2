package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "BIZBOOK"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Invoicing    InvoicingConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BIZBOOK_APP_ENV" default:"dev"`
	Port         string `envconfig:"BIZBOOK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BIZBOOK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BIZBOOK_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"BIZBOOK_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BIZBOOK_DB_DSN"`
	Driver string `envconfig:"BIZBOOK_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"BIZBOOK_DB_HOST"`
	Port     int    `envconfig:"BIZBOOK_DB_PORT" default:"5432"`
	User     string `envconfig:"BIZBOOK_DB_USER"`
	Password string `envconfig:"BIZBOOK_DB_PASSWORD"`
	Name     string `envconfig:"BIZBOOK_DB_NAME"`
	SSLMode  string `envconfig:"BIZBOOK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BIZBOOK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BIZBOOK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BIZBOOK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BIZBOOK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Driver == DriverSQLite {
		return fmt.Errorf("database DSN is required for the sqlite driver")
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database DSN or host/user/name parts are required")
	}
	d.DSN = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(d.User),
		url.QueryEscape(d.Password),
		d.Host,
		d.Port,
		d.Name,
		d.SSLMode,
	)
	return nil
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// InvoicingConfig carries the tunables of the invoicing core.
type InvoicingConfig struct {
	// StrictAdjustments turns missing-row leniency in stock and ledger
	// adjustments into hard not-found failures.
	StrictAdjustments bool `envconfig:"BIZBOOK_STRICT_ADJUSTMENTS" default:"false"`

	DefaultCGSTRate float64 `envconfig:"BIZBOOK_DEFAULT_CGST_RATE" default:"9"`
	DefaultSGSTRate float64 `envconfig:"BIZBOOK_DEFAULT_SGST_RATE" default:"9"`
	DefaultIGSTRate float64 `envconfig:"BIZBOOK_DEFAULT_IGST_RATE" default:"0"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BIZBOOK_AUTO_MIGRATE" default:"false"`
}
