package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pms-portal/billing-api/internal/secrets"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Secrets   SecretsConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
	Invoicing InvoicingConfig
	Jobs      JobsConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	// AutoMigrate runs gorm AutoMigrate at startup. Production uses goose migrations.
	AutoMigrate bool
}

// SecretsConfig selects where database credentials come from.
// Backend is "environment", "vault" or "auto" (vault outside development).
type SecretsConfig struct {
	Backend      string
	KeyVaultName string
	CacheTTL     int // seconds, 0 disables caching
}

type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
}

// CORSConfig is passed to go-chi/cors. An empty origin list allows every
// origin outside production and none in production.
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int // preflight cache, seconds
}

// SecurityConfig controls the response security headers. Empty strings
// suppress the matching header.
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	HSTSPreload           bool
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	ReferrerPolicy        string
}

// RateLimitConfig is a per-IP budget. Whitelisted IPs and paths are never limited.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	WhitelistIPs      []string
	WhitelistPaths    []string
}

// InvoicingConfig holds the defaults applied to new invoices
type InvoicingConfig struct {
	Currency         string
	DefaultVATRate   float64
	PaymentTermsDays int
}

// JobsConfig controls the background scheduler
type JobsConfig struct {
	// AnnualRolloverEnabled registers the January annual code rollover
	AnnualRolloverEnabled bool
	// AnnualRolloverCron is a 6-field cron expression (with seconds)
	AnnualRolloverCron string
	// AnnualRolloverTimeout bounds a single rollover run (seconds)
	AnnualRolloverTimeout int
	// RolloverOnStartup runs the rollover once at boot if codes are stale
	RolloverOnStartup bool
}

// ConnectionString builds PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// AnnualRolloverTimeoutDuration returns the rollover timeout as duration
func (j *JobsConfig) AnnualRolloverTimeoutDuration() time.Duration {
	return time.Duration(j.AnnualRolloverTimeout) * time.Second
}

// Load reads .env, config.json (./ or ./config) and the environment, in
// increasing precedence. Credentials are taken as-is; see LoadWithSecrets.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the billing rules cannot work with
func (c *Config) Validate() error {
	if len(c.Invoicing.Currency) != 3 {
		return fmt.Errorf("invoicing.currency must be a 3-letter ISO code, got %q", c.Invoicing.Currency)
	}
	if c.Invoicing.DefaultVATRate < 0 || c.Invoicing.DefaultVATRate > 1 {
		return fmt.Errorf("invoicing.defaultVATRate must be between 0 and 1, got %v", c.Invoicing.DefaultVATRate)
	}
	if c.Invoicing.PaymentTermsDays < 0 {
		return fmt.Errorf("invoicing.paymentTermsDays must not be negative, got %d", c.Invoicing.PaymentTermsDays)
	}
	if c.Jobs.AnnualRolloverEnabled && c.Jobs.AnnualRolloverCron == "" {
		return fmt.Errorf("jobs.annualRolloverCron is required when the rollover job is enabled")
	}
	return nil
}

// LoadWithSecrets is Load followed by credential resolution. Key Vault is
// only consulted when USE_AZURE_KEY_VAULT=true and the environment is staging
// or production; otherwise the plain environment values stand.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	env := cfg.App.Environment
	if !strings.EqualFold(os.Getenv("USE_AZURE_KEY_VAULT"), "true") {
		logger.Info("Database credentials from environment", zap.String("environment", env))
		return cfg, nil
	}
	if secrets.BackendFor(secrets.BackendAuto, env) != secrets.BackendKeyVault {
		logger.Warn("USE_AZURE_KEY_VAULT ignored outside staging and production", zap.String("environment", env))
		return cfg, nil
	}
	if cfg.Secrets.KeyVaultName == "" {
		return nil, fmt.Errorf("AZURE_KEY_VAULT_NAME is required when USE_AZURE_KEY_VAULT=true")
	}

	resolver, err := secrets.NewResolver(secrets.Options{
		Backend:     secrets.BackendKeyVault,
		Environment: env,
		VaultName:   cfg.Secrets.KeyVaultName,
		CacheTTL:    time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("credential resolver: %w", err)
	}

	if err := applyDatabaseSecrets(ctx, cfg, resolver); err != nil {
		return nil, err
	}

	logger.Info("Database credentials resolved from Key Vault", zap.String("key_vault", cfg.Secrets.KeyVaultName))
	return cfg, nil
}

// credentialLookup is satisfied by *secrets.Resolver
type credentialLookup interface {
	Lookup(ctx context.Context, secretName, envName string) (string, error)
}

// applyDatabaseSecrets overlays host, user and password from src. Only the
// password is mandatory; the database name and SSL mode stay environment-specific.
func applyDatabaseSecrets(ctx context.Context, cfg *Config, src credentialLookup) error {
	if host, err := src.Lookup(ctx, "POSTGRES-BILLING-HOST", "DATABASE_HOST"); err == nil {
		cfg.Database.Host = host
	}
	if user, err := src.Lookup(ctx, "POSTGRES-BILLING-USER", "DATABASE_USER"); err == nil {
		cfg.Database.User = user
	}
	password, err := src.Lookup(ctx, "POSTGRES-BILLING-PASSWORD", "DATABASE_PASSWORD")
	if err != nil {
		return fmt.Errorf("failed to resolve database password: %w", err)
	}
	cfg.Database.Password = password

	if name := os.Getenv("DEFAULT_DATABASE"); name != "" {
		cfg.Database.Name = name
	}
	if mode := os.Getenv("DATABASE_SSLMODE"); mode != "" {
		cfg.Database.SSLMode = mode
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "PMS Billing API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "billing")
	v.SetDefault("database.user", "billing_user")
	v.SetDefault("database.password", "billing_password")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)
	v.SetDefault("database.autoMigrate", false)

	// Secrets defaults
	v.SetDefault("secrets.backend", "auto")
	v.SetDefault("secrets.cacheTTL", 300)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Server defaults
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.requestTimeout", 60)
	v.SetDefault("server.enableSwagger", true)

	// CORS defaults - restrictive by default
	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Location", "X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	// Security header defaults - secure by default
	v.SetDefault("security.enableHSTS", false) // enable in production with HTTPS
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.hstsPreload", false)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")

	// Rate limit defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 120)
	v.SetDefault("rateLimit.whitelistIPs", []string{})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/db", "/health/ready"})

	// Invoicing defaults (UAE VAT)
	v.SetDefault("invoicing.currency", "AED")
	v.SetDefault("invoicing.defaultVATRate", 0.05)
	v.SetDefault("invoicing.paymentTermsDays", 30)

	// Jobs defaults: 00:05:00 on 1 January
	v.SetDefault("jobs.annualRolloverEnabled", true)
	v.SetDefault("jobs.annualRolloverCron", "0 5 0 1 1 *")
	v.SetDefault("jobs.annualRolloverTimeout", 300)
	v.SetDefault("jobs.rolloverOnStartup", true)
}
