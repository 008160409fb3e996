package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Email     EmailConfig     `yaml:"email"`
	JWT       JWTConfig       `yaml:"jwt"`
	Log       LogConfig       `yaml:"log"`
	Economy   EconomyConfig   `yaml:"economy"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// EmailConfig contains SendGrid settings for outbound notices
type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromEmail      string `yaml:"from_email"`
	FromName       string `yaml:"from_name"`
}

// JWTConfig contains settings for verifying internal user tokens
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// EconomyConfig is the explicit settings object for the coin economy. It is
// passed into services at construction; nothing reads these values globally.
type EconomyConfig struct {
	CoinsPerUSD            int64      `yaml:"coins_per_usd"`
	CommissionPercent      int64      `yaml:"commission_percent"`
	ReferralPercent        int64      `yaml:"referral_percent"`
	SubscriptionPriceCoins int64      `yaml:"subscription_price_coins"`
	SubscriptionDays       int        `yaml:"subscription_days"`
	RenewalWindowHours     int        `yaml:"renewal_window_hours"`
	CoinPacks              []CoinPack `yaml:"coin_packs"`
}

// CoinPack is one purchasable top-up pack. BonusPercent extra coins are
// granted on top of BaseCoins.
type CoinPack struct {
	ID            string `yaml:"id"`
	BaseCoins     int64  `yaml:"base_coins"`
	BonusPercent  int64  `yaml:"bonus_percent"`
	PriceUSDCents int64  `yaml:"price_usd_cents"`
}

// FindPack returns the pack with the given id, or nil.
func (e *EconomyConfig) FindPack(id string) *CoinPack {
	for i := range e.CoinPacks {
		if e.CoinPacks[i].ID == id {
			return &e.CoinPacks[i]
		}
	}
	return nil
}

// SchedulerConfig contains cron schedule settings. Specs accept both
// cron expressions ("0 0 0 * * *" for UTC midnight) and intervals
// ("@every 6h").
type SchedulerConfig struct {
	ExpireSubscriptions string `yaml:"expire_subscriptions"`
	ProcessAutoRenewals string `yaml:"process_auto_renewals"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.FromEmail = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and applies defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	// Economy defaults
	if c.Economy.CoinsPerUSD == 0 {
		c.Economy.CoinsPerUSD = 100
	}
	if c.Economy.CoinsPerUSD < 0 {
		return fmt.Errorf("coins_per_usd must be positive")
	}
	if c.Economy.CommissionPercent == 0 {
		c.Economy.CommissionPercent = 30
	}
	if c.Economy.CommissionPercent < 0 || c.Economy.CommissionPercent > 100 {
		return fmt.Errorf("commission_percent must be between 0 and 100")
	}
	if c.Economy.ReferralPercent < 0 || c.Economy.ReferralPercent > 100 {
		return fmt.Errorf("referral_percent must be between 0 and 100")
	}
	if c.Economy.SubscriptionPriceCoins == 0 {
		c.Economy.SubscriptionPriceCoins = 500
	}
	if c.Economy.SubscriptionDays == 0 {
		c.Economy.SubscriptionDays = 30
	}
	if c.Economy.RenewalWindowHours == 0 {
		c.Economy.RenewalWindowHours = 24
	}
	seen := make(map[string]bool)
	for _, pack := range c.Economy.CoinPacks {
		if pack.ID == "" {
			return fmt.Errorf("coin pack id is required")
		}
		if seen[pack.ID] {
			return fmt.Errorf("duplicate coin pack id: %s", pack.ID)
		}
		seen[pack.ID] = true
		if pack.BaseCoins <= 0 {
			return fmt.Errorf("coin pack %s: base_coins must be positive", pack.ID)
		}
		if pack.BonusPercent < 0 {
			return fmt.Errorf("coin pack %s: bonus_percent must not be negative", pack.ID)
		}
	}

	// Scheduler defaults: expiry at UTC midnight, renewals right after
	if c.Scheduler.ExpireSubscriptions == "" {
		c.Scheduler.ExpireSubscriptions = "0 0 0 * * *"
	}
	if c.Scheduler.ProcessAutoRenewals == "" {
		c.Scheduler.ProcessAutoRenewals = "0 5 0 * * *"
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
