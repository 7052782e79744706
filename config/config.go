package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Pricing  PricingConfig  `mapstructure:"pricing"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsPath  string        `mapstructure:"migrations_path"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// GatewayConfig holds payment gateway credentials and endpoints.
// Mode selects TEST or LIVE base URLs.
type GatewayConfig struct {
	ClientID      string        `mapstructure:"client_id"`
	SecretKey     string        `mapstructure:"secret_key"`
	MerchantCode  string        `mapstructure:"merchant_code"`
	PayItemID     string        `mapstructure:"pay_item_id"`
	Mode          string        `mapstructure:"mode"` // TEST or LIVE
	ReturnURL     string        `mapstructure:"return_url"`
	VerifyTimeout time.Duration `mapstructure:"verify_timeout"`
}

// PricingConfig holds token pricing and service costs; read-only after startup.
type PricingConfig struct {
	Currency              string        `mapstructure:"currency"`
	CurrencyNumericCode   string        `mapstructure:"currency_numeric_code"` // ISO 4217 numeric, e.g. 566 for NGN
	TokensPerUnitMoney    float64       `mapstructure:"tokens_per_unit_money"`
	MinPurchaseMoney      float64       `mapstructure:"min_purchase_money"`
	MaxPurchaseMoney      float64       `mapstructure:"max_purchase_money"`
	FreeGrantTokens       int64         `mapstructure:"free_grant_tokens"`
	LowBalanceTokens      int64         `mapstructure:"low_balance_tokens"`
	CriticalBalanceTokens int64         `mapstructure:"critical_balance_tokens"`
	StrictPricing         bool          `mapstructure:"strict_pricing"`
	AnalysisCost          int64         `mapstructure:"analysis_cost"`
	TransformCost         int64         `mapstructure:"transform_cost"`
	PremiumInsightsCost   int64         `mapstructure:"premium_insights_cost"`
	ReferencePrefix       string        `mapstructure:"reference_prefix"`
	TransactionTTL        time.Duration `mapstructure:"transaction_ttl"`
}

// AnalysisConfig configures the dataset analysis engine.
type AnalysisConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: DSB_.
// Nested keys use underscore: DSB_DATABASE_HOST, DSB_GATEWAY_SECRET_KEY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "dataset_billing")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.migrations_path", "file://migrations")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("gateway.client_id", "")
	v.SetDefault("gateway.secret_key", "")
	v.SetDefault("gateway.merchant_code", "")
	v.SetDefault("gateway.pay_item_id", "")
	v.SetDefault("gateway.mode", "TEST")
	v.SetDefault("gateway.return_url", "http://localhost:3000/payment-success")
	v.SetDefault("gateway.verify_timeout", "30s")
	v.SetDefault("pricing.currency", "NGN")
	v.SetDefault("pricing.currency_numeric_code", "566")
	v.SetDefault("pricing.tokens_per_unit_money", 2.0)
	v.SetDefault("pricing.min_purchase_money", 250.0)
	v.SetDefault("pricing.max_purchase_money", 100000.0)
	v.SetDefault("pricing.free_grant_tokens", 100)
	v.SetDefault("pricing.low_balance_tokens", 20)
	v.SetDefault("pricing.critical_balance_tokens", 5)
	v.SetDefault("pricing.strict_pricing", true)
	v.SetDefault("pricing.analysis_cost", 10)
	v.SetDefault("pricing.transform_cost", 5)
	v.SetDefault("pricing.premium_insights_cost", 20)
	v.SetDefault("pricing.reference_prefix", "SEN")
	v.SetDefault("pricing.transaction_ttl", "1h")
	v.SetDefault("analysis.data_dir", "./data/datasets")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: DSB_GATEWAY_SECRET_KEY -> gateway.secret_key
	v.SetEnvPrefix("DSB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Missing config file is fine, env vars can carry everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if mode := strings.ToUpper(c.Gateway.Mode); mode != "TEST" && mode != "LIVE" {
		return fmt.Errorf("gateway.mode must be TEST or LIVE, got %q", c.Gateway.Mode)
	}
	if c.Pricing.TokensPerUnitMoney <= 0 {
		return fmt.Errorf("pricing.tokens_per_unit_money must be positive")
	}
	if c.Pricing.MinPurchaseMoney > c.Pricing.MaxPurchaseMoney {
		return fmt.Errorf("pricing.min_purchase_money exceeds pricing.max_purchase_money")
	}
	if c.Pricing.FreeGrantTokens < 0 {
		return fmt.Errorf("pricing.free_grant_tokens must not be negative")
	}
	return nil
}
