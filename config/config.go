package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Relay     RelayConfig     `mapstructure:"relay"`
	Mint      MintConfig      `mapstructure:"mint"`
	Lightning LightningConfig `mapstructure:"lightning"`
	Identity  IdentityConfig  `mapstructure:"identity"`
	Wallet    WalletConfig    `mapstructure:"wallet"`
	Payout    PayoutConfig    `mapstructure:"payout"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig configures the local API the scorecard UI talks to.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
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

// RelayConfig lists the Nostr relays events are published to and read from.
type RelayConfig struct {
	URLs []string `mapstructure:"urls"`
}

// MintConfig points at the e-cash mint that issues and redeems tokens.
type MintConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LightningConfig holds the ranked gateway list. Order matters: the first
// reachable gateway wins.
type LightningConfig struct {
	GatewayURLs  []string      `mapstructure:"gateway_urls"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	PollTimeout  time.Duration `mapstructure:"poll_timeout"`
}

// IdentityConfig carries the local signing key. The engine never manages keys
// beyond consuming one.
type IdentityConfig struct {
	PrivateKey string `mapstructure:"private_key"` // hex-encoded Nostr secret key
}

type WalletConfig struct {
	EncryptionKey string `mapstructure:"encryption_key"` // 32-byte hex key for token secrets at rest
}

type PayoutConfig struct {
	MaxAttempts    int           `mapstructure:"max_attempts"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: ODG_ (On-chain Disc Golf).
// Nested keys use underscore: ODG_DATABASE_HOST, ODG_IDENTITY_PRIVATE_KEY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8710)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "discgolf")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("relay.urls", []string{
		"wss://relay.damus.io",
		"wss://relay.snort.social",
		"wss://relay.primal.net",
		"wss://nos.lol",
	})
	v.SetDefault("mint.url", "")
	v.SetDefault("mint.timeout", "15s")
	v.SetDefault("lightning.gateway_urls", []string{})
	v.SetDefault("lightning.poll_interval", "2s")
	v.SetDefault("lightning.poll_timeout", "10m")
	v.SetDefault("identity.private_key", "")
	v.SetDefault("wallet.encryption_key", "")
	v.SetDefault("payout.max_attempts", 5)
	v.SetDefault("payout.initial_backoff", "2s")
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

	// Environment variables: ODG_DATABASE_HOST -> database.host
	v.SetEnvPrefix("ODG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
