package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Feed      FeedConfig      `mapstructure:"feed"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	NATS      NATSConfig      `mapstructure:"nats"`
}

// AppConfig represents application-specific configuration
type AppConfig struct {
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
	HTTPPort int    `mapstructure:"http_port"`
}

// FeedConfig represents the transfer-feed provider configuration
type FeedConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	APIKey          string        `mapstructure:"api_key"`
	Timeout         time.Duration `mapstructure:"timeout"`
	DefaultContract string        `mapstructure:"default_contract"`
}

// AnalyticsConfig represents analytics engine configuration
type AnalyticsConfig struct {
	BuySharesMarker string `mapstructure:"buy_shares_marker"`
	SharesContract  string `mapstructure:"shares_contract"`
}

// NATSConfig represents NATS configuration for report event publication
type NATSConfig struct {
	URL               string        `mapstructure:"url"`
	StreamName        string        `mapstructure:"stream_name"`
	SubjectPrefix     string        `mapstructure:"subject_prefix"`
	ConnectTimeout    time.Duration `mapstructure:"connect_timeout"`
	ReconnectAttempts int           `mapstructure:"reconnect_attempts"`
	ReconnectDelay    time.Duration `mapstructure:"reconnect_delay"`
	Enabled           bool          `mapstructure:"enabled"`
}

// Load loads configuration from environment variables and files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/wallet-flow-analyzer")

	// Environment variables
	viper.AutomaticEnv()
	viper.SetEnvPrefix("")

	// Map environment variables to nested config keys
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Default values
	setDefaults()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.http_port", 8080)

	// Feed defaults
	viper.SetDefault("feed.base_url", "https://api.etherscan.io/api")
	viper.SetDefault("feed.api_key", "")
	viper.SetDefault("feed.timeout", "15s")
	viper.SetDefault("feed.default_contract", "")

	// Analytics defaults: share purchases routed through the friend.tech
	// shares contract.
	viper.SetDefault("analytics.buy_shares_marker", "buyShares")
	viper.SetDefault("analytics.shares_contract", "0xCF205808Ed36593aA40a44F10c7f7C2F67d4A4d4")

	// NATS defaults
	viper.SetDefault("nats.url", "nats://localhost:4222")
	viper.SetDefault("nats.stream_name", "WALLET_REPORTS")
	viper.SetDefault("nats.subject_prefix", "wallet-reports")
	viper.SetDefault("nats.connect_timeout", "10s")
	viper.SetDefault("nats.reconnect_attempts", 5)
	viper.SetDefault("nats.reconnect_delay", "2s")
	viper.SetDefault("nats.enabled", false)

	// Bind env for the feed credential and broker URL
	viper.BindEnv("feed.api_key", "ETHERSCAN_API_KEY")
	viper.BindEnv("nats.url", "NATS_URL")
}
