package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// RegistryConfig captures runtime settings for the airport registry service.
// RequestTimeout and ShutdownTimeout are written as strings such as "60s" or
// "1m30s" in config files and AIRPORTS_* env vars; viper's decode hook parses
// them into time.Duration. SeedLegacyKeys keys the seed records "a", "b" and
// "c" instead of by their own airport_id.
type RegistryConfig struct {
	ListenAddr      string        `mapstructure:"listen_addr"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	SeedLegacyKeys  bool          `mapstructure:"seed_legacy_keys"`
	RedisURL        string        `mapstructure:"redis_url"`
	EventsChannel   string        `mapstructure:"events_channel"`
	DatabaseURL     string        `mapstructure:"database_url"`
	TelemetryStdout bool          `mapstructure:"telemetry_stdout"`
	LogLevel        string        `mapstructure:"log_level"`
}

// LoadRegistry layers AIRPORTS_* env vars over ./configs/config.* over the
// defaults below. The Redis and Postgres side channels stay disabled until
// their URLs are set.
func LoadRegistry() (RegistryConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath("./configs")
	v.SetEnvPrefix("AIRPORTS")
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("request_timeout", "60s")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("seed_legacy_keys", true)
	v.SetDefault("redis_url", "")
	v.SetDefault("events_channel", "airports:events")
	v.SetDefault("database_url", "")
	v.SetDefault("telemetry_stdout", false)
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return RegistryConfig{}, fmt.Errorf("load config: %w", err)
		}
	}

	var cfg RegistryConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return RegistryConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}
