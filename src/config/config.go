// Package config loads agent configuration from file and environment.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all agent configuration.
type Config struct {
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	Temperature float32       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	MergeCap    int           `mapstructure:"merge_cap"`
	MemoryStore string        `mapstructure:"memory_store"` // inmemory, postgres, redis
	NotesStore  string        `mapstructure:"notes_store"`  // inmemory, mongo
	Window      int           `mapstructure:"memory_window"`
	CacheSize   int           `mapstructure:"cache_size"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	LogLevel    string        `mapstructure:"log_level"`

	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
}

// PostgresConfig configures the Postgres session store.
type PostgresConfig struct {
	URL string `mapstructure:"url"`
}

// RedisConfig configures the Redis session store.
type RedisConfig struct {
	Addr string `mapstructure:"addr"`
	DB   int    `mapstructure:"db"`
}

// MongoConfig configures the MongoDB notes provider.
type MongoConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

// Load reads an optional YAML file and ZEPHYR_-prefixed env overrides,
// filling defaults for anything unset.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("provider", "openai")
	v.SetDefault("model", "gpt-4o-mini")
	v.SetDefault("temperature", 0.2)
	v.SetDefault("max_tokens", 1024)
	v.SetDefault("merge_cap", 10)
	v.SetDefault("memory_store", "inmemory")
	v.SetDefault("notes_store", "inmemory")
	v.SetDefault("memory_window", 20)
	v.SetDefault("cache_size", 0)
	v.SetDefault("cache_ttl", 5*time.Minute)
	v.SetDefault("log_level", "info")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("mongo.database", "zephyr")
	v.SetDefault("mongo.collection", "notes")

	v.SetEnvPrefix("ZEPHYR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
