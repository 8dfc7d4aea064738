package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PASSMETER_SERVER_PORT
// or PASSMETER_HISTORY_MAX_ENTRIES.
const EnvPrefix = "passmeter"

type Config struct {
	Server    ServerConfig    `mapstructure:"server" envconfig:"server"`
	Log       LogConfig       `mapstructure:"log" envconfig:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" envconfig:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors" envconfig:"cors"`
	Strength  StrengthConfig  `mapstructure:"strength" envconfig:"strength"`
	History   HistoryConfig   `mapstructure:"history" envconfig:"history"`
	Database  DatabaseConfig  `mapstructure:"database" envconfig:"database"`
	Redis     RedisConfig     `mapstructure:"redis" envconfig:"redis"`
	Metrics   MetricsConfig   `mapstructure:"metrics" envconfig:"metrics"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" split_words:"true" validate:"min=1,max=65535"`
	Mode            string        `mapstructure:"mode" split_words:"true" validate:"oneof=debug release test"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" split_words:"true" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" split_words:"true" validate:"gt=0"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" split_words:"true" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" split_words:"true" validate:"gt=0"`
}

type LogConfig struct {
	Level string `mapstructure:"level" split_words:"true"`
	JSON  bool   `mapstructure:"json" split_words:"true"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled" split_words:"true"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" split_words:"true" validate:"gte=0"`
	Burst             int     `mapstructure:"burst" split_words:"true" validate:"gte=0"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" split_words:"true"`
	AllowedMethods []string `mapstructure:"allowed_methods" split_words:"true"`
	AllowedHeaders []string `mapstructure:"allowed_headers" split_words:"true"`
}

type StrengthConfig struct {
	// LexiconFile optionally replaces the built-in word lists.
	LexiconFile string `mapstructure:"lexicon_file" split_words:"true"`
	// UserInputs are site-specific words the estimator penalizes.
	UserInputs []string `mapstructure:"user_inputs" split_words:"true"`
}

type HistoryConfig struct {
	Backend       string        `mapstructure:"backend" split_words:"true" validate:"oneof=memory redis postgres"`
	MaxEntries    int           `mapstructure:"max_entries" split_words:"true" validate:"min=1,max=1000"`
	Retention     time.Duration `mapstructure:"retention" split_words:"true" validate:"gt=0"`
	PruneInterval time.Duration `mapstructure:"prune_interval" split_words:"true" validate:"gt=0"`
	// SealKey is a base64 32-byte key. Empty generates an ephemeral key.
	SealKey string `mapstructure:"seal_key" split_words:"true"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host" split_words:"true"`
	Port         int    `mapstructure:"port" split_words:"true"`
	User         string `mapstructure:"user" split_words:"true"`
	Password     string `mapstructure:"password" split_words:"true"`
	Name         string `mapstructure:"name" split_words:"true"`
	SSLMode      string `mapstructure:"sslmode" split_words:"true"`
	MaxOpenConns int    `mapstructure:"max_open_conns" split_words:"true"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" split_words:"true"`
}

// DSN renders the lib/pq connection URL.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr" split_words:"true"`
	Password  string `mapstructure:"password" split_words:"true"`
	DB        int    `mapstructure:"db" split_words:"true"`
	KeyPrefix string `mapstructure:"key_prefix" split_words:"true"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled" split_words:"true"`
	Namespace string `mapstructure:"namespace" split_words:"true" validate:"required"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.request_timeout", 5*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.burst", 40)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Origin", "Content-Type", "Accept", "X-Client-ID", "X-Request-ID"})

	v.SetDefault("strength.user_inputs", []string{"passmeter"})

	v.SetDefault("history.backend", "memory")
	v.SetDefault("history.max_entries", 50)
	v.SetDefault("history.retention", 30*24*time.Hour)
	v.SetDefault("history.prune_interval", time.Hour)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "passmeter")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.key_prefix", "passmeter:history:")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "passmeter")
}

// Load reads configuration from path, or from config.yaml in . or ./config
// when path is empty. A missing default file is not an error. PASSMETER_*
// environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment: %w", err)
	}

	cfg.History.Backend = strings.ToLower(cfg.History.Backend)
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
