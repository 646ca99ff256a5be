package config

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
// Addic7ed rejects downloads coming from default client identifiers.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:147.0) Gecko/20100101 Firefox/147.0"

// DefaultDomain is the origin every request is sent to.
const DefaultDomain = "https://www.addic7ed.com"

type Config struct {
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	Addic7edDomain        string `mapstructure:"addic7ed_domain"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s", "1h", etc.
	ClientRetries         int    `mapstructure:"client_retries"`
	UserAgent             string `mapstructure:"user_agent"`
	LogLevel              string `mapstructure:"log_level"`
	Language              string `mapstructure:"language"`
	Concurrency           int    `mapstructure:"concurrency"`
	SelectionPolicy       string `mapstructure:"selection_policy"` // "first" or "strict"
	Cache                 struct {
		Provider string `mapstructure:"provider"` // "memory" or "redis"
		Size     int    `mapstructure:"size"`     // Maximum number of entries in the LRU cache
		TTL      string `mapstructure:"ttl"`      // Go duration string like "1h", "24h", etc.
		Redis    struct {
			Address  string `mapstructure:"address"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"cache"`
	Metrics struct {
		Textfile string `mapstructure:"textfile"`
	} `mapstructure:"metrics"`
	Sentry struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
}

var (
	mu           sync.RWMutex
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Status lines go to stdout, so logs are kept on stderr.
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: false,
	}).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addic7ed_domain", DefaultDomain)
	v.SetDefault("proxy_connection_string", "")
	v.SetDefault("client_timeout", "30s")
	v.SetDefault("client_retries", 0)
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("log_level", "info")
	v.SetDefault("language", "French")
	v.SetDefault("concurrency", 4)
	v.SetDefault("selection_policy", "first")
	v.SetDefault("cache.provider", "memory")
	v.SetDefault("cache.size", 512)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.db", 0)
}

// LoadConfig reads the configuration into v. When path is empty config.yaml is
// looked up in the working directory and ./config; a missing file is not an error.
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variable support
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Add specific environment variable for log level
	_ = v.BindEnv("log_level", "LOG_LEVEL")

	setDefaults(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.Addic7edDomain == "" {
		config.Addic7edDomain = DefaultDomain
	}

	return &config, nil
}

// Init loads the configuration, installs it globally and applies its log level.
func Init(v *viper.Viper, path string) (*Config, error) {
	cfg, err := LoadConfig(v, path)
	if err != nil {
		return nil, err
	}
	SetConfig(cfg)
	return cfg, nil
}

// SetConfig installs cfg as the global configuration and reconfigures the logger level.
func SetConfig(cfg *Config) {
	level := zerolog.InfoLevel // default
	if cfg.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", cfg.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)
	globalConfig = cfg
	logger.Debug().Str("level", level.String()).Msg("Logging configured")
}

// Default returns a configuration holding only default values.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if globalConfig == nil {
		return Default()
	}
	return globalConfig
}

func GetUserAgent() string {
	mu.RLock()
	defer mu.RUnlock()
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// ParseDuration parses value, falling back to def when it is empty or invalid.
func ParseDuration(name, value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		l := GetLogger()
		l.Warn().Err(err).Str(name, value).Dur("default", def).Msg("Invalid duration, using default")
		return def
	}
	return parsed
}
