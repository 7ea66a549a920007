package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot transport settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"TELEGRAM_BOT_TOKEN"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
	// SenderWorkers bounds concurrent outbound Bot API calls.
	SenderWorkers int `yaml:"sender_workers" envconfig:"TELEGRAM_SENDER_WORKERS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// WeatherConfig configures the weather provider client.
type WeatherConfig struct {
	APIKey         string `yaml:"api_key" envconfig:"WEATHER_API_KEY"`
	BaseURL        string `yaml:"base_url" envconfig:"WEATHER_BASE_URL"`
	Lang           string `yaml:"lang" envconfig:"WEATHER_LANG"`
	TimeoutSeconds int    `yaml:"timeout_seconds" envconfig:"WEATHER_TIMEOUT_SECONDS"`
}

// PhotosConfig configures the direct photo download fallback.
type PhotosConfig struct {
	FetchTimeoutSeconds int   `yaml:"fetch_timeout_seconds" envconfig:"PHOTO_FETCH_TIMEOUT_SECONDS"`
	MaxBytes            int64 `yaml:"max_bytes" envconfig:"PHOTO_MAX_BYTES"`
}

// CatalogConfig selects where the city catalog is loaded from.
type CatalogConfig struct {
	Source string `yaml:"source" envconfig:"CATALOG_SOURCE"`
	Path   string `yaml:"path" envconfig:"CATALOG_PATH"`
}

// DatabaseConfig holds Postgres settings used by the "postgres" catalog source.
type DatabaseConfig struct {
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
	MigrationsDir  string `yaml:"migrations_dir" envconfig:"DB_MIGRATIONS_DIR"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format      string `yaml:"format" envconfig:"LOG_FORMAT"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample" envconfig:"LOG_DEBUG_SAMPLE"`
	Dir         string `yaml:"dir" envconfig:"LOG_DIR"`
	BotFile     string `yaml:"bot_file" envconfig:"LOG_FILE"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile" envconfig:"LOG_PROFILE"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	// CatalogBuiltin uses the compiled-in city table.
	CatalogBuiltin = "builtin"
	// CatalogFile reads cities from a YAML file.
	CatalogFile = "file"
	// CatalogPostgres reads cities from the database.
	CatalogPostgres = "postgres"
)

const (
	defaultWeatherBaseURL = "https://api.weatherapi.com/v1"
	defaultWeatherLang    = "ru"
	defaultTimeoutSeconds = 10
	defaultPhotoMaxBytes  = 10 << 20
	defaultMigrationsDir  = "migrations"
)

// Config aggregates the bot configuration.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Weather  WeatherConfig  `yaml:"weather"`
	Photos   PhotosConfig   `yaml:"photos"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Load reads an optional .env file, an optional YAML file and the environment.
// A missing YAML file is not an error: the bot can be configured from the
// environment alone.
func Load(path string) (*Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse YAML config: %w", err)
			}
		}
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates required fields and fills defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	cfg.Telegram.Token = strings.TrimSpace(cfg.Telegram.Token)
	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required (TELEGRAM_BOT_TOKEN)")
	}
	cfg.Weather.APIKey = strings.TrimSpace(cfg.Weather.APIKey)
	if cfg.Weather.APIKey == "" {
		return fmt.Errorf("weather api key is required (WEATHER_API_KEY)")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" || rm == "polling" {
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if strings.TrimSpace(cfg.Weather.BaseURL) == "" {
		cfg.Weather.BaseURL = defaultWeatherBaseURL
	}
	cfg.Weather.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Weather.BaseURL), "/")
	if strings.TrimSpace(cfg.Weather.Lang) == "" {
		cfg.Weather.Lang = defaultWeatherLang
	}
	if cfg.Weather.TimeoutSeconds <= 0 {
		cfg.Weather.TimeoutSeconds = defaultTimeoutSeconds
	}
	if cfg.Photos.FetchTimeoutSeconds <= 0 {
		cfg.Photos.FetchTimeoutSeconds = defaultTimeoutSeconds
	}
	if cfg.Photos.MaxBytes <= 0 {
		cfg.Photos.MaxBytes = defaultPhotoMaxBytes
	}

	src := strings.ToLower(strings.TrimSpace(cfg.Catalog.Source))
	if src == "" {
		src = CatalogBuiltin
	}
	switch src {
	case CatalogBuiltin:
	case CatalogFile:
		if strings.TrimSpace(cfg.Catalog.Path) == "" {
			return fmt.Errorf("catalog.path is required when catalog.source is 'file'")
		}
	case CatalogPostgres:
		if strings.TrimSpace(cfg.Database.Host) == "" || strings.TrimSpace(cfg.Database.Name) == "" {
			return fmt.Errorf("database.host and database.name are required when catalog.source is 'postgres'")
		}
		if cfg.Database.SSLMode == "" {
			cfg.Database.SSLMode = "disable"
		}
		if cfg.Database.MaxConnections <= 0 {
			cfg.Database.MaxConnections = 2
		}
		if cfg.Database.MigrationsDir == "" {
			cfg.Database.MigrationsDir = defaultMigrationsDir
		}
	default:
		return fmt.Errorf("invalid catalog.source %q; allowed: builtin, file, postgres", cfg.Catalog.Source)
	}
	cfg.Catalog.Source = src
	return nil
}

// DatabaseEnabled reports whether the configuration requires a database connection.
func (c *Config) DatabaseEnabled() bool {
	return c != nil && c.Catalog.Source == CatalogPostgres
}
