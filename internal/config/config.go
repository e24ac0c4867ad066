package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix          = "CYCLECAST"
	minSecretKeyLength = 32
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

var (
	ErrSecretKeyMissing  = errors.New("security.secret_key is required")
	ErrSecretKeyInsecure = errors.New("security.secret_key uses a placeholder value")
	ErrSecretKeyTooShort = fmt.Errorf("security.secret_key must be at least %d characters", minSecretKeyLength)
	ErrInvalidPort       = errors.New("server.port must be between 1 and 65535")
	ErrInvalidTimezone   = errors.New("app.timezone is not a known location")
)

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	CookieSecure    bool          `mapstructure:"cookie_secure"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type SecurityConfig struct {
	SecretKey  string        `mapstructure:"secret_key"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type AppConfig struct {
	Timezone        string `mapstructure:"timezone"`
	DefaultLanguage string `mapstructure:"default_language"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type RemindersConfig struct {
	TelegramBotToken   string        `mapstructure:"telegram_bot_token"`
	TelegramChatID     string        `mapstructure:"telegram_chat_id"`
	PeriodReminderDays int           `mapstructure:"period_reminder_days"`
	FertilityReminder  bool          `mapstructure:"fertility_reminder"`
	Interval           time.Duration `mapstructure:"interval"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Security  SecurityConfig  `mapstructure:"security"`
	App       AppConfig       `mapstructure:"app"`
	Log       LogConfig       `mapstructure:"log"`
	Reminders RemindersConfig `mapstructure:"reminders"`
}

// Load reads defaults, then the optional YAML file, then CYCLECAST_*
// environment variables. An empty configFile looks for cyclecast.yaml in the
// working directory and tolerates its absence.
func Load(configFile string) (Config, error) {
	var config Config

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return config, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("cyclecast")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return config, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("decode config: %w", err)
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.cookie_secure", false)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.path", filepath.Join("data", "cyclecast.db"))

	v.SetDefault("security.secret_key", "")
	v.SetDefault("security.session_ttl", 12*time.Hour)

	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("app.default_language", "en")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("reminders.telegram_bot_token", "")
	v.SetDefault("reminders.telegram_chat_id", "")
	v.SetDefault("reminders.period_reminder_days", 2)
	v.SetDefault("reminders.fertility_reminder", true)
	v.SetDefault("reminders.interval", 6*time.Hour)
}

// Validate checks the settings every command relies on.
func (config Config) Validate() error {
	port, err := strconv.Atoi(strings.TrimSpace(config.Server.Port))
	if err != nil || port < 1 || port > 65535 {
		return ErrInvalidPort
	}
	if _, err := config.Location(); err != nil {
		return err
	}
	return nil
}

// ValidateSecretKey is only required by commands that issue session tokens.
func (config Config) ValidateSecretKey() error {
	secret := strings.TrimSpace(config.Security.SecretKey)
	if secret == "" {
		return ErrSecretKeyMissing
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return ErrSecretKeyInsecure
	}
	if len(secret) < minSecretKeyLength {
		return ErrSecretKeyTooShort
	}
	return nil
}

func (config Config) Location() (*time.Location, error) {
	location, err := time.LoadLocation(strings.TrimSpace(config.App.Timezone))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, config.App.Timezone)
	}
	return location, nil
}
