package infrastructure

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv      string `mapstructure:"app_env"`
	LogLevel    string `mapstructure:"log_level"`
	HTTPAddr    string `mapstructure:"http_addr"`
	DatabaseURL string `mapstructure:"database_url"`
	RabbitMQURL string `mapstructure:"rabbitmq_url"`
}

var configKeys = []string{"app_env", "log_level", "http_addr", "database_url", "rabbitmq_url"}

// LoadConfig reads the optional YAML file at path, then lets environment
// variables (APP_ENV, DATABASE_URL, ...) override it.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_addr", ":3001")

	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigType("yaml")
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is not set")
	}
	return cfg, nil
}
