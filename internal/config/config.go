package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort             int           `mapstructure:"APP_PORT"`
	OllamaURL           string        `mapstructure:"OLLAMA_URL"`
	DataDir             string        `mapstructure:"DATA_DIR"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`
	ConnectTimeout      time.Duration `mapstructure:"CONNECT_TIMEOUT"`
	WriteTimeout        time.Duration `mapstructure:"WRITE_TIMEOUT"`
	ReadTimeout         time.Duration `mapstructure:"READ_TIMEOUT"`
	CallTimeout         time.Duration `mapstructure:"CALL_TIMEOUT"`
	StatusDuration      time.Duration `mapstructure:"STATUS_DURATION"`
	OllamaProbeAttempts int           `mapstructure:"OLLAMA_PROBE_ATTEMPTS"`
}

// ChatsDir holds one JSON file per chatroom.
func (c *Config) ChatsDir() string { return filepath.Join(c.DataDir, "chats") }

// ModelsDir holds the cached model list.
func (c *Config) ModelsDir() string { return filepath.Join(c.DataDir, "models") }

// SettingsDBPath is the SQLite file backing the settings store.
func (c *Config) SettingsDBPath() string { return filepath.Join(c.DataDir, "settings.db") }

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("OLLAMA_URL", "http://localhost:11434")
	viper.SetDefault("DATA_DIR", defaultDataDir())
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("CONNECT_TIMEOUT", "30s")
	viper.SetDefault("WRITE_TIMEOUT", "30s")
	viper.SetDefault("READ_TIMEOUT", "300s")
	viper.SetDefault("CALL_TIMEOUT", "600s")
	viper.SetDefault("STATUS_DURATION", "1s")
	viper.SetDefault("OLLAMA_PROBE_ATTEMPTS", 3)

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".guillama"
	}
	return filepath.Join(home, ".guillama")
}
