package utils

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Database DatabaseConfig
	Token    TokenConfig
	Remote   RemoteConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	SeedOnStart bool
}

// StoreConfig selects the record store engine. Path is used by sqlite only.
type StoreConfig struct {
	Driver string
	Path   string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// DefaultTokenSecret is a placeholder; a server must not sign tokens with it.
const DefaultTokenSecret = "change-me"

var ErrInsecureTokenSecret = errors.New("TOKEN_SECRET is empty or left at its default")

type TokenConfig struct {
	Secret      string
	ExpiryHours int
}

// Validate rejects signing keys anyone could guess.
func (t TokenConfig) Validate() error {
	if strings.TrimSpace(t.Secret) == "" || t.Secret == DefaultTokenSecret {
		return ErrInsecureTokenSecret
	}
	return nil
}

// RemoteConfig tunes the simulated remote API.
type RemoteConfig struct {
	BaseURL      string
	NetworkDelay time.Duration
	SyncInterval time.Duration
}

// LoadConfig reads .env when present, then the environment, then defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	v.SetDefault("APP_NAME", "food-ordering")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("SEED_ON_START", true)
	v.SetDefault("STORE_DRIVER", "sqlite")
	v.SetDefault("STORE_PATH", "data/livraison.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("TOKEN_SECRET", DefaultTokenSecret)
	v.SetDefault("TOKEN_EXPIRY_HOURS", 24)
	v.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("NETWORK_DELAY_MS", 300)
	v.SetDefault("SYNC_INTERVAL_SECONDS", 60)

	// .env is optional; the environment and defaults are enough to run.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Port:        v.GetString("PORT"),
			Debug:       v.GetBool("DEBUG"),
			LogPath:     v.GetString("LOG_PATH"),
			SeedOnStart: v.GetBool("SEED_ON_START"),
		},
		Store: StoreConfig{
			Driver: v.GetString("STORE_DRIVER"),
			Path:   v.GetString("STORE_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Token: TokenConfig{
			Secret:      v.GetString("TOKEN_SECRET"),
			ExpiryHours: v.GetInt("TOKEN_EXPIRY_HOURS"),
		},
		Remote: RemoteConfig{
			BaseURL:      v.GetString("API_BASE_URL"),
			NetworkDelay: time.Duration(v.GetInt("NETWORK_DELAY_MS")) * time.Millisecond,
			SyncInterval: time.Duration(v.GetInt("SYNC_INTERVAL_SECONDS")) * time.Second,
		},
	}

	return config, nil
}
