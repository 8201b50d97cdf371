package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the CLI and the view server need. The pipeline
// packages take plain values and never read configuration themselves.
type Config struct {
	App struct {
		Name         string `mapstructure:"name"`
		Description  string `mapstructure:"description"`
		URL          string `mapstructure:"url"`
		DonationLink string `mapstructure:"donation_link"`
		DefaultSkin  string `mapstructure:"default_skin"`
	} `mapstructure:"app"`
	Upload struct {
		MaxFileSize int64 `mapstructure:"max_file_size"`
	} `mapstructure:"upload"`
	Classifier struct {
		Deterministic bool `mapstructure:"deterministic"`
	} `mapstructure:"classifier"`
	Server struct {
		Addr           string   `mapstructure:"addr"`
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"server"`
}

// Defaults mirror the hosted app.
const (
	DefaultAppName      = "Archive Heart Timeline"
	DefaultDescription  = "Transform your Spotify listening history into an interactive, artistic emotional timeline"
	DefaultAppURL       = "https://tim3l1ne.vercel.app"
	DefaultDonationLink = "https://ko-fi.com/placeholder"
	DefaultSkin         = "ocean"
	DefaultMaxFileSize  = 10 * 1024 * 1024
	DefaultServerAddr   = ":8080"
)

var keys = []string{
	"app.name",
	"app.description",
	"app.url",
	"app.donation_link",
	"app.default_skin",
	"upload.max_file_size",
	"classifier.deterministic",
	"server.addr",
	"server.allowed_origins",
}

// Load reads .env (if any), TIMELINE_* environment variables and an
// optional timeline.yaml from the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return LoadWith(viper.New(), ".")
}

// LoadWith fills a Config from the given viper instance, searching
// configDir for timeline.yaml.
func LoadWith(v *viper.Viper, configDir string) (*Config, error) {
	v.SetEnvPrefix("TIMELINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	v.SetDefault("app.name", DefaultAppName)
	v.SetDefault("app.description", DefaultDescription)
	v.SetDefault("app.url", DefaultAppURL)
	v.SetDefault("app.donation_link", DefaultDonationLink)
	v.SetDefault("app.default_skin", DefaultSkin)
	v.SetDefault("upload.max_file_size", DefaultMaxFileSize)
	v.SetDefault("classifier.deterministic", false)
	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetConfigName("timeline")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read timeline.yaml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.Upload.MaxFileSize <= 0 {
		cfg.Upload.MaxFileSize = DefaultMaxFileSize
	}
	cfg.App.URL = strings.TrimRight(cfg.App.URL, "/")

	return &cfg, nil
}
