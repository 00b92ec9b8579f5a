package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/karyawanmag/content-api/internal/media"
	"github.com/karyawanmag/content-api/pkg/config/env"
	"github.com/karyawanmag/content-api/pkg/utils"
	"gopkg.in/yaml.v3"
)

type StorageType string

const (
	StorageTypePg    StorageType = "pg"
	StorageTypeInMem StorageType = "in_mem"
)

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type AppConfig struct {
	ENV string
}

type ContentAPIConfig struct {
	StorageType StorageType
	Postgres    struct {
		ConnectionString string
	}
	Search struct {
		Enabled   bool     `yaml:"enabled"`
		Addresses []string `yaml:"addresses"`
		Username  string   `yaml:"username"`
		Password  string   `yaml:"password"`
		IndexName string   `yaml:"index"`
	} `yaml:"search"`
	Media struct {
		CloudinaryURL string
		Domain        string `yaml:"domain"`
		Folder        string `yaml:"folder"`
	} `yaml:"media"`
	Auth struct {
		JWTSecret string
		TokenTTL  time.Duration
	}
}

func (as *AppConfig) Load() (*ContentAPIConfig, error) {
	if err := env.LoadDotEnv(as.ENV, "cmd/content_api/.env"); err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	cfg := &ContentAPIConfig{}

	cfg.StorageType = StorageType(os.Getenv("STORAGE_TYPE"))
	if cfg.StorageType == "" {
		cfg.StorageType = StorageTypePg
	}
	switch cfg.StorageType {
	case StorageTypePg:
		cfg.Postgres.ConnectionString = os.Getenv("DATABASE_URL")
		if cfg.Postgres.ConnectionString == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
		}
	case StorageTypeInMem:
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.StorageType)
	}

	cfg.Search.Enabled = os.Getenv("SEARCH_ENABLED") == "true"
	cfg.Search.Addresses = utils.SplitTrimmed(os.Getenv("ELASTICSEARCH_ADDRESSES"), ",")
	cfg.Search.Username = os.Getenv("ELASTICSEARCH_USERNAME")
	cfg.Search.Password = os.Getenv("ELASTICSEARCH_PASSWORD")
	cfg.Search.IndexName = os.Getenv("ELASTICSEARCH_INDEX")
	if cfg.Search.IndexName == "" {
		cfg.Search.IndexName = "articles"
	}

	cfg.Media.CloudinaryURL = os.Getenv("CLOUDINARY_URL")
	if cfg.Media.CloudinaryURL == "" {
		return nil, fmt.Errorf("CLOUDINARY_URL environment variable is not set")
	}
	cfg.Media.Domain = os.Getenv("MEDIA_DOMAIN")
	if cfg.Media.Domain == "" {
		cfg.Media.Domain = media.DefaultDomain
	}
	cfg.Media.Folder = os.Getenv("MEDIA_FOLDER")
	if cfg.Media.Folder == "" {
		cfg.Media.Folder = media.DefaultFolder
	}

	cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	cfg.Auth.TokenTTL = 24 * time.Hour
	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL_HOURS: %s", v)
		}
		cfg.Auth.TokenTTL = time.Duration(hours) * time.Hour
	}

	// An optional YAML file overlays the media and search sections.
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cfg.applyYAML(path); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	return cfg, nil
}

func (c *ContentAPIConfig) applyYAML(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	return decoder.Decode(c)
}
