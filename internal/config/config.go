package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"GALLERY_ENV" env-default:"production"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Log        Log        `yaml:"log"`
	MinIO      MinIO      `yaml:"minio"`
	Metadata   Metadata   `yaml:"metadata"`
	Gallery    Gallery    `yaml:"gallery"`
	AdminToken string     `yaml:"admin_token" env:"GALLERY_ADMIN_TOKEN"`
}

type HTTPServer struct {
	Address        string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"HTTP_REQUEST_TIMEOUT" env-default:"15s"`
	// AllowedOrigins enables CORS for browser clients; empty disables it.
	AllowedOrigins []string `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-separator:","`
}

type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

type MinIO struct {
	Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT" env-required:"true"`
	AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY" env-required:"true"`
	SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY" env-required:"true"`
	Bucket    string `yaml:"bucket" env:"MINIO_BUCKET" env-default:"media"`
	// UseSSL accepts "auto", "true" or "false"; auto disables TLS for local endpoints.
	UseSSL string `yaml:"use_ssl" env:"MINIO_USE_SSL" env-default:"auto"`
	// PublicBaseURL overrides the scheme://endpoint/bucket base used for object URLs.
	PublicBaseURL string `yaml:"public_base_url" env:"MINIO_PUBLIC_BASE_URL"`
}

type Metadata struct {
	Driver         string        `yaml:"driver" env:"METADATA_DRIVER" env-default:"postgres"`
	DSN            string        `yaml:"dsn" env:"METADATA_DSN" env-required:"true"`
	MaxConns       int32         `yaml:"max_conns" env:"METADATA_MAX_CONNS" env-default:"10"`
	MinConns       int32         `yaml:"min_conns" env:"METADATA_MIN_CONNS" env-default:"1"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"METADATA_CONNECT_TIMEOUT" env-default:"5s"`
}

type Gallery struct {
	RootPrefix    string `yaml:"root_prefix" env:"GALLERY_ROOT_PREFIX" env-default:"gallery"`
	MaxObjects    int    `yaml:"max_objects" env:"GALLERY_MAX_OBJECTS" env-default:"1000"`
	RecentDefault int    `yaml:"recent_default" env:"GALLERY_RECENT_DEFAULT" env-default:"6"`
	RecentMax     int    `yaml:"recent_max" env:"GALLERY_RECENT_MAX" env-default:"50"`
}

// Load reads path (YAML) when non-empty, then overlays the environment.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad resolves the config path from CONFIG_PATH or -config and exits on error.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		flags := flag.String("config", "", "Path to config file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("config: %s", err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Metadata.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported metadata driver %q", c.Metadata.Driver)
	}
	switch c.MinIO.UseSSL {
	case "auto", "true", "false":
	default:
		return fmt.Errorf("minio.use_ssl must be auto, true or false, got %q", c.MinIO.UseSSL)
	}
	c.Gallery.RootPrefix = strings.Trim(strings.TrimSpace(c.Gallery.RootPrefix), "/")
	if c.Gallery.RootPrefix == "" {
		return fmt.Errorf("gallery.root_prefix must not be empty")
	}
	if c.Gallery.MaxObjects <= 0 {
		return fmt.Errorf("gallery.max_objects must be positive")
	}
	if c.Gallery.RecentDefault <= 0 || c.Gallery.RecentMax < c.Gallery.RecentDefault {
		return fmt.Errorf("gallery.recent_default must be positive and not exceed recent_max")
	}
	return nil
}
