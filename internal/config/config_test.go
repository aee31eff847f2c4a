package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
env: development
http_server:
  address: ":9090"
  request_timeout: 5s
  allowed_origins:
    - https://gallery.example.com
minio:
  endpoint: localhost:9000
  access_key: minioadmin
  secret_key: minioadmin
  bucket: photos
metadata:
  driver: mysql
  dsn: "gallery:secret@tcp(localhost:3306)/gallery?parseTime=true"
gallery:
  root_prefix: gallery
  max_objects: 500
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FromYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":9090", cfg.HTTPServer.Address)
	assert.Equal(t, 5*time.Second, cfg.HTTPServer.RequestTimeout)
	assert.Equal(t, []string{"https://gallery.example.com"}, cfg.HTTPServer.AllowedOrigins)
	assert.Equal(t, "photos", cfg.MinIO.Bucket)
	assert.Equal(t, "auto", cfg.MinIO.UseSSL)
	assert.Equal(t, "mysql", cfg.Metadata.Driver)
	assert.Equal(t, 500, cfg.Gallery.MaxObjects)
	assert.Equal(t, 6, cfg.Gallery.RecentDefault)
	assert.Equal(t, 50, cfg.Gallery.RecentMax)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	body := strings.Replace(sampleYAML, "driver: mysql", "driver: oracle", 1)

	_, err := Load(writeConfig(t, body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestLoad_TrimsRootPrefixSlashes(t *testing.T) {
	for _, prefix := range []string{"gallery/", "/gallery", "/gallery/"} {
		body := strings.Replace(sampleYAML, "root_prefix: gallery", "root_prefix: "+prefix, 1)

		cfg, err := Load(writeConfig(t, body))
		require.NoError(t, err, prefix)
		assert.Equal(t, "gallery", cfg.Gallery.RootPrefix, prefix)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(writeConfig(t, sampleYAML))
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty root prefix", func(c *Config) { c.Gallery.RootPrefix = "" }},
		{"slash-only root prefix", func(c *Config) { c.Gallery.RootPrefix = "//" }},
		{"zero max objects", func(c *Config) { c.Gallery.MaxObjects = 0 }},
		{"recent default above max", func(c *Config) { c.Gallery.RecentDefault = 60 }},
		{"bad ssl mode", func(c *Config) { c.MinIO.UseSSL = "yes" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.Error(t, cfg.validate())
		})
	}
}
