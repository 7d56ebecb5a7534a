package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "env: development\n"))
	require.NoError(t, err)

	assert.Equal(t, 2233, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Contains(t, cfg.DSN, "root:password@tcp(127.0.0.1:3306)/translearn")
	assert.Contains(t, cfg.DSN, "parseTime=true")
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoadExplicitValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
port: 8080
env: Production
jwt_secret: "  s3cret  "
allowed_origins:
  - "https://app.example.com"
  - "   "
database:
  host: db.internal
  port: 3307
  user: translearn
  password: pw
  name: translearn_prod
redis:
  host: cache.internal
  port: 6380
  db: 2
ai:
  providers:
    - id: main
      type: Anthropic
      api_key: sk-test
      enabled: true
  grading_model:
    provider_id: main
    model: claude-haiku-4-5-20251001
`))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.AllowedOrigins)
	assert.Contains(t, cfg.DSN, "translearn:pw@tcp(db.internal:3307)/translearn_prod")
	assert.Equal(t, "redis://cache.internal:6380/2", cfg.RedisURL)

	require.Len(t, cfg.AI.Providers, 1)
	assert.Equal(t, "main", cfg.AI.Providers[0].ID)
	require.NotNil(t, cfg.AI.GradingModel)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.AI.GradingModel.Model)
}

func TestLoadExplicitDSNWins(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
dsn: "user:pw@tcp(somewhere:3306)/db?parseTime=true"
redis_url: "rediss://cache:6380/1"
`))
	require.NoError(t, err)

	assert.Equal(t, "user:pw@tcp(somewhere:3306)/db?parseTime=true", cfg.DSN)
	assert.Equal(t, "rediss://cache:6380/1", cfg.RedisURL)
}

func TestLoadInvalidPort(t *testing.T) {
	_, err := Load(writeConfig(t, "port: 70000\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "database:\n  port: -1\n"))
	assert.Error(t, err)
}

func TestLoadUnknownFieldRejected(t *testing.T) {
	_, err := Load(writeConfig(t, "prot: 8080\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestRedisURLValueWithAuth(t *testing.T) {
	c := RedisConfig{Host: "cache", Port: 6379, Username: "u", Password: "p", DB: 1, TLS: true}
	assert.Equal(t, "rediss://u:p@cache:6379/1", c.URLValue())
}
