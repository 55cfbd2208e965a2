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

const sample = `
[server]
http_port = 9090

[database]
host = "db"
user = "petcare"
password = "secret"
dbname = "petcare"

[pet_registry]
url = "http://pets:8081"

[scheduling]
default_step_minutes = 30
day_location = "Europe/Moscow"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 30, cfg.Scheduling.DefaultStepMinutes)
	assert.Equal(t, 10*time.Second, cfg.Redis.LockTTL())

	loc, err := cfg.Scheduling.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PETCARE_DATABASE_PASSWORD", "from-env")
	t.Setenv("PETCARE_SCHEDULING_DEFAULT_STEP_MINUTES", "20")
	t.Setenv("PETCARE_REDIS_ENABLED", "true")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 20, cfg.Scheduling.DefaultStepMinutes)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoad_Invalid(t *testing.T) {
	body := sample + "\n[rate_limit]\nenabled = true\nrps = 0\n"
	body = strings.Replace(body, "default_step_minutes = 30", "default_step_minutes = 0", 1)

	_, err := Load(writeConfig(t, body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_step_minutes")
	assert.Contains(t, err.Error(), "rate_limit")
}

func TestLoad_TrustedProxies(t *testing.T) {
	body := sample + "\n[rate_limit]\nenabled = true\nrps = 5\nburst = 10\ntrusted_proxies = [\"10.0.0.0/8\", \"127.0.0.1\"]\n"

	cfg, err := Load(writeConfig(t, body))
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.RateLimit.TrustedProxies)
	assert.Equal(t, 600, cfg.RateLimit.IdleTTL)

	body = strings.Replace(body, "127.0.0.1", "proxy.local", 1)
	_, err = Load(writeConfig(t, body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trusted_proxies")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "petcare", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/petcare?sslmode=disable", c.DSN())
}
