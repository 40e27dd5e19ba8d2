package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 480, cfg.JWT.Expiration)
	assert.Equal(t, "sha256", cfg.Security.PasswordScheme)
	assert.Equal(t, "admin123", cfg.Seed.AdminPassword)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PASSWORD_SCHEME", "BCRYPT")
	t.Setenv("DB_PATH", "/tmp/x.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "bcrypt", cfg.Security.PasswordScheme)
	assert.Contains(t, cfg.DB.DSN(), "file:/tmp/x.db?")
	assert.Contains(t, cfg.DB.DSN(), "foreign_keys(1)")
}

func TestLoad_EsquemaInvalido(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PASSWORD_SCHEME", "md5")

	_, err := Load()
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
