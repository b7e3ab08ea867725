package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	// when
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	// then
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "fintrack", cfg.Database.Schema)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, int32(2), cfg.Database.MinConns)
	assert.Empty(t, cfg.Database.Migrations)
	assert.False(t, cfg.Validation.DuplicateCheckIncludesYear)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), "application.yaml")
	content := `
server:
  port: 9090
db:
  host: db.internal
  name: ledger
validation:
  duplicatecheckincludesyear: true
auth:
  tokenttl: 2h
  bootstrap:
    username: admin
    password: secret
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	// when
	cfg, err := Load(path)

	// then
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "ledger", cfg.Database.Name)
	assert.Equal(t, "fintrack", cfg.Database.User)
	assert.True(t, cfg.Validation.DuplicateCheckIncludesYear)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "admin", cfg.Auth.Bootstrap.Username)
	assert.Equal(t, "secret", cfg.Auth.Bootstrap.Password)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), "application.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db:\n  host: from-file\n"), 0644))
	t.Setenv("FINTRACK_DB_HOST", "from-env")
	t.Setenv("FINTRACK_SERVER_PORT", "7070")

	// when
	cfg, err := Load(path)

	// then
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Host)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_InvalidYaml(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), "application.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0644))

	// when
	_, err := Load(path)

	// then
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidSettings(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), "application.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auth:\n  bootstrap:\n    username: admin\n"), 0644))

	// when
	_, err := Load(path)

	// then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.bootstrap.password")
}

func TestApplication_Validate(t *testing.T) {
	tests := map[string]func(*Application){
		"port zero":        func(a *Application) { a.Server.Port = 0 },
		"port too high":    func(a *Application) { a.Server.Port = 70000 },
		"zero token ttl":   func(a *Application) { a.Auth.TokenTTL = 0 },
		"min above max":    func(a *Application) { a.Database.MinConns = 30 },
		"bootstrap no pwd": func(a *Application) { a.Auth.Bootstrap.Username = "admin" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Defaults()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Defaults().Validate())
}

func TestEnvKey(t *testing.T) {
	key, value := envKey("FINTRACK_AUTH_BOOTSTRAP_USERNAME", "admin")

	assert.Equal(t, "auth.bootstrap.username", key)
	assert.Equal(t, "admin", value)
}
