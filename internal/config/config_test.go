package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("REPOSITORY", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("DEV_DATABASE_URL", "")
	t.Setenv("DEV_DATABASE_TYPE", "")

	cfg := Load()

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, RepositoryMemory, cfg.Repository)
	assert.Equal(t, DatabaseSQLite, cfg.DatabaseType)
	assert.Equal(t, "development.db", cfg.DatabaseURL)
	assert.True(t, cfg.Debug)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
}

func TestLoadEnvironmentSpecificDatabase(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "postgresql://fallback")
	t.Setenv("PROD_DATABASE_URL", "postgresql://prod")
	t.Setenv("PROD_DATABASE_TYPE", "Postgres")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.Debug)
	assert.Equal(t, "postgresql://prod", cfg.DatabaseURL)
	assert.Equal(t, DatabasePostgres, cfg.DatabaseType)
}

func TestLoadRepositorySelection(t *testing.T) {
	cases := map[string]string{
		"db":      RepositoryDB,
		"FILE":    RepositoryFile,
		"pickle":  RepositoryPickle,
		"memory":  RepositoryMemory,
		"unknown": RepositoryMemory,
	}
	for in, want := range cases {
		t.Setenv("REPOSITORY", in)
		assert.Equal(t, want, Load().Repository, in)
	}
}

func TestLoadParsesDurationsAndLists(t *testing.T) {
	t.Setenv("JWT_TTL", "120")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg := Load()
	assert.Equal(t, 2*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)

	t.Setenv("JWT_TTL", "15m")
	assert.Equal(t, 15*time.Minute, Load().JWTTTL)
}

func TestLoadReadsConfigFileUnderEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hbnb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"8080\"\nrepository: file\ndebug: false\nadmin_email: root@example.com\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "")
	t.Setenv("REPOSITORY", "pickle")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, RepositoryPickle, cfg.Repository, "environment wins over the file")
	assert.False(t, cfg.Debug)
	assert.Equal(t, "root@example.com", cfg.AdminEmail)
}

func TestLoadDebugOverride(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DEBUG", "true")
	assert.True(t, Load().Debug)

	t.Setenv("APP_ENV", "")
	t.Setenv("DEBUG", "0")
	assert.False(t, Load().Debug)
}

func TestProductionRequiresJWTSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	assert.Empty(t, cfg.JWTSecret)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg = Load()
	assert.Equal(t, "a-real-secret", cfg.JWTSecret)
	assert.NoError(t, cfg.Validate())
}

func TestDevelopmentFallsBackToDevSecret(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.NoError(t, cfg.Validate())
}
