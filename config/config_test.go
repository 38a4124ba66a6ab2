package config

import (
	"testing"

	"food-delivery-dashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "database", cfg.StoreBackend)
	assert.Equal(t, "database", cfg.AuthProvider)
	assert.Equal(t, 24, cfg.JWTExpirationHours)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATA_SOURCE", "seeded")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "seeded", cfg.DataSource)
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSOrigins: " http://a.test, ,http://b.test "}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}

func TestInitDB_Migrates(t *testing.T) {
	db, err := InitDB(":memory:")
	require.NoError(t, err)

	for _, m := range []any{&models.User{}, &models.Project{}, &models.Order{}, &models.KVEntry{}} {
		assert.True(t, db.Migrator().HasTable(m))
	}
}
