package helper

import (
	"net/url"
	"testing"

	"hotel/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "test_"
	cfg.DB.Postgres.MigrationTable = "schema_migrations"
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Name = "hotel"
	cfg.DB.Postgres.Write.Username = "app"
	cfg.DB.Postgres.Write.Password = "p@ss:word"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	parsed, err := url.Parse(databaseURL(cfg))
	require.NoError(t, err)

	password, _ := parsed.User.Password()

	assert.Equal(t, "postgres", parsed.Scheme)
	assert.Equal(t, "db:5432", parsed.Host)
	assert.Equal(t, "/test_hotel", parsed.Path)
	assert.Equal(t, "p@ss:word", password)
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
	assert.Equal(t, "schema_migrations", parsed.Query().Get("x-migrations-table"))
}

func TestRunner_UnknownAction(t *testing.T) {
	assert.ErrorContains(t, Runner(&config.Config{}, "sideways"), "unknown migration action")
}
