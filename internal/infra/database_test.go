package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hbnb/internal/config"
	"hbnb/internal/models/db_models"
)

func TestOpenDatabaseSQLiteMemory(t *testing.T) {
	db, err := OpenDatabase(&config.Config{
		DatabaseType: config.DatabaseSQLite,
		DatabaseURL:  ":memory:",
	})
	require.NoError(t, err)
	defer CloseDatabase(db)

	for _, model := range db_models.All() {
		assert.True(t, db.Migrator().HasTable(model), "%T", model)
	}

	country := &db_models.Country{Code: "FR", Name: "France"}
	require.NoError(t, db.Create(country).Error)
	assert.NotZero(t, country.CreatedAt)

	var got db_models.Country
	require.NoError(t, db.First(&got, "code = ?", "FR").Error)
	assert.Equal(t, country.ID, got.ID)
}

func TestOpenDatabaseRejectsUnknownDriver(t *testing.T) {
	_, err := OpenDatabase(&config.Config{DatabaseType: "oracle", DatabaseURL: "x"})
	assert.Error(t, err)
}

func TestDialectorStripsSQLAlchemyPrefix(t *testing.T) {
	d, err := dialectorFor(config.DatabaseSQLite, "sqlite:///development.db")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())
	assert.True(t, isMemorySQLite("sqlite", "file::memory:?cache=shared"))
	assert.False(t, isMemorySQLite("postgres", ":memory:"))
}
