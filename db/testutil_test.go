package db

import (
	"context"
	"testing"

	"taskboard-api/config"
	"taskboard-api/models"

	"github.com/stretchr/testify/require"
)

// setupTestDB crea una base de datos SQLite en memoria con el esquema y los
// roles por defecto
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	ctx := context.Background()

	database, err := OpenDSN(ctx, config.DriverSQLite, "file::memory:?_foreign_keys=on")
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() {
		_ = database.Close()
	})

	require.NoError(t, database.Migrate(ctx), "Failed to run migrations")
	require.NoError(t, database.SeedRoles(ctx, DefaultRoles), "Failed to seed roles")

	return database
}

func createTestUser(t *testing.T, database *Database, username string) *models.User {
	t.Helper()
	user, err := NewUserRepository(database).Create(context.Background(), models.User{
		Username: username,
		Password: "hash",
		Role:     "user",
	})
	require.NoError(t, err, "Failed to create user %s", username)
	return user
}
