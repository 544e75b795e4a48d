package db

import (
	"context"
	"testing"

	"taskboard-api/models"
	"taskboard-api/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateAndFind(t *testing.T) {
	database := setupTestDB(t)
	users := NewUserRepository(database)
	ctx := context.Background()

	hash, err := pkg.GeneratePassword("Secreto1*")
	require.NoError(t, err)
	image := "avatar.png"

	created, err := users.Create(ctx, models.User{Username: "ana", Password: hash, Role: "dev", ProfileImage: &image})
	require.NoError(t, err, "Failed to create user")
	assert.NotZero(t, created.ID, "User should have a valid ID")

	found, err := users.FindByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.NotEqual(t, "Secreto1*", found.Password, "stored password must not be the plaintext")
	assert.True(t, pkg.ComparePassword(found.Password, "Secreto1*"))
	assert.Equal(t, "dev", found.Role)
	require.NotNil(t, found.ProfileImage)
	assert.Equal(t, "avatar.png", *found.ProfileImage)

	_, err = users.FindByUsername(ctx, "ANA ")
	assert.ErrorIs(t, err, ErrNotFound, "lookup must be exact")
}

func TestUserDuplicateUsername(t *testing.T) {
	database := setupTestDB(t)
	users := NewUserRepository(database)
	ctx := context.Background()

	createTestUser(t, database, "ana")
	_, err := users.Create(ctx, models.User{Username: "ana", Password: "x", Role: "user"})
	require.ErrorIs(t, err, ErrDuplicate)

	list, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUserUnknownRoleRejectedByForeignKey(t *testing.T) {
	database := setupTestDB(t)
	users := NewUserRepository(database)

	_, err := users.Create(context.Background(), models.User{Username: "ana", Password: "x", Role: "astronauta"})
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestUserListOrderedByUsername(t *testing.T) {
	database := setupTestDB(t)
	for _, name := range []string{"carla", "ana", "bruno"} {
		createTestUser(t, database, name)
	}

	list, err := NewUserRepository(database).List(context.Background())
	require.NoError(t, err)

	var names []string
	for _, user := range list {
		names = append(names, user.Username)
	}
	assert.Equal(t, []string{"ana", "bruno", "carla"}, names)
}

func TestUserUpdatePartial(t *testing.T) {
	database := setupTestDB(t)
	users := NewUserRepository(database)
	ctx := context.Background()
	user := createTestUser(t, database, "ana")

	role := "dev"
	require.NoError(t, users.Update(ctx, user.ID, models.UserPatch{Role: &role}))

	updated, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "dev", updated.Role)
	assert.Equal(t, "ana", updated.Username, "only the role should change")
	assert.Equal(t, "hash", updated.Password, "only the role should change")

	// mismo valor: la fila sigue contando como encontrada
	assert.NoError(t, users.Update(ctx, user.ID, models.UserPatch{Role: &role}))

	assert.ErrorIs(t, users.Update(ctx, 999, models.UserPatch{Role: &role}), ErrNotFound)
}

func TestUserDeleteCascadesAssignments(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	ana := createTestUser(t, database, "ana")
	bruno := createTestUser(t, database, "bruno")

	tasks := NewTaskRepository(database)
	task, err := tasks.Create(ctx, models.NewTask{
		Title: "Deploy", Status: models.StatusActividades, Priority: models.PriorityAlta,
		UserIDs: []int64{ana.ID, bruno.ID},
	})
	require.NoError(t, err, "Failed to create task")

	require.NoError(t, NewUserRepository(database).Delete(ctx, ana.ID))

	after, err := tasks.Get(ctx, task.ID)
	require.NoError(t, err, "task must survive user deletion")
	assert.Equal(t, []int64{bruno.ID}, after.UserIDs)
	assert.Equal(t, []string{"bruno"}, after.UserNames)

	assert.ErrorIs(t, NewUserRepository(database).Delete(ctx, ana.ID), ErrNotFound)
}
