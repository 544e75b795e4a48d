package db

import (
	"context"
	"testing"

	"taskboard-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTask(title string, userIDs ...int64) models.NewTask {
	return models.NewTask{
		Title:    title,
		Status:   models.StatusActividades,
		Priority: models.PriorityMedia,
		UserIDs:  userIDs,
	}
}

func TestTaskCreateDefaults(t *testing.T) {
	database := setupTestDB(t)

	task, err := NewTaskRepository(database).Create(context.Background(), newTestTask("Escribir docs"))
	require.NoError(t, err, "Failed to create task")

	assert.NotZero(t, task.ID)
	assert.Equal(t, models.DefaultColor, task.Color)
	assert.False(t, task.Completed, "new task must not be completed")
	assert.Equal(t, []string{}, task.Tags)
	assert.Empty(t, task.UserIDs)
	assert.Empty(t, task.UserNames)
	assert.False(t, task.CreatedAt.IsZero(), "created_at is assigned by the database")
}

func TestTaskTagsRoundTrip(t *testing.T) {
	database := setupTestDB(t)
	tasks := NewTaskRepository(database)
	ctx := context.Background()

	in := newTestTask("Con tags")
	in.Tags = []string{"x", "y"}
	task, err := tasks.Create(ctx, in)
	require.NoError(t, err)

	got, err := tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got.Tags)
}

func TestTaskListAggregatesAssignees(t *testing.T) {
	database := setupTestDB(t)
	tasks := NewTaskRepository(database)
	ctx := context.Background()

	ana := createTestUser(t, database, "ana")
	bruno := createTestUser(t, database, "bruno")

	first, err := tasks.Create(ctx, newTestTask("Primera", ana.ID, bruno.ID, ana.ID))
	require.NoError(t, err)
	second, err := tasks.Create(ctx, newTestTask("Segunda"))
	require.NoError(t, err)

	list, err := tasks.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2, "one entry per task id")

	// mismo segundo de creación: desempata el id, más reciente primero
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	assert.Equal(t, []int64{ana.ID, bruno.ID}, list[1].UserIDs)
	assert.ElementsMatch(t, []string{"ana", "bruno"}, list[1].UserNames)
	assert.Empty(t, list[0].UserIDs)
}

func TestTaskUpdateReplacesAssignees(t *testing.T) {
	database := setupTestDB(t)
	tasks := NewTaskRepository(database)
	ctx := context.Background()

	u1 := createTestUser(t, database, "u1")
	u2 := createTestUser(t, database, "u2")
	u3 := createTestUser(t, database, "u3")

	task, err := tasks.Create(ctx, newTestTask("Reasignar", u1.ID, u2.ID))
	require.NoError(t, err)

	ids := []int64{u2.ID, u3.ID}
	require.NoError(t, tasks.Update(ctx, task.ID, models.TaskPatch{UserIDs: &ids}))

	got, err := tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{u2.ID, u3.ID}, got.UserIDs)
	assert.Equal(t, "Reasignar", got.Title, "title must be untouched")

	empty := []int64{}
	require.NoError(t, tasks.Update(ctx, task.ID, models.TaskPatch{UserIDs: &empty}))
	got, err = tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, got.UserIDs, "empty list clears the assignees")
}

func TestTaskUpdatePartialFields(t *testing.T) {
	database := setupTestDB(t)
	tasks := NewTaskRepository(database)
	ctx := context.Background()

	u1 := createTestUser(t, database, "u1")
	task, err := tasks.Create(ctx, newTestTask("Original", u1.ID))
	require.NoError(t, err)

	status := models.StatusRealizadas
	completed := true
	tags := []string{"hecho"}
	require.NoError(t, tasks.Update(ctx, task.ID, models.TaskPatch{Status: &status, Completed: &completed, Tags: &tags}))

	got, err := tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, status, got.Status)
	assert.True(t, got.Completed)
	assert.Equal(t, tags, got.Tags)
	assert.Equal(t, "Original", got.Title)
	assert.Equal(t, models.PriorityMedia, got.Priority)
	assert.Equal(t, []int64{u1.ID}, got.UserIDs, "assignees survive an update without user_ids")
}

func TestTaskUpdateNotFound(t *testing.T) {
	database := setupTestDB(t)
	tasks := NewTaskRepository(database)
	ctx := context.Background()

	title := "x"
	assert.ErrorIs(t, tasks.Update(ctx, 999, models.TaskPatch{Title: &title}), ErrNotFound)

	ids := []int64{}
	assert.ErrorIs(t, tasks.Update(ctx, 999, models.TaskPatch{UserIDs: &ids}), ErrNotFound)
}

func TestTaskUnknownAssigneeRollsBack(t *testing.T) {
	database := setupTestDB(t)
	tasks := NewTaskRepository(database)
	ctx := context.Background()

	_, err := tasks.Create(ctx, newTestTask("Fantasma", 4242))
	require.ErrorIs(t, err, ErrForeignKey)

	list, err := tasks.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "failed create must not leave a task behind")
}

func TestTaskInvalidStatusRejectedBySchema(t *testing.T) {
	database := setupTestDB(t)

	in := newTestTask("Estado raro")
	in.Status = "bogus"
	_, err := NewTaskRepository(database).Create(context.Background(), in)
	assert.Error(t, err, "the CHECK constraint rejects an unknown status")
}

func TestTaskDeleteCascades(t *testing.T) {
	database := setupTestDB(t)
	tasks := NewTaskRepository(database)
	ctx := context.Background()

	u1 := createTestUser(t, database, "u1")
	task, err := tasks.Create(ctx, newTestTask("Borrar", u1.ID))
	require.NoError(t, err)

	require.NoError(t, tasks.Delete(ctx, task.ID))

	var count int
	require.NoError(t, database.Conn.QueryRow("SELECT COUNT(*) FROM task_users WHERE task_id = ?", task.ID).Scan(&count))
	assert.Zero(t, count, "assignments are removed with the task")

	assert.ErrorIs(t, tasks.Delete(ctx, task.ID), ErrNotFound)
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, UniqueIDs([]int64{3, 1, 3, 2, 1}))
	assert.Equal(t, []int64{}, UniqueIDs(nil))
}
