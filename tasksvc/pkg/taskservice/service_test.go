package taskservice

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	libgorm "gorm.io/gorm"

	"taskapi/authsvc"
	"taskapi/tasksvc"
	taskgorm "taskapi/tasksvc/db/gorm"
)

var (
	alice = authsvc.Identity{UserID: 1, Username: "alice"}
	bob   = authsvc.Identity{UserID: 2, Username: "bob"}
	root  = authsvc.Identity{UserID: 3, Username: "root", IsAdmin: true}
)

func newTestRepository(t *testing.T) tasksvc.TaskRepository {
	t.Helper()

	db, err := libgorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &libgorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tasksvc.Task{}))

	return taskgorm.NewTaskRepository(db)
}

func TestCreateTaskForcesOwner(t *testing.T) {
	svc := NewBasicService(newTestRepository(t))

	task, err := svc.CreateTask(context.Background(), alice, "x", false)
	require.NoError(t, err)
	assert.NotZero(t, task.ID)
	assert.Equal(t, alice.UserID, task.UserID)
	assert.Equal(t, "x", task.Name)
	assert.False(t, task.Completed)
}

func TestCreateTaskMissingName(t *testing.T) {
	svc := NewBasicService(newTestRepository(t))

	_, err := svc.CreateTask(context.Background(), alice, "", false)
	assert.Equal(t, tasksvc.ErrInvalidArgument, err)
}

func TestTasksScopedToOwner(t *testing.T) {
	svc := NewBasicService(newTestRepository(t))

	a1, err := svc.CreateTask(context.Background(), alice, "a1", false)
	require.NoError(t, err)
	_, err = svc.CreateTask(context.Background(), bob, "b1", false)
	require.NoError(t, err)
	a2, err := svc.CreateTask(context.Background(), alice, "a2", true)
	require.NoError(t, err)

	tasks, err := svc.Tasks(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, a1.ID, tasks[0].ID)
	assert.Equal(t, a2.ID, tasks[1].ID)
	for _, task := range tasks {
		assert.Equal(t, alice.UserID, task.UserID)
	}
}

func TestTasksAdminSeesAllOrdered(t *testing.T) {
	svc := NewBasicService(newTestRepository(t))

	// Interleave owners so insertion order differs from (owner, id) order.
	b1, err := svc.CreateTask(context.Background(), bob, "b1", false)
	require.NoError(t, err)
	a1, err := svc.CreateTask(context.Background(), alice, "a1", false)
	require.NoError(t, err)
	b2, err := svc.CreateTask(context.Background(), bob, "b2", false)
	require.NoError(t, err)

	tasks, err := svc.Tasks(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []uint64{a1.ID, b1.ID, b2.ID}, []uint64{tasks[0].ID, tasks[1].ID, tasks[2].ID})
}

func TestUpdateTaskByOwner(t *testing.T) {
	svc := NewBasicService(newTestRepository(t))

	created, err := svc.CreateTask(context.Background(), alice, "x", false)
	require.NoError(t, err)

	updated, err := svc.UpdateTask(context.Background(), alice, created.ID, "y", true)
	require.NoError(t, err)
	assert.Equal(t, "y", updated.Name)
	assert.True(t, updated.Completed)
	assert.Equal(t, alice.UserID, updated.UserID)
}

func TestUpdateTaskByNonOwner(t *testing.T) {
	svc := NewBasicService(newTestRepository(t))

	created, err := svc.CreateTask(context.Background(), alice, "x", false)
	require.NoError(t, err)

	_, err = svc.UpdateTask(context.Background(), bob, created.ID, "y", true)
	assert.Equal(t, tasksvc.ErrNotPermitted, err)

	tasks, err := svc.Tasks(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "x", tasks[0].Name)
	assert.False(t, tasks[0].Completed)
}

func TestUpdateTaskByAdminKeepsOwner(t *testing.T) {
	svc := NewBasicService(newTestRepository(t))

	created, err := svc.CreateTask(context.Background(), alice, "x", false)
	require.NoError(t, err)

	updated, err := svc.UpdateTask(context.Background(), root, created.ID, "y", true)
	require.NoError(t, err)
	assert.Equal(t, "y", updated.Name)
	assert.True(t, updated.Completed)
	assert.Equal(t, alice.UserID, updated.UserID)
}

func TestUpdateTaskNotFound(t *testing.T) {
	svc := NewBasicService(newTestRepository(t))

	created, err := svc.CreateTask(context.Background(), alice, "x", false)
	require.NoError(t, err)

	// A missing task and a task the caller may not touch are distinct
	// outcomes.
	_, err = svc.UpdateTask(context.Background(), bob, created.ID+100, "y", true)
	assert.Equal(t, tasksvc.ErrTaskNotFound, err)

	_, err = svc.UpdateTask(context.Background(), bob, created.ID, "y", true)
	assert.Equal(t, tasksvc.ErrNotPermitted, err)
}

func TestDeleteTask(t *testing.T) {
	svc := NewBasicService(newTestRepository(t))

	created, err := svc.CreateTask(context.Background(), alice, "x", false)
	require.NoError(t, err)

	ok, err := svc.DeleteTask(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.DeleteTask(context.Background(), created.ID)
	assert.Equal(t, tasksvc.ErrTaskNotFound, err)
}
