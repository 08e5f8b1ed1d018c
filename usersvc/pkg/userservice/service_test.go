package userservice

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	libgorm "gorm.io/gorm"

	"taskapi/usersvc"
	usergorm "taskapi/usersvc/db/gorm"
)

func newTestRepository(t *testing.T) usersvc.UserRepository {
	t.Helper()

	db, err := libgorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &libgorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&usersvc.User{}))

	return usergorm.NewUserRepository(db)
}

func TestRegister(t *testing.T) {
	users := newTestRepository(t)
	svc := NewBasicService(users)

	u, err := svc.Register(context.Background(), "alice", "hunter2", false)
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.False(t, u.IsAdmin)

	stored, err := users.Find("alice")
	require.NoError(t, err)
	assert.NotEqual(t, []byte("hunter2"), stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(stored.PasswordHash, []byte("hunter2")))
}

func TestRegisterAdminFlag(t *testing.T) {
	svc := NewBasicService(newTestRepository(t))

	u, err := svc.Register(context.Background(), "root", "secret", true)
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewBasicService(newTestRepository(t))

	_, err := svc.Register(context.Background(), "alice", "hunter2", false)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "other", false)
	assert.Equal(t, usersvc.ErrUsernameTaken, err)
}

func TestRegisterMissingFields(t *testing.T) {
	svc := NewBasicService(newTestRepository(t))

	_, err := svc.Register(context.Background(), "", "hunter2", false)
	assert.Equal(t, usersvc.ErrInvalidArgument, err)

	_, err = svc.Register(context.Background(), "alice", "", false)
	assert.Equal(t, usersvc.ErrInvalidArgument, err)
}

func TestDeleteUser(t *testing.T) {
	users := newTestRepository(t)
	svc := NewBasicService(users)

	u, err := svc.Register(context.Background(), "alice", "hunter2", false)
	require.NoError(t, err)

	ok, err := svc.DeleteUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = users.Find("alice")
	assert.Equal(t, usersvc.ErrUserNotFound, err)
}

func TestDeleteUserNotFound(t *testing.T) {
	svc := NewBasicService(newTestRepository(t))

	_, err := svc.DeleteUser(context.Background(), 42)
	assert.Equal(t, usersvc.ErrUserNotFound, err)
}
