package authservice

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	libgorm "gorm.io/gorm"

	"taskapi/authsvc"
	"taskapi/usersvc"
	usergorm "taskapi/usersvc/db/gorm"
)

var testSecret = []byte("test-secret")

func newTestRepository(t *testing.T) usersvc.UserRepository {
	t.Helper()

	db, err := libgorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &libgorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&usersvc.User{}))

	return usergorm.NewUserRepository(db)
}

func createUser(t *testing.T, users usersvc.UserRepository, username, password string, isAdmin bool) usersvc.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	u, err := users.Create(username, hash, isAdmin)
	require.NoError(t, err)
	return u
}

func TestLoginIssuesClaimSnapshot(t *testing.T) {
	users := newTestRepository(t)
	u := createUser(t, users, "alice", "hunter2", true)

	svc := NewBasicService(NewTokenizer(testSecret), users)

	token, err := svc.Login(context.Background(), "alice", "hunter2")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return testSecret, nil
	})
	require.NoError(t, err)

	assert.Equal(t, float64(u.ID), claims["user_id"])
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, true, claims["is_admin"])
	assert.NotEmpty(t, claims["uuid"])

	exp := int64(claims["exp"].(float64))
	want := time.Now().Add(TokenExpiry()).Unix()
	assert.InDelta(t, want, exp, 60)
}

func TestLoginWrongPassword(t *testing.T) {
	users := newTestRepository(t)
	createUser(t, users, "alice", "hunter2", false)

	svc := NewBasicService(NewTokenizer(testSecret), users)

	_, err := svc.Login(context.Background(), "alice", "wrong")
	assert.Equal(t, authsvc.ErrInvalidCredentials, err)
}

func TestLoginUnknownUser(t *testing.T) {
	users := newTestRepository(t)
	createUser(t, users, "alice", "hunter2", false)

	svc := NewBasicService(NewTokenizer(testSecret), users)

	// Same error as a wrong password: the response must not reveal which
	// part of the credentials failed.
	_, err := svc.Login(context.Background(), "nobody", "hunter2")
	assert.Equal(t, authsvc.ErrInvalidCredentials, err)
}

func TestLoginMissingFields(t *testing.T) {
	svc := NewBasicService(NewTokenizer(testSecret), newTestRepository(t))

	_, err := svc.Login(context.Background(), "", "hunter2")
	assert.Equal(t, authsvc.ErrInvalidArgument, err)

	_, err = svc.Login(context.Background(), "alice", "")
	assert.Equal(t, authsvc.ErrInvalidArgument, err)
}
