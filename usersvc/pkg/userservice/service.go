package userservice

import (
	"context"

	"github.com/go-kit/kit/log"
	"golang.org/x/crypto/bcrypt"
	"taskapi/usersvc"
)

type Service interface {
	Register(ctx context.Context, username, password string, isAdmin bool) (usersvc.User, error)
	DeleteUser(ctx context.Context, id uint64) (bool, error)
}

func New(users usersvc.UserRepository, logger log.Logger) Service {
	var svc Service
	{
		svc = NewBasicService(users)
		svc = LoggingMiddleware(logger)(svc)
	}
	return svc
}

type basicService struct {
	users usersvc.UserRepository
}

func NewBasicService(users usersvc.UserRepository) Service {
	return basicService{users: users}
}

func (s basicService) Register(_ context.Context, username, password string, isAdmin bool) (usersvc.User, error) {
	if username == "" || password == "" {
		return usersvc.User{}, usersvc.ErrInvalidArgument
	}

	_, err := s.users.Find(username)
	if err == nil {
		return usersvc.User{}, usersvc.ErrUsernameTaken
	}
	if err != usersvc.ErrUserNotFound {
		return usersvc.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return usersvc.User{}, err
	}

	return s.users.Create(username, hash, isAdmin)
}

func (s basicService) DeleteUser(_ context.Context, id uint64) (bool, error) {
	if id == 0 {
		return false, usersvc.ErrInvalidArgument
	}
	return s.users.Delete(id)
}
