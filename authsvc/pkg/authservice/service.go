package authservice

import (
	"context"

	"github.com/go-kit/kit/log"
	"golang.org/x/crypto/bcrypt"
	"taskapi/authsvc"
	"taskapi/usersvc"
)

type Service interface {
	Login(ctx context.Context, username, password string) (string, error)
}

func New(t Tokenizer, users usersvc.UserRepository, logger log.Logger) Service {
	var svc Service
	{
		svc = NewBasicService(t, users)
		svc = LoggingMiddleware(logger)(svc)
	}
	return svc
}

type basicService struct {
	tokenizer Tokenizer
	users     usersvc.UserRepository
}

func NewBasicService(t Tokenizer, users usersvc.UserRepository) Service {
	return &basicService{tokenizer: t, users: users}
}

func (s *basicService) Login(_ context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", authsvc.ErrInvalidArgument
	}

	user, err := s.users.Find(username)
	if err != nil {
		if err == usersvc.ErrUserNotFound {
			// Same answer as a bad password so usernames cannot be probed.
			return "", authsvc.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", authsvc.ErrInvalidCredentials
	}

	return s.tokenizer.Generate(user)
}
