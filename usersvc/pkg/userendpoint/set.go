package userendpoint

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"taskapi/usersvc"
	"taskapi/usersvc/pkg/userservice"
)

type Set struct {
	RegisterEndpoint   endpoint.Endpoint
	DeleteUserEndpoint endpoint.Endpoint
}

func New(svc userservice.Service, logger log.Logger) Set {
	var registerEndpoint endpoint.Endpoint
	{
		registerEndpoint = MakeRegisterEndpoint(svc)
		registerEndpoint = LoggingMiddleware(log.With(logger, "method", "Register"))(registerEndpoint)
	}

	var deleteUserEndpoint endpoint.Endpoint
	{
		deleteUserEndpoint = MakeDeleteUserEndpoint(svc)
		deleteUserEndpoint = LoggingMiddleware(log.With(logger, "method", "DeleteUser"))(deleteUserEndpoint)
	}

	return Set{
		RegisterEndpoint:   registerEndpoint,
		DeleteUserEndpoint: deleteUserEndpoint,
	}
}

func (s Set) Register(ctx context.Context, username, password string, isAdmin bool) (usersvc.User, error) {
	resp, err := s.RegisterEndpoint(ctx, RegisterRequest{Username: username, Password: password, IsAdmin: isAdmin})
	if err != nil {
		return usersvc.User{}, err
	}
	response := resp.(RegisterResponse)
	return response.User, response.Err
}

func (s Set) DeleteUser(ctx context.Context, id uint64) (bool, error) {
	resp, err := s.DeleteUserEndpoint(ctx, DeleteUserRequest{ID: id})
	if err != nil {
		return false, err
	}
	response := resp.(DeleteUserResponse)
	return response.Result, response.Err
}

func MakeRegisterEndpoint(s userservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(RegisterRequest)
		u, err := s.Register(ctx, req.Username, req.Password, req.IsAdmin)
		if err != nil {
			return RegisterResponse{Err: err}, nil
		}
		return RegisterResponse{Message: "User registered successfully!", User: u}, nil
	}
}

func MakeDeleteUserEndpoint(s userservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(DeleteUserRequest)
		r, err := s.DeleteUser(ctx, req.ID)
		return DeleteUserResponse{Result: r, Err: err}, nil
	}
}

var (
	_ endpoint.Failer = RegisterResponse{}
	_ endpoint.Failer = DeleteUserResponse{}
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

type RegisterResponse struct {
	Message string       `json:"message"`
	User    usersvc.User `json:"user"`
	Err     error        `json:"-"`
}

func (r RegisterResponse) Failed() error { return r.Err }

type DeleteUserRequest struct {
	ID uint64
}

type DeleteUserResponse struct {
	Result bool  `json:"result"`
	Err    error `json:"-"`
}

func (r DeleteUserResponse) Failed() error { return r.Err }
