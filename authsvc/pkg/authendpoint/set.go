package authendpoint

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"taskapi/authsvc/pkg/authservice"
)

type Set struct {
	LoginEndpoint endpoint.Endpoint
}

func New(svc authservice.Service, logger log.Logger) Set {
	var loginEndpoint endpoint.Endpoint
	{
		loginEndpoint = MakeLoginEndpoint(svc)
		loginEndpoint = LoggingMiddleware(log.With(logger, "method", "Login"))(loginEndpoint)
	}

	return Set{
		LoginEndpoint: loginEndpoint,
	}
}

func (s Set) Login(ctx context.Context, username, password string) (string, error) {
	resp, err := s.LoginEndpoint(ctx, LoginRequest{Username: username, Password: password})
	if err != nil {
		return "", err
	}
	response := resp.(LoginResponse)
	return response.Token, response.Err
}

func MakeLoginEndpoint(s authservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(LoginRequest)
		t, err := s.Login(ctx, req.Username, req.Password)
		if err != nil {
			return LoginResponse{Err: err}, nil
		}
		return LoginResponse{Message: "Login successful!", Token: t}, nil
	}
}

var _ endpoint.Failer = LoginResponse{}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Err     error  `json:"-"`
}

func (r LoginResponse) Failed() error { return r.Err }
