package taskendpoint

import (
	"context"
	"fmt"
	"strconv"

	stdjwt "github.com/dgrijalva/jwt-go"
	kitjwt "github.com/go-kit/kit/auth/jwt"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"taskapi/authsvc"
	"taskapi/tasksvc"
	"taskapi/tasksvc/pkg/taskservice"
)

type Set struct {
	CreateTaskEndpoint endpoint.Endpoint
	TasksEndpoint      endpoint.Endpoint
	UpdateTaskEndpoint endpoint.Endpoint
	DeleteTaskEndpoint endpoint.Endpoint
}

func New(svc taskservice.Service, logger log.Logger) Set {
	var createTaskEndpoint endpoint.Endpoint
	{
		createTaskEndpoint = MakeCreateTaskEndpoint(svc)
		createTaskEndpoint = LoggingMiddleware(log.With(logger, "method", "CreateTask"))(createTaskEndpoint)
	}

	var tasksEndpoint endpoint.Endpoint
	{
		tasksEndpoint = MakeTasksEndpoint(svc)
		tasksEndpoint = LoggingMiddleware(log.With(logger, "method", "Tasks"))(tasksEndpoint)
	}

	var updateTaskEndpoint endpoint.Endpoint
	{
		updateTaskEndpoint = MakeUpdateTaskEndpoint(svc)
		updateTaskEndpoint = LoggingMiddleware(log.With(logger, "method", "UpdateTask"))(updateTaskEndpoint)
	}

	var deleteTaskEndpoint endpoint.Endpoint
	{
		deleteTaskEndpoint = MakeDeleteTaskEndpoint(svc)
		deleteTaskEndpoint = LoggingMiddleware(log.With(logger, "method", "DeleteTask"))(deleteTaskEndpoint)
	}

	return Set{
		CreateTaskEndpoint: createTaskEndpoint,
		TasksEndpoint:      tasksEndpoint,
		UpdateTaskEndpoint: updateTaskEndpoint,
		DeleteTaskEndpoint: deleteTaskEndpoint,
	}
}

func MakeCreateTaskEndpoint(s taskservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		id, err := claims(ctx)
		if err != nil {
			return CreateTaskResponse{Err: err}, nil
		}

		req := request.(CreateTaskRequest)
		t, err := s.CreateTask(ctx, id, req.Name, req.Completed)
		return CreateTaskResponse{Task: t, Err: err}, nil
	}
}

func MakeTasksEndpoint(s taskservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		id, err := claims(ctx)
		if err != nil {
			return TasksResponse{Err: err}, nil
		}

		_ = request.(TasksRequest)
		t, err := s.Tasks(ctx, id)
		return TasksResponse{Tasks: t, Err: err}, nil
	}
}

func MakeUpdateTaskEndpoint(s taskservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		id, err := claims(ctx)
		if err != nil {
			return UpdateTaskResponse{Err: err}, nil
		}

		req := request.(UpdateTaskRequest)
		if req.Name == nil || req.Completed == nil {
			return UpdateTaskResponse{Err: tasksvc.ErrInvalidArgument}, nil
		}

		t, err := s.UpdateTask(ctx, id, req.TaskID, *req.Name, *req.Completed)
		return UpdateTaskResponse{Task: t, Err: err}, nil
	}
}

func MakeDeleteTaskEndpoint(s taskservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(DeleteTaskRequest)
		r, err := s.DeleteTask(ctx, req.TaskID)
		return DeleteTaskResponse{Result: r, Err: err}, nil
	}
}

func claims(ctx context.Context) (authsvc.Identity, error) {
	claims, ok := ctx.Value(kitjwt.JWTClaimsContextKey).(stdjwt.MapClaims)
	if !ok {
		return authsvc.Identity{}, authsvc.ErrClaimsMissing
	}

	userID, err := strconv.ParseUint(fmt.Sprintf("%.f", claims["user_id"]), 10, 64)
	if err != nil {
		return authsvc.Identity{}, authsvc.ErrClaimsInvalid
	}

	username, ok := claims["username"].(string)
	if !ok {
		return authsvc.Identity{}, authsvc.ErrClaimsInvalid
	}

	isAdmin, _ := claims["is_admin"].(bool)

	return authsvc.Identity{UserID: userID, Username: username, IsAdmin: isAdmin}, nil
}

var (
	_ endpoint.Failer = CreateTaskResponse{}
	_ endpoint.Failer = TasksResponse{}
	_ endpoint.Failer = UpdateTaskResponse{}
	_ endpoint.Failer = DeleteTaskResponse{}
)

type CreateTaskRequest struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

type CreateTaskResponse struct {
	Task tasksvc.Task `json:"task"`
	Err  error        `json:"-"`
}

func (r CreateTaskResponse) Failed() error { return r.Err }

type TasksRequest struct{}

type TasksResponse struct {
	Tasks []tasksvc.Task `json:"tasks"`
	Err   error          `json:"-"`
}

func (r TasksResponse) Failed() error { return r.Err }

// UpdateTaskRequest uses pointer fields so an absent name or completed can
// be told apart from a zero value.
type UpdateTaskRequest struct {
	TaskID    uint64  `json:"-"`
	Name      *string `json:"name"`
	Completed *bool   `json:"completed"`
}

type UpdateTaskResponse struct {
	Task tasksvc.Task `json:"task"`
	Err  error        `json:"-"`
}

func (r UpdateTaskResponse) Failed() error { return r.Err }

type DeleteTaskRequest struct {
	TaskID uint64
}

type DeleteTaskResponse struct {
	Result bool  `json:"result"`
	Err    error `json:"-"`
}

func (r DeleteTaskResponse) Failed() error { return r.Err }
