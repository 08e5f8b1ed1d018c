package tasktransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	stdjwt "github.com/dgrijalva/jwt-go"
	kitjwt "github.com/go-kit/kit/auth/jwt"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/transport"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"taskapi/authsvc"
	"taskapi/tasksvc"
	"taskapi/tasksvc/pkg/taskendpoint"
)

func NewHTTPHandler(endpoints taskendpoint.Set, secret []byte, logger log.Logger) http.Handler {
	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(errorEncoder),
		httptransport.ServerErrorHandler(transport.NewLogErrorHandler(logger)),
	}

	kf := func(token *stdjwt.Token) (interface{}, error) {
		return secret, nil
	}

	var createTaskEndpoint endpoint.Endpoint
	{
		createTaskEndpoint = endpoints.CreateTaskEndpoint
		createTaskEndpoint = kitjwt.NewParser(
			kf,
			stdjwt.SigningMethodHS256,
			kitjwt.MapClaimsFactory,
		)(createTaskEndpoint)
	}

	createTaskHandler := httptransport.NewServer(
		createTaskEndpoint,
		decodeHTTPCreateTaskRequest,
		encodeHTTPCreateTaskResponse,
		append(options, httptransport.ServerBefore(kitjwt.HTTPToContext()))...,
	)

	var tasksEndpoint endpoint.Endpoint
	{
		tasksEndpoint = endpoints.TasksEndpoint
		tasksEndpoint = kitjwt.NewParser(
			kf,
			stdjwt.SigningMethodHS256,
			kitjwt.MapClaimsFactory,
		)(tasksEndpoint)
	}

	tasksHandler := httptransport.NewServer(
		tasksEndpoint,
		decodeHTTPTasksRequest,
		encodeHTTPTasksResponse,
		append(options, httptransport.ServerBefore(kitjwt.HTTPToContext()))...,
	)

	var updateTaskEndpoint endpoint.Endpoint
	{
		updateTaskEndpoint = endpoints.UpdateTaskEndpoint
		updateTaskEndpoint = kitjwt.NewParser(
			kf,
			stdjwt.SigningMethodHS256,
			kitjwt.MapClaimsFactory,
		)(updateTaskEndpoint)
	}

	updateTaskHandler := httptransport.NewServer(
		updateTaskEndpoint,
		decodeHTTPUpdateTaskRequest,
		encodeHTTPUpdateTaskResponse,
		append(options, httptransport.ServerBefore(kitjwt.HTTPToContext()))...,
	)

	// Deletion carries no token gate. That mirrors the surface this service
	// replaces; see DESIGN.md before closing the gap.
	deleteTaskHandler := httptransport.NewServer(
		endpoints.DeleteTaskEndpoint,
		decodeHTTPDeleteTaskRequest,
		encodeHTTPDeleteTaskResponse,
		options...,
	)

	r := mux.NewRouter()

	r.Methods("GET").Path("/tasks").Handler(tasksHandler)
	r.Methods("POST").Path("/tasks").Handler(createTaskHandler)
	r.Methods("PUT").Path("/tasks/{task_id}").Handler(updateTaskHandler)
	r.Methods("DELETE").Path("/tasks/{task_id}").Handler(deleteTaskHandler)

	return r
}

func errorEncoder(_ context.Context, err error, w http.ResponseWriter) {
	code := err2code(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "failed to process request"
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errorWrapper{Error: msg})
}

type errorWrapper struct {
	Error string `json:"error"`
}

// err2code keeps the boundary asymmetry: a request with no token at all is
// 401, a present-but-unusable token is 403.
func err2code(err error) int {
	switch err {
	case kitjwt.ErrTokenContextMissing, authsvc.ErrClaimsMissing:
		return http.StatusUnauthorized
	case kitjwt.ErrTokenInvalid,
		kitjwt.ErrTokenExpired,
		kitjwt.ErrTokenMalformed,
		kitjwt.ErrTokenNotActive,
		kitjwt.ErrUnexpectedSigningMethod,
		stdjwt.ErrSignatureInvalid,
		authsvc.ErrClaimsInvalid:
		return http.StatusForbidden
	case tasksvc.ErrInvalidArgument:
		return http.StatusBadRequest
	case tasksvc.ErrTaskNotFound:
		return http.StatusNotFound
	case tasksvc.ErrNotPermitted:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func decodeHTTPCreateTaskRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req taskendpoint.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, tasksvc.ErrInvalidArgument
	}
	return req, nil
}

func decodeHTTPTasksRequest(_ context.Context, r *http.Request) (interface{}, error) {
	return taskendpoint.TasksRequest{}, nil
}

func decodeHTTPUpdateTaskRequest(_ context.Context, r *http.Request) (interface{}, error) {
	vars := mux.Vars(r)
	taskID, err := strconv.ParseUint(vars["task_id"], 10, 64)
	if err != nil {
		return nil, ErrBadRouting
	}

	var req taskendpoint.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, tasksvc.ErrInvalidArgument
	}

	req.TaskID = taskID

	return req, nil
}

func decodeHTTPDeleteTaskRequest(_ context.Context, r *http.Request) (interface{}, error) {
	vars := mux.Vars(r)
	taskID, err := strconv.ParseUint(vars["task_id"], 10, 64)
	if err != nil {
		return nil, ErrBadRouting
	}

	return taskendpoint.DeleteTaskRequest{TaskID: taskID}, nil
}

// ErrBadRouting is returned when an expected path variable is missing.
// It always indicates programmer error.
var ErrBadRouting = errors.New("inconsistent mapping between route and handler (programmer error)")

func encodeHTTPCreateTaskResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	resp := response.(taskendpoint.CreateTaskResponse)
	if resp.Failed() != nil {
		errorEncoder(ctx, resp.Failed(), w)
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(resp.Task)
}

func encodeHTTPTasksResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	resp := response.(taskendpoint.TasksResponse)
	if resp.Failed() != nil {
		errorEncoder(ctx, resp.Failed(), w)
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(resp.Tasks)
}

func encodeHTTPUpdateTaskResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	resp := response.(taskendpoint.UpdateTaskResponse)
	if resp.Failed() != nil {
		errorEncoder(ctx, resp.Failed(), w)
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(resp.Task)
}

func encodeHTTPDeleteTaskResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	resp := response.(taskendpoint.DeleteTaskResponse)
	if resp.Failed() != nil {
		errorEncoder(ctx, resp.Failed(), w)
		return nil
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
