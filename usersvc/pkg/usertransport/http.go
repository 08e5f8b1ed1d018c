package usertransport

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/transport"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"taskapi/usersvc"
	"taskapi/usersvc/pkg/userendpoint"
)

func NewHTTPHandler(endpoints userendpoint.Set, logger log.Logger) http.Handler {
	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(errorEncoder),
		httptransport.ServerErrorHandler(transport.NewLogErrorHandler(logger)),
	}

	registerHandler := httptransport.NewServer(
		endpoints.RegisterEndpoint,
		decodeHTTPRegisterRequest,
		encodeHTTPRegisterResponse,
		options...,
	)

	deleteUserHandler := httptransport.NewServer(
		endpoints.DeleteUserEndpoint,
		decodeHTTPDeleteUserRequest,
		encodeHTTPDeleteUserResponse,
		options...,
	)

	r := mux.NewRouter()

	r.Methods("POST").Path("/register").Handler(registerHandler)
	r.Methods("DELETE").Path("/users/{user_id}").Handler(deleteUserHandler)

	return r
}

func errorEncoder(_ context.Context, err error, w http.ResponseWriter) {
	code := err2code(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		// Store errors carry internal detail; clients get a fixed message.
		msg = "failed to process request"
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errorWrapper{Error: msg})
}

type errorWrapper struct {
	Error string `json:"error"`
}

func err2code(err error) int {
	switch err {
	case usersvc.ErrInvalidArgument:
		return http.StatusBadRequest
	case usersvc.ErrUsernameTaken:
		return http.StatusConflict
	case usersvc.ErrUserNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func decodeHTTPRegisterRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req userendpoint.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, usersvc.ErrInvalidArgument
	}
	return req, nil
}

func decodeHTTPDeleteUserRequest(_ context.Context, r *http.Request) (interface{}, error) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["user_id"], 10, 64)
	if err != nil {
		return nil, usersvc.ErrUserNotFound
	}

	return userendpoint.DeleteUserRequest{ID: id}, nil
}

func encodeHTTPRegisterResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if f, ok := response.(endpoint.Failer); ok && f.Failed() != nil {
		errorEncoder(ctx, f.Failed(), w)
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(response)
}

func encodeHTTPDeleteUserResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if f, ok := response.(endpoint.Failer); ok && f.Failed() != nil {
		errorEncoder(ctx, f.Failed(), w)
		return nil
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
