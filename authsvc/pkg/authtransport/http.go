package authtransport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/transport"
	httptransport "github.com/go-kit/kit/transport/http"
	"taskapi/authsvc"
	"taskapi/authsvc/pkg/authendpoint"
)

func NewHTTPHandler(endpoints authendpoint.Set, logger log.Logger) http.Handler {
	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(errorEncoder),
		httptransport.ServerErrorHandler(transport.NewLogErrorHandler(logger)),
	}

	loginHandler := httptransport.NewServer(
		endpoints.LoginEndpoint,
		decodeHTTPLoginRequest,
		encodeHTTPLoginResponse,
		options...,
	)

	m := http.NewServeMux()
	m.Handle("/login", loginHandler)

	return m
}

func errorEncoder(_ context.Context, err error, w http.ResponseWriter) {
	code := err2code(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "failed to log in"
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
	case authsvc.ErrInvalidArgument:
		return http.StatusBadRequest
	case authsvc.ErrInvalidCredentials:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func decodeHTTPLoginRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req authendpoint.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, authsvc.ErrInvalidArgument
	}
	return req, nil
}

func encodeHTTPLoginResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if f, ok := response.(endpoint.Failer); ok && f.Failed() != nil {
		errorEncoder(ctx, f.Failed(), w)
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(response)
}
