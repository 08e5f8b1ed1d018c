package userservice

import (
	"context"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
	"taskapi/usersvc"
)

type Middleware func(Service) Service

func LoggingMiddleware(logger log.Logger) Middleware {
	return func(next Service) Service {
		return loggingMiddleware{logger, next}
	}
}

type loggingMiddleware struct {
	logger log.Logger
	next   Service
}

func (mw loggingMiddleware) Register(ctx context.Context, username, password string, isAdmin bool) (u usersvc.User, err error) {
	defer func() {
		mw.logger.Log("method", "Register", "username", username, "is_admin", isAdmin, "id", u.ID, "err", err)
	}()
	return mw.next.Register(ctx, username, password, isAdmin)
}

func (mw loggingMiddleware) DeleteUser(ctx context.Context, id uint64) (result bool, err error) {
	defer func() {
		mw.logger.Log("method", "DeleteUser", "id", id, "result", result, "err", err)
	}()
	return mw.next.DeleteUser(ctx, id)
}

func InstrumentingMiddleware(counter metrics.Counter, latency metrics.Histogram) Middleware {
	return func(next Service) Service {
		return instrumentingMiddleware{counter, latency, next}
	}
}

type instrumentingMiddleware struct {
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
	next           Service
}

func (mw instrumentingMiddleware) Register(ctx context.Context, username, password string, isAdmin bool) (u usersvc.User, err error) {
	defer func(begin time.Time) {
		mw.requestCount.With("method", "register").Add(1)
		mw.requestLatency.With("method", "register").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.Register(ctx, username, password, isAdmin)
}

func (mw instrumentingMiddleware) DeleteUser(ctx context.Context, id uint64) (result bool, err error) {
	defer func(begin time.Time) {
		mw.requestCount.With("method", "delete_user").Add(1)
		mw.requestLatency.With("method", "delete_user").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.DeleteUser(ctx, id)
}
