package taskservice

import (
	"context"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
	"taskapi/authsvc"
	"taskapi/tasksvc"
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

func (mw loggingMiddleware) CreateTask(ctx context.Context, id authsvc.Identity, name string, completed bool) (t tasksvc.Task, err error) {
	defer func() {
		mw.logger.Log(
			"method", "CreateTask",
			"user_id", id.UserID,
			"name", name,
			"completed", completed,
			"err", err,
		)
	}()
	return mw.next.CreateTask(ctx, id, name, completed)
}

func (mw loggingMiddleware) Tasks(ctx context.Context, id authsvc.Identity) (t []tasksvc.Task, err error) {
	defer func() {
		mw.logger.Log(
			"method", "Tasks",
			"user_id", id.UserID,
			"is_admin", id.IsAdmin,
			"err", err,
		)
	}()
	return mw.next.Tasks(ctx, id)
}

func (mw loggingMiddleware) UpdateTask(ctx context.Context, id authsvc.Identity, taskID uint64, name string, completed bool) (t tasksvc.Task, err error) {
	defer func() {
		mw.logger.Log(
			"method", "UpdateTask",
			"user_id", id.UserID,
			"is_admin", id.IsAdmin,
			"task_id", taskID,
			"name", name,
			"completed", completed,
			"err", err,
		)
	}()
	return mw.next.UpdateTask(ctx, id, taskID, name, completed)
}

func (mw loggingMiddleware) DeleteTask(ctx context.Context, taskID uint64) (result bool, err error) {
	defer func() {
		mw.logger.Log(
			"method", "DeleteTask",
			"task_id", taskID,
			"result", result,
			"err", err,
		)
	}()
	return mw.next.DeleteTask(ctx, taskID)
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

func (mw instrumentingMiddleware) CreateTask(ctx context.Context, id authsvc.Identity, name string, completed bool) (t tasksvc.Task, err error) {
	defer func(begin time.Time) {
		mw.requestCount.With("method", "create_task").Add(1)
		mw.requestLatency.With("method", "create_task").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.CreateTask(ctx, id, name, completed)
}

func (mw instrumentingMiddleware) Tasks(ctx context.Context, id authsvc.Identity) (t []tasksvc.Task, err error) {
	defer func(begin time.Time) {
		mw.requestCount.With("method", "tasks").Add(1)
		mw.requestLatency.With("method", "tasks").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.Tasks(ctx, id)
}

func (mw instrumentingMiddleware) UpdateTask(ctx context.Context, id authsvc.Identity, taskID uint64, name string, completed bool) (t tasksvc.Task, err error) {
	defer func(begin time.Time) {
		mw.requestCount.With("method", "update_task").Add(1)
		mw.requestLatency.With("method", "update_task").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.UpdateTask(ctx, id, taskID, name, completed)
}

func (mw instrumentingMiddleware) DeleteTask(ctx context.Context, taskID uint64) (result bool, err error) {
	defer func(begin time.Time) {
		mw.requestCount.With("method", "delete_task").Add(1)
		mw.requestLatency.With("method", "delete_task").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.DeleteTask(ctx, taskID)
}
