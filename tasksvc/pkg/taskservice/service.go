package taskservice

import (
	"context"

	"github.com/go-kit/kit/log"
	"taskapi/authsvc"
	"taskapi/tasksvc"
)

type Service interface {
	CreateTask(ctx context.Context, id authsvc.Identity, name string, completed bool) (tasksvc.Task, error)
	Tasks(ctx context.Context, id authsvc.Identity) ([]tasksvc.Task, error)
	UpdateTask(ctx context.Context, id authsvc.Identity, taskID uint64, name string, completed bool) (tasksvc.Task, error)
	DeleteTask(ctx context.Context, taskID uint64) (bool, error)
}

func New(t tasksvc.TaskRepository, logger log.Logger) Service {
	var svc Service
	{
		svc = NewBasicService(t)
		svc = LoggingMiddleware(logger)(svc)
	}
	return svc
}

type basicService struct {
	tasks tasksvc.TaskRepository
}

func NewBasicService(t tasksvc.TaskRepository) Service {
	return basicService{tasks: t}
}

// CreateTask stores a new task owned by the caller. The owner comes from the
// verified identity, never from client input.
func (s basicService) CreateTask(_ context.Context, id authsvc.Identity, name string, completed bool) (tasksvc.Task, error) {
	if name == "" || id.UserID == 0 {
		return tasksvc.Task{}, tasksvc.ErrInvalidArgument
	}
	return s.tasks.Create(name, completed, id.UserID)
}

// Tasks returns every task for an admin, ordered by owner then id, and only
// the caller's own tasks otherwise, ordered by id.
func (s basicService) Tasks(_ context.Context, id authsvc.Identity) ([]tasksvc.Task, error) {
	if id.UserID == 0 {
		return nil, tasksvc.ErrInvalidArgument
	}

	if id.IsAdmin {
		return s.tasks.FindAll()
	}
	return s.tasks.FindByOwner(id.UserID)
}

// UpdateTask writes name and completed. Admins match by id alone, other
// callers by id and ownership. When nothing matched, a follow-up existence
// check separates a missing task from one the caller may not touch.
func (s basicService) UpdateTask(_ context.Context, id authsvc.Identity, taskID uint64, name string, completed bool) (tasksvc.Task, error) {
	if taskID == 0 || id.UserID == 0 {
		return tasksvc.Task{}, tasksvc.ErrInvalidArgument
	}

	var (
		task    tasksvc.Task
		matched bool
		err     error
	)
	if id.IsAdmin {
		task, matched, err = s.tasks.UpdateByID(taskID, name, completed)
	} else {
		task, matched, err = s.tasks.UpdateOwned(taskID, id.UserID, name, completed)
	}
	if err != nil {
		return tasksvc.Task{}, err
	}

	if !matched {
		exists, err := s.tasks.Exists(taskID)
		if err != nil {
			return tasksvc.Task{}, err
		}
		if !exists {
			return tasksvc.Task{}, tasksvc.ErrTaskNotFound
		}
		return tasksvc.Task{}, tasksvc.ErrNotPermitted
	}

	return task, nil
}

func (s basicService) DeleteTask(_ context.Context, taskID uint64) (bool, error) {
	if taskID == 0 {
		return false, tasksvc.ErrInvalidArgument
	}
	return s.tasks.Delete(taskID)
}
