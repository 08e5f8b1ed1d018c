package tasksvc

import "errors"

type Task struct {
	ID        uint64 `json:"id" gorm:"primaryKey"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	// UserID is set once at creation and never written again; no update
	// statement in this package includes the column.
	UserID uint64 `json:"user_id"`
}

type TaskRepository interface {
	Create(name string, completed bool, userID uint64) (Task, error)
	FindAll() ([]Task, error)
	FindByOwner(userID uint64) ([]Task, error)
	UpdateByID(taskID uint64, name string, completed bool) (Task, bool, error)
	UpdateOwned(taskID, userID uint64, name string, completed bool) (Task, bool, error)
	Exists(taskID uint64) (bool, error)
	Delete(taskID uint64) (bool, error)
}

var (
	ErrInvalidArgument = errors.New("task name and completed status are required")
	ErrTaskNotFound    = errors.New("task not found")
	ErrNotPermitted    = errors.New("you do not own this task or lack permissions")
)
