package gorm

import (
	stdgorm "gorm.io/gorm"
	"taskapi/tasksvc"
)

type taskRepository struct {
	db *stdgorm.DB
}

func NewTaskRepository(db *stdgorm.DB) tasksvc.TaskRepository {
	return &taskRepository{db}
}

func (t *taskRepository) Create(name string, completed bool, userID uint64) (tasksvc.Task, error) {
	task := tasksvc.Task{Name: name, Completed: completed, UserID: userID}
	result := t.db.Create(&task)

	return task, result.Error
}

func (t *taskRepository) FindAll() ([]tasksvc.Task, error) {
	tasks := []tasksvc.Task{}
	result := t.db.Order("user_id ASC, id ASC").Find(&tasks)

	return tasks, result.Error
}

func (t *taskRepository) FindByOwner(userID uint64) ([]tasksvc.Task, error) {
	tasks := []tasksvc.Task{}
	result := t.db.Where("user_id = ?", userID).Order("id ASC").Find(&tasks)

	return tasks, result.Error
}

// UpdateByID updates name and completed on any task matching taskID. The
// update shape is static: user_id is not part of the statement.
func (t *taskRepository) UpdateByID(taskID uint64, name string, completed bool) (tasksvc.Task, bool, error) {
	result := t.db.Model(&tasksvc.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{"name": name, "completed": completed})

	return t.updated(taskID, result)
}

// UpdateOwned is the owner-scoped variant: the row must match both taskID
// and userID in the WHERE clause, so the match and the write are one atomic
// statement. user_id is not part of the SET list.
func (t *taskRepository) UpdateOwned(taskID, userID uint64, name string, completed bool) (tasksvc.Task, bool, error) {
	result := t.db.Model(&tasksvc.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Updates(map[string]interface{}{"name": name, "completed": completed})

	return t.updated(taskID, result)
}

func (t *taskRepository) updated(taskID uint64, result *stdgorm.DB) (tasksvc.Task, bool, error) {
	if result.Error != nil {
		return tasksvc.Task{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return tasksvc.Task{}, false, nil
	}

	var task tasksvc.Task
	if err := t.db.First(&task, taskID).Error; err != nil {
		return tasksvc.Task{}, false, err
	}

	return task, true, nil
}

func (t *taskRepository) Exists(taskID uint64) (bool, error) {
	var count int64
	result := t.db.Model(&tasksvc.Task{}).Where("id = ?", taskID).Count(&count)

	return count > 0, result.Error
}

func (t *taskRepository) Delete(taskID uint64) (bool, error) {
	result := t.db.Delete(&tasksvc.Task{}, taskID)

	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, tasksvc.ErrTaskNotFound
	}

	return true, nil
}
