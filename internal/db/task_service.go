package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/balkashynov/tally/internal/errors"
	"github.com/balkashynov/tally/internal/models"
	"github.com/balkashynov/tally/internal/stats"
)

// TaskService reads and writes tasks
type TaskService struct {
	store *Store
}

// CreateTaskRequest holds the data needed to create a new task
type CreateTaskRequest struct {
	Title       string
	Description string
	Priority    models.Priority // empty means medium
	DueDate     *time.Time
	Category    string
	Time        string
	Completed   bool
}

// TaskPatch lists the task fields to change; nil fields are left alone
type TaskPatch struct {
	Title        *string
	Description  *string
	Priority     *models.Priority
	DueDate      *time.Time
	ClearDueDate bool
	Category     *string
	Completed    *bool
	Time         *string
}

// Create creates a new task
func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	now := s.store.now()
	task := models.Task{
		ID:          s.store.ids.New(),
		CreatedAt:   now,
		ModifiedAt:  now,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     req.DueDate,
		Category:    req.Category,
		Completed:   req.Completed,
		Time:        req.Time,
	}

	if err := s.store.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, storeErr("create task", err)
	}
	return &task, nil
}

// GetAll returns every task, newest first
func (s *TaskService) GetAll(ctx context.Context) ([]models.Task, error) {
	return s.find(ctx, "list tasks", func(q *gorm.DB) *gorm.DB {
		return q.Order("created_at DESC")
	})
}

// GetByID retrieves a task by ID
func (s *TaskService) GetByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := s.store.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("task", id)
		}
		return nil, storeErr("find task", err)
	}
	return &task, nil
}

// GetByDateRange returns tasks due within [from, to], earliest first.
// A zero bound leaves that end open; tasks without a due date never match.
func (s *TaskService) GetByDateRange(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	return s.find(ctx, "list tasks by due date", func(q *gorm.DB) *gorm.DB {
		q = q.Where("due_date IS NOT NULL")
		if !from.IsZero() {
			q = q.Where("due_date >= ?", from)
		}
		if !to.IsZero() {
			q = q.Where("due_date <= ?", to)
		}
		return q.Order("due_date ASC")
	})
}

// GetByPriority returns tasks of one priority, newest first
func (s *TaskService) GetByPriority(ctx context.Context, priority models.Priority) ([]models.Task, error) {
	return s.find(ctx, "list tasks by priority", func(q *gorm.DB) *gorm.DB {
		return q.Where("priority = ?", priority).Order("created_at DESC")
	})
}

// GetCompleted returns completed tasks, most recently modified first
func (s *TaskService) GetCompleted(ctx context.Context) ([]models.Task, error) {
	return s.find(ctx, "list completed tasks", func(q *gorm.DB) *gorm.DB {
		return q.Where("completed = ?", true).Order("modified_at DESC")
	})
}

// GetPending returns open tasks, earliest due first
func (s *TaskService) GetPending(ctx context.Context) ([]models.Task, error) {
	return s.find(ctx, "list pending tasks", func(q *gorm.DB) *gorm.DB {
		return q.Where("completed = ?", false).Order("due_date ASC")
	})
}

func (s *TaskService) find(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) ([]models.Task, error) {
	var tasks []models.Task
	if err := scope(s.store.db.WithContext(ctx)).Find(&tasks).Error; err != nil {
		return nil, storeErr(op, err)
	}
	return tasks, nil
}

// Update applies a patch and returns the updated task
func (s *TaskService) Update(ctx context.Context, id string, patch TaskPatch) (*models.Task, error) {
	updates := map[string]interface{}{
		"modified_at": s.store.now(),
	}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.ClearDueDate {
		updates["due_date"] = nil
	} else if patch.DueDate != nil {
		updates["due_date"] = *patch.DueDate
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Completed != nil {
		updates["completed"] = *patch.Completed
	}
	if patch.Time != nil {
		updates["time"] = *patch.Time
	}

	result := s.store.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, storeErr("update task", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NotFound("task", id)
	}

	return s.GetByID(ctx, id)
}

// ToggleComplete flips the completed flag
func (s *TaskService) ToggleComplete(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	completed := !task.Completed
	return s.Update(ctx, id, TaskPatch{Completed: &completed})
}

// Delete removes a task
func (s *TaskService) Delete(ctx context.Context, id string) error {
	result := s.store.db.WithContext(ctx).Delete(&models.Task{}, "id = ?", id)
	if result.Error != nil {
		return storeErr("delete task", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("task", id)
	}
	return nil
}

// Search matches title, description and category case-insensitively
func (s *TaskService) Search(ctx context.Context, query string) ([]models.Task, error) {
	tasks, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	var matches []models.Task
	for _, t := range tasks {
		if containsFold(t.Title, query) || containsFold(t.Description, query) || containsFold(t.Category, query) {
			matches = append(matches, t)
		}
	}
	return matches, nil
}

// Statistics summarises every task in the store
func (s *TaskService) Statistics(ctx context.Context) (stats.TaskStatistics, error) {
	tasks, err := s.GetAll(ctx)
	if err != nil {
		return stats.TaskStatistics{}, err
	}
	return stats.ComputeTaskStatistics(tasks), nil
}

// containsFold reports whether lowerQuery occurs in s, ignoring case
func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}
