package service

import (
	"context"
	"fmt"

	"github.com/tasklane/tasklane/internal/models"
	"github.com/tasklane/tasklane/internal/storage"
	"github.com/tasklane/tasklane/internal/validation"
)

// TaskService executes CRUD over tasks. Every method takes the authenticated
// owner id; there is no unscoped path to the store.
type TaskService struct {
	tasks storage.TaskStore
}

func NewTaskService(tasks storage.TaskStore) *TaskService {
	return &TaskService{tasks: tasks}
}

func (s *TaskService) Create(ctx context.Context, ownerID string, req *models.CreateTaskRequest) (*models.Task, error) {
	if err := validation.ValidateTitle(req.Title); err != nil {
		return nil, err
	}
	if req.Priority != "" {
		if err := validation.ValidatePriority(req.Priority); err != nil {
			return nil, err
		}
	}

	task, err := s.tasks.CreateTask(ctx, ownerID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

func (s *TaskService) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	tasks, err := s.tasks.ListTasks(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	return s.tasks.GetTask(ctx, ownerID, taskID)
}

func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, req *models.UpdateTaskRequest) (*models.Task, error) {
	if req.Title != nil {
		if err := validation.ValidateTitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := validation.ValidateStatus(*req.Status); err != nil {
			return nil, err
		}
	}
	if req.Priority != nil {
		if err := validation.ValidatePriority(*req.Priority); err != nil {
			return nil, err
		}
	}

	return s.tasks.UpdateTask(ctx, ownerID, taskID, req)
}

func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	return s.tasks.DeleteTask(ctx, ownerID, taskID)
}
