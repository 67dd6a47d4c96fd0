package storage

import (
	"context"
	"errors"

	"github.com/tasklane/tasklane/internal/models"
)

var (
	// ErrDuplicateEmail is returned when the unique constraint on users.email
	// rejects an insert.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrNotFound covers both a missing record and a record owned by another
	// user; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("record not found")
)

type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// TaskStore scopes every operation by owner id. The owner argument is
// mandatory so no query can accidentally run unscoped.
type TaskStore interface {
	CreateTask(ctx context.Context, ownerID string, req *models.CreateTaskRequest) (*models.Task, error)
	ListTasks(ctx context.Context, ownerID string) ([]*models.Task, error)
	GetTask(ctx context.Context, ownerID, taskID string) (*models.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID string, req *models.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID string) error
}
