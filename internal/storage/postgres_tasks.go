package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tasklane/tasklane/internal/database"
	"github.com/tasklane/tasklane/internal/models"
)

type PostgresTaskStore struct {
	db *database.DBManager
}

func NewPostgresTaskStore(db *database.DBManager) *PostgresTaskStore {
	return &PostgresTaskStore{db: db}
}

func (s *PostgresTaskStore) CreateTask(ctx context.Context, ownerID string, req *models.CreateTaskRequest) (*models.Task, error) {
	taskID := uuid.New().String()
	now := time.Now()

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	query := `
		INSERT INTO tasks (id, title, description, status, priority, due_date, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, title, description, status, priority, due_date, user_id, created_at, updated_at
	`

	var task models.Task
	err := s.db.Write().QueryRow(ctx, query,
		taskID,
		req.Title,
		req.Description,
		models.StatusPending,
		priority,
		req.DueDate,
		ownerID,
		now,
		now,
	).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &task, nil
}

func (s *PostgresTaskStore) ListTasks(ctx context.Context, ownerID string) ([]*models.Task, error) {
	query := `
		SELECT id, title, description, status, priority, due_date, user_id, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.Read().Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		var task models.Task
		err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.Priority,
			&task.DueDate,
			&task.UserID,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		tasks = append(tasks, &task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tasks, nil
}

// GetTask filters by id and owner in a single query so a missing task and a
// task owned by someone else are indistinguishable.
func (s *PostgresTaskStore) GetTask(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	query := `
		SELECT id, title, description, status, priority, due_date, user_id, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	var task models.Task
	err := s.db.Read().QueryRow(ctx, query, taskID, ownerID).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &task, nil
}

func (s *PostgresTaskStore) UpdateTask(ctx context.Context, ownerID, taskID string, req *models.UpdateTaskRequest) (*models.Task, error) {
	query := `
		UPDATE tasks
		SET title       = COALESCE($3, title),
			description = COALESCE($4, description),
			status      = COALESCE($5, status),
			priority    = COALESCE($6, priority),
			due_date    = COALESCE($7, due_date),
			updated_at  = $8
		WHERE id = $1 AND user_id = $2
		RETURNING id, title, description, status, priority, due_date, user_id, created_at, updated_at
	`

	var task models.Task
	err := s.db.Write().QueryRow(ctx, query,
		taskID,
		ownerID,
		req.Title,
		req.Description,
		req.Status,
		req.Priority,
		req.DueDate,
		time.Now(),
	).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return &task, nil
}

func (s *PostgresTaskStore) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	query := `
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	cmdTag, err := s.db.Write().Exec(ctx, query, taskID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
