package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tasklane/tasklane/internal/models"
)

// MemoryUserStore and MemoryTaskStore back the unit tests; production wiring
// uses the Postgres stores.

type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*models.User // keyed by id
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users: make(map[string]*models.User),
	}
}

func (s *MemoryUserStore) CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[user.ID] = user

	copied := *user
	return &copied, nil
}

func (s *MemoryUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

type memoryTask struct {
	task *models.Task
	seq  uint64
}

type MemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*memoryTask
	seq   uint64
}

func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{
		tasks: make(map[string]*memoryTask),
	}
}

func (s *MemoryTaskStore) CreateTask(ctx context.Context, ownerID string, req *models.CreateTaskRequest) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	now := time.Now()
	task := &models.Task{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusPending,
		Priority:    priority,
		DueDate:     req.DueDate,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.seq++
	s.tasks[task.ID] = &memoryTask{task: task, seq: s.seq}

	copied := *task
	return &copied, nil
}

func (s *MemoryTaskStore) ListTasks(ctx context.Context, ownerID string) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*memoryTask, 0)
	for _, e := range s.tasks {
		if e.task.UserID == ownerID {
			entries = append(entries, e)
		}
	}

	// Newest created first; insertion order breaks timestamp ties.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].task.CreatedAt.Equal(entries[j].task.CreatedAt) {
			return entries[i].seq > entries[j].seq
		}
		return entries[i].task.CreatedAt.After(entries[j].task.CreatedAt)
	})

	tasks := make([]*models.Task, 0, len(entries))
	for _, e := range entries {
		copied := *e.task
		tasks = append(tasks, &copied)
	}
	return tasks, nil
}

func (s *MemoryTaskStore) GetTask(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.tasks[taskID]
	if !exists || e.task.UserID != ownerID {
		return nil, ErrNotFound
	}

	copied := *e.task
	return &copied, nil
}

func (s *MemoryTaskStore) UpdateTask(ctx context.Context, ownerID, taskID string, req *models.UpdateTaskRequest) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.tasks[taskID]
	if !exists || e.task.UserID != ownerID {
		return nil, ErrNotFound
	}

	task := e.task
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	task.UpdatedAt = time.Now()

	copied := *task
	return &copied, nil
}

func (s *MemoryTaskStore) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.tasks[taskID]
	if !exists || e.task.UserID != ownerID {
		return ErrNotFound
	}

	delete(s.tasks, taskID)
	return nil
}
