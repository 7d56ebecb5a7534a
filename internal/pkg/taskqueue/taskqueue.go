package taskqueue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	redisc "github.com/translearn/core/internal/pkg/redis"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

// ErrTaskNotFound is returned when a task id has expired or never existed.
var ErrTaskNotFound = errors.New("task not found")

// Task is a unit of background work stored in Redis.
type Task struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Status    TaskStatus      `json:"status"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	DedupKey  string          `json:"dedup_key,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

const (
	keyPrefix   = "tl:task:"
	keyDedupSet = "tl:tasks:dedup:" // hash: dedup_key -> task_id
	taskTTL     = 24 * time.Hour
)

// Service manages the Redis-backed task store.
type Service struct {
	rc *redisc.Client
}

func NewService(rc *redisc.Client) *Service {
	return &Service{rc: rc}
}

func (s *Service) taskKey(id string) string { return keyPrefix + id }

// Enqueue creates a new task. When dedupKey is set and a live task with
// the same key exists in a non-terminal state, that task is returned
// instead of creating a duplicate.
func (s *Service) Enqueue(ctx context.Context, taskType string, payload interface{}, dedupKey string) (*Task, error) {
	if dedupKey != "" {
		existingID, err := s.rc.Raw().HGet(ctx, keyDedupSet+taskType, dedupKey).Result()
		if err == nil && existingID != "" {
			existing, err := s.GetByID(ctx, existingID)
			if err == nil && (existing.Status == TaskPending || existing.Status == TaskRunning) {
				return existing, nil
			}
		}
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	task := &Task{
		ID:        uuid.New().String(),
		Type:      taskType,
		Payload:   payloadBytes,
		Status:    TaskPending,
		DedupKey:  dedupKey,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.save(ctx, task); err != nil {
		return nil, err
	}
	if dedupKey != "" {
		pipe := s.rc.Raw().TxPipeline()
		pipe.HSet(ctx, keyDedupSet+taskType, dedupKey, task.ID)
		pipe.Expire(ctx, keyDedupSet+taskType, taskTTL)
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, err
		}
	}
	return task, nil
}

// GetByID loads a task by id.
func (s *Service) GetByID(ctx context.Context, id string) (*Task, error) {
	data, err := s.rc.Raw().Get(ctx, s.taskKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	var task Task
	if err := json.Unmarshal([]byte(data), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// SetRunning marks the task as started.
func (s *Service) SetRunning(ctx context.Context, id string) error {
	return s.transition(ctx, id, func(t *Task) {
		t.Status = TaskRunning
	})
}

// Complete stores the task result and marks it completed.
func (s *Service) Complete(ctx context.Context, id string, result interface{}) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return s.transition(ctx, id, func(t *Task) {
		t.Status = TaskCompleted
		t.Result = data
		t.Error = ""
	})
}

// Fail marks the task failed with an error message.
func (s *Service) Fail(ctx context.Context, id string, cause error) error {
	return s.transition(ctx, id, func(t *Task) {
		t.Status = TaskFailed
		if cause != nil {
			t.Error = cause.Error()
		}
	})
}

func (s *Service) transition(ctx context.Context, id string, apply func(*Task)) error {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	apply(task)
	task.UpdatedAt = time.Now()
	return s.save(ctx, task)
}

func (s *Service) save(ctx context.Context, task *Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return s.rc.Set(ctx, s.taskKey(task.ID), data, taskTTL)
}
