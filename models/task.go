package models

import (
	"encoding/json"
	"time"
)

// Статусы задачи. Переходы задаются вызывающим кодом, автомата состояний нет:
// paused существует только ради элементов управления в интерфейсе.
const (
	TaskStatusPending   = "pending"
	TaskStatusRunning   = "running"
	TaskStatusPaused    = "paused"
	TaskStatusCompleted = "completed"
	TaskStatusFailed    = "failed"
)

// Task — запись об одной массовой операции и её итоге.
type Task struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Status    string          `json:"status"`
	Progress  int             `json:"progress"`
	Config    json.RawMessage `json:"config"`
	StartTime *time.Time      `json:"startTime"`
	EndTime   *time.Time      `json:"endTime"`
	CreatedAt time.Time       `json:"createdAt"`
	UserID    int             `json:"userId"`
}

// TaskUpdate — частичное обновление задачи.
type TaskUpdate struct {
	Name      *string         `json:"name"`
	Status    *string         `json:"status"`
	Progress  *int            `json:"progress"`
	Config    json.RawMessage `json:"config"`
	StartTime *time.Time      `json:"startTime"`
	EndTime   *time.Time      `json:"endTime"`
}
