package domain

import (
	"context"
	"time"
)

// TaskStatus — статус задачи.
type TaskStatus string

const (
	StatusUnassigned TaskStatus = "UNASSIGNED"
	StatusAssigned   TaskStatus = "ASSIGNED"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// ValidStatus проверяет принадлежность значения к множеству статусов.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusUnassigned, StatusAssigned, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task представляет задачу команды.
type Task struct {
	ID             string
	TeamID         string
	AssignedUserID *string
	Title          string
	Description    *string
	Status         TaskStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AssignmentRecord — append-only запись аудита смены исполнителя задачи.
// FromUserID/ToUserID равны nil для неназначенного состояния.
type AssignmentRecord struct {
	ID              string
	TaskID          string
	FromUserID      *string
	ToUserID        *string
	ChangedByUserID string
	ChangedAt       time.Time
}

// TaskRepository определяет контракт для работы с хранилищем задач
// и истории назначений.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, taskID string) (*Task, error)
	UpdateDetails(ctx context.Context, taskID string, title, description *string) (*Task, error)
	// DeleteCascade удаляет задачу вместе с её историей назначений.
	DeleteCascade(ctx context.Context, taskID string) error
	TasksOfTeam(ctx context.Context, teamID string) ([]*Task, error)
	HistoryOfTask(ctx context.Context, taskID string) ([]*AssignmentRecord, error)
	// SetAssignment атомарно добавляет запись истории и обновляет
	// AssignedUserID, Status (ASSIGNED либо UNASSIGNED при toUserID == nil)
	// и UpdatedAt задачи. Тройное обновление не должно чередоваться
	// с другими мутациями.
	SetAssignment(ctx context.Context, taskID string, toUserID *string, changedByUserID string) (*Task, error)
	SetStatus(ctx context.Context, taskID string, status TaskStatus) (*Task, error)
}
