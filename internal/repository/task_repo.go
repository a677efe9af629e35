package repository

import (
	"context"
	"time"

	"team-task-service/internal/domain"
)

// TaskRepository реализует работу с задачами и историей назначений
// поверх in-memory Store.
type TaskRepository struct {
	store *Store
}

// NewTaskRepository создает новый экземпляр TaskRepository.
func NewTaskRepository(store *Store) domain.TaskRepository {
	return &TaskRepository{store: store}
}

// Create сохраняет задачу, присваивая свежий id и таймстемпы.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	task.ID = s.newID()
	task.CreatedAt = now
	task.UpdatedAt = now
	s.tasks[task.ID] = cloneTask(task)

	return nil
}

// GetByID возвращает задачу по идентификатору.
func (r *TaskRepository) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

// UpdateDetails обновляет заголовок и/или описание. nil означает "не менять".
func (r *TaskRepository) UpdateDetails(ctx context.Context, taskID string, title, description *string) (*domain.Task, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if title != nil {
		t.Title = *title
	}
	if description != nil {
		t.Description = strPtr(description)
	}
	t.UpdatedAt = time.Now().UTC()
	return cloneTask(t), nil
}

// DeleteCascade удаляет задачу вместе с её историей назначений.
func (r *TaskRepository) DeleteCascade(ctx context.Context, taskID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[taskID]; !ok {
		return domain.ErrTaskNotFound
	}
	for id, h := range s.history {
		if h.TaskID == taskID {
			delete(s.history, id)
		}
	}
	delete(s.tasks, taskID)
	return nil
}

// TasksOfTeam возвращает все задачи команды.
func (r *TaskRepository) TasksOfTeam(ctx context.Context, teamID string) ([]*domain.Task, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0)
	for id, t := range s.tasks {
		if t.TeamID == teamID {
			ids = append(ids, id)
		}
	}
	sortByID(ids)

	tasks := make([]*domain.Task, 0, len(ids))
	for _, id := range ids {
		tasks = append(tasks, cloneTask(s.tasks[id]))
	}
	return tasks, nil
}

// HistoryOfTask возвращает историю назначений задачи в хронологическом порядке.
func (r *TaskRepository) HistoryOfTask(ctx context.Context, taskID string) ([]*domain.AssignmentRecord, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0)
	for id, h := range s.history {
		if h.TaskID == taskID {
			ids = append(ids, id)
		}
	}
	sortByID(ids)

	records := make([]*domain.AssignmentRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, cloneRecord(s.history[id]))
	}
	return records, nil
}

// SetAssignment под одной блокировкой добавляет запись истории
// (FromUserID — исполнитель непосредственно перед вызовом) и обновляет
// исполнителя, статус и UpdatedAt задачи. toUserID == nil снимает назначение.
func (r *TaskRepository) SetAssignment(ctx context.Context, taskID string, toUserID *string, changedByUserID string) (*domain.Task, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	now := time.Now().UTC()

	record := &domain.AssignmentRecord{
		ID:              s.newID(),
		TaskID:          taskID,
		FromUserID:      strPtr(t.AssignedUserID),
		ToUserID:        strPtr(toUserID),
		ChangedByUserID: changedByUserID,
		ChangedAt:       now,
	}
	s.history[record.ID] = record

	t.AssignedUserID = strPtr(toUserID)
	if toUserID != nil {
		t.Status = domain.StatusAssigned
	} else {
		t.Status = domain.StatusUnassigned
	}
	t.UpdatedAt = now

	return cloneTask(t), nil
}

// SetStatus меняет статус задачи. Историю не пишет:
// аудит отслеживает только смену исполнителя.
func (r *TaskRepository) SetStatus(ctx context.Context, taskID string, status domain.TaskStatus) (*domain.Task, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return cloneTask(t), nil
}
