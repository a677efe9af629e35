package usecase

import (
	"context"
	"errors"
	"sync"

	"team-task-service/internal/domain"
)

// TaskUseCase реализует бизнес-логику задач и машину состояний назначения.
// Мутирующие операции целиком выполняются под операционным замком ops:
// проверка членства назначаемого и запись назначения не разрываются
// параллельным удалением участника.
type TaskUseCase struct {
	taskRepo domain.TaskRepository
	teamRepo domain.TeamRepository
	userRepo domain.UserRepository
	access   *accessControl
	ops      sync.Locker
}

// NewTaskUseCase создает новый экземпляр TaskUseCase.
func NewTaskUseCase(taskRepo domain.TaskRepository, teamRepo domain.TeamRepository, userRepo domain.UserRepository, ops sync.Locker) domain.TaskUseCase {
	return &TaskUseCase{
		taskRepo: taskRepo,
		teamRepo: teamRepo,
		userRepo: userRepo,
		access:   newAccessControl(teamRepo),
		ops:      ops,
	}
}

// requireTaskOwnerOrAdmin пропускает ADMIN команды задачи либо её текущего
// исполнителя. Общий гейт для updateTask и updateTaskStatus.
func (uc *TaskUseCase) requireTaskOwnerOrAdmin(ctx context.Context, caller *domain.Identity, task *domain.Task) (*domain.TeamMember, error) {
	member, err := uc.access.requireTeamMember(ctx, caller, task.TeamID)
	if err != nil {
		return nil, err
	}
	if member.Role == domain.RoleAdmin {
		return member, nil
	}
	if task.AssignedUserID == nil || *task.AssignedUserID != member.UserID {
		return nil, domain.ErrNotTaskOwner
	}
	return member, nil
}

// CreateTask создает задачу в статусе UNASSIGNED без исполнителя.
// Доступно любому участнику команды.
func (uc *TaskUseCase) CreateTask(ctx context.Context, caller *domain.Identity, teamID, title string, description *string) (*domain.Task, error) {
	uc.ops.Lock()
	defer uc.ops.Unlock()

	if _, err := uc.access.requireTeamMember(ctx, caller, teamID); err != nil {
		return nil, err
	}
	if _, err := uc.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	task := &domain.Task{
		TeamID:      teamID,
		Title:       title,
		Description: description,
		Status:      domain.StatusUnassigned,
	}
	if err := uc.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// GetTask возвращает задачу. Доступна только участникам её команды.
func (uc *TaskUseCase) GetTask(ctx context.Context, caller *domain.Identity, taskID string) (*domain.Task, error) {
	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.access.requireTeamMember(ctx, caller, task.TeamID); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTeamTasks возвращает задачи команды.
func (uc *TaskUseCase) ListTeamTasks(ctx context.Context, caller *domain.Identity, teamID string) ([]*domain.Task, error) {
	if _, err := uc.access.requireTeamMember(ctx, caller, teamID); err != nil {
		return nil, err
	}
	if _, err := uc.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	return uc.taskRepo.TasksOfTeam(ctx, teamID)
}

// UpdateTask меняет заголовок/описание. Доступно ADMIN команды
// либо текущему исполнителю.
func (uc *TaskUseCase) UpdateTask(ctx context.Context, caller *domain.Identity, taskID string, title, description *string) (*domain.Task, error) {
	uc.ops.Lock()
	defer uc.ops.Unlock()

	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.requireTaskOwnerOrAdmin(ctx, caller, task); err != nil {
		return nil, err
	}
	return uc.taskRepo.UpdateDetails(ctx, taskID, title, description)
}

// DeleteTask удаляет задачу вместе с её историей назначений. Требует ADMIN.
func (uc *TaskUseCase) DeleteTask(ctx context.Context, caller *domain.Identity, taskID string) error {
	uc.ops.Lock()
	defer uc.ops.Unlock()

	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if _, err := uc.access.requireRole(ctx, caller, task.TeamID, domain.RoleAdmin); err != nil {
		return err
	}
	return uc.taskRepo.DeleteCascade(ctx, taskID)
}

// AssignTask назначает исполнителя. Требует ADMIN команды задачи.
// Исполнитель обязан быть участником этой команды. Ровно одна запись
// истории на вызов; смена исполнителя, статуса и запись аудита атомарны.
func (uc *TaskUseCase) AssignTask(ctx context.Context, caller *domain.Identity, taskID, userID string) (*domain.Task, error) {
	uc.ops.Lock()
	defer uc.ops.Unlock()

	// 1. Задача должна существовать
	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	// 2. Право назначать
	actor, err := uc.access.requireRole(ctx, caller, task.TeamID, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	// 3. Назначаемый существует и состоит в команде задачи
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := uc.teamRepo.FindMember(ctx, userID, task.TeamID); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return nil, domain.ErrNotMemberOfTeam
		}
		return nil, err
	}

	return uc.taskRepo.SetAssignment(ctx, taskID, &userID, actor.UserID)
}

// UnassignTask снимает исполнителя и возвращает задачу в UNASSIGNED.
// Требует ADMIN. Пишет запись истории с пустым ToUserID.
func (uc *TaskUseCase) UnassignTask(ctx context.Context, caller *domain.Identity, taskID string) (*domain.Task, error) {
	uc.ops.Lock()
	defer uc.ops.Unlock()

	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	actor, err := uc.access.requireRole(ctx, caller, task.TeamID, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return uc.taskRepo.SetAssignment(ctx, taskID, nil, actor.UserID)
}

// UpdateTaskStatus меняет статус задачи. Доступно ADMIN либо исполнителю.
// Любой из четырех статусов допустим из любого текущего; исполнитель
// не меняется, история не пишется.
func (uc *TaskUseCase) UpdateTaskStatus(ctx context.Context, caller *domain.Identity, taskID string, status domain.TaskStatus) (*domain.Task, error) {
	uc.ops.Lock()
	defer uc.ops.Unlock()

	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.requireTaskOwnerOrAdmin(ctx, caller, task); err != nil {
		return nil, err
	}
	return uc.taskRepo.SetStatus(ctx, taskID, status)
}

// GetAssignmentHistory возвращает историю назначений задачи
// в хронологическом порядке.
func (uc *TaskUseCase) GetAssignmentHistory(ctx context.Context, caller *domain.Identity, taskID string) ([]*domain.AssignmentRecord, error) {
	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.access.requireTeamMember(ctx, caller, task.TeamID); err != nil {
		return nil, err
	}
	return uc.taskRepo.HistoryOfTask(ctx, taskID)
}
