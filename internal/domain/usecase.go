package domain

import "context"

// AuthUseCase определяет бизнес-логику сессий: регистрация, вход, обновление токенов.
type AuthUseCase interface {
	Register(ctx context.Context, email, password string, name *string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Me(ctx context.Context, caller *Identity) (*User, error)
}

// TeamUseCase определяет бизнес-логику для работы с командами и участниками.
type TeamUseCase interface {
	CreateTeam(ctx context.Context, caller *Identity, name string) (*Team, error)
	GetTeam(ctx context.Context, caller *Identity, teamID string) (*Team, error)
	ListUserTeams(ctx context.Context, caller *Identity) ([]*Team, error)
	UpdateTeam(ctx context.Context, caller *Identity, teamID string, name *string) (*Team, error)
	DeleteTeam(ctx context.Context, caller *Identity, teamID string) error

	ListMembers(ctx context.Context, caller *Identity, teamID string) ([]*TeamMember, error)
	AddMember(ctx context.Context, caller *Identity, userID, teamID string, role TeamRole) (*TeamMember, error)
	UpdateMemberRole(ctx context.Context, caller *Identity, memberID string, role TeamRole) (*TeamMember, error)
	RemoveMember(ctx context.Context, caller *Identity, memberID string) error
}

// TaskUseCase определяет бизнес-логику для работы с задачами и историей назначений.
type TaskUseCase interface {
	CreateTask(ctx context.Context, caller *Identity, teamID, title string, description *string) (*Task, error)
	GetTask(ctx context.Context, caller *Identity, taskID string) (*Task, error)
	ListTeamTasks(ctx context.Context, caller *Identity, teamID string) ([]*Task, error)
	UpdateTask(ctx context.Context, caller *Identity, taskID string, title, description *string) (*Task, error)
	DeleteTask(ctx context.Context, caller *Identity, taskID string) error

	AssignTask(ctx context.Context, caller *Identity, taskID, userID string) (*Task, error)
	UnassignTask(ctx context.Context, caller *Identity, taskID string) (*Task, error)
	UpdateTaskStatus(ctx context.Context, caller *Identity, taskID string, status TaskStatus) (*Task, error)
	GetAssignmentHistory(ctx context.Context, caller *Identity, taskID string) ([]*AssignmentRecord, error)
}
