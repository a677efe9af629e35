package domain

import (
	"context"
	"time"
)

// TeamRole — роль участника внутри команды (не глобальный атрибут пользователя).
type TeamRole string

const (
	RoleAdmin TeamRole = "ADMIN"
	RoleUser  TeamRole = "USER"
)

// ValidRole проверяет принадлежность значения к множеству ролей.
func ValidRole(r TeamRole) bool {
	return r == RoleAdmin || r == RoleUser
}

// Team представляет команду.
type Team struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// TeamMember связывает пользователя с командой. Пара (UserID, TeamID) уникальна.
type TeamMember struct {
	ID       string
	UserID   string
	TeamID   string
	Role     TeamRole
	JoinedAt time.Time
}

// TeamRepository определяет контракт для работы с хранилищем команд и участников.
type TeamRepository interface {
	// CreateWithAdmin создает команду и её первого участника с ролью ADMIN
	// как одну атомарную операцию: команда никогда не наблюдаема без админа.
	CreateWithAdmin(ctx context.Context, team *Team, adminUserID string) (*TeamMember, error)
	GetByID(ctx context.Context, teamID string) (*Team, error)
	Rename(ctx context.Context, teamID, name string) (*Team, error)
	// DeleteCascade удаляет команду, все её задачи (с их историей назначений)
	// и все членства. Частичное состояние каскада не наблюдаемо.
	DeleteCascade(ctx context.Context, teamID string) error

	GetMember(ctx context.Context, memberID string) (*TeamMember, error)
	FindMember(ctx context.Context, userID, teamID string) (*TeamMember, error)
	MembersOfTeam(ctx context.Context, teamID string) ([]*TeamMember, error)
	TeamsOfUser(ctx context.Context, userID string) ([]*Team, error)
	AddMember(ctx context.Context, member *TeamMember) error
	UpdateMemberRole(ctx context.Context, memberID string, role TeamRole) (*TeamMember, error)
	RemoveMember(ctx context.Context, memberID string) error
	CountAdmins(ctx context.Context, teamID string) (int, error)
}
