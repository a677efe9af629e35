package usecase

import (
	"context"
	"errors"
	"sync"

	"team-task-service/internal/domain"
)

// TeamUseCase реализует бизнес-логику для работы с командами и участниками.
// Каждая мутирующая операция целиком, от проверок до записи, выполняется
// под общим операционным замком ops: проверки инвариантов не могут
// чередоваться с мутациями параллельных запросов.
type TeamUseCase struct {
	teamRepo domain.TeamRepository
	userRepo domain.UserRepository
	access   *accessControl
	ops      sync.Locker
}

// NewTeamUseCase создает новый экземпляр TeamUseCase.
func NewTeamUseCase(teamRepo domain.TeamRepository, userRepo domain.UserRepository, ops sync.Locker) domain.TeamUseCase {
	return &TeamUseCase{
		teamRepo: teamRepo,
		userRepo: userRepo,
		access:   newAccessControl(teamRepo),
		ops:      ops,
	}
}

// CreateTeam создает команду; создатель атомарно становится её единственным ADMIN.
func (uc *TeamUseCase) CreateTeam(ctx context.Context, caller *domain.Identity, name string) (*domain.Team, error) {
	uc.ops.Lock()
	defer uc.ops.Unlock()

	user, err := uc.access.requireAuthenticated(caller)
	if err != nil {
		return nil, err
	}

	team := &domain.Team{Name: name}
	if _, err := uc.teamRepo.CreateWithAdmin(ctx, team, user.UserID); err != nil {
		return nil, err
	}
	return team, nil
}

// GetTeam возвращает команду. Доступна только её участникам.
func (uc *TeamUseCase) GetTeam(ctx context.Context, caller *domain.Identity, teamID string) (*domain.Team, error) {
	if _, err := uc.access.requireTeamMember(ctx, caller, teamID); err != nil {
		return nil, err
	}
	return uc.teamRepo.GetByID(ctx, teamID)
}

// ListUserTeams возвращает команды, в которых состоит вызывающий.
func (uc *TeamUseCase) ListUserTeams(ctx context.Context, caller *domain.Identity) ([]*domain.Team, error) {
	user, err := uc.access.requireAuthenticated(caller)
	if err != nil {
		return nil, err
	}
	return uc.teamRepo.TeamsOfUser(ctx, user.UserID)
}

// UpdateTeam переименовывает команду. Требует роль ADMIN.
func (uc *TeamUseCase) UpdateTeam(ctx context.Context, caller *domain.Identity, teamID string, name *string) (*domain.Team, error) {
	uc.ops.Lock()
	defer uc.ops.Unlock()

	if _, err := uc.access.requireRole(ctx, caller, teamID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if name == nil {
		return uc.teamRepo.GetByID(ctx, teamID)
	}
	return uc.teamRepo.Rename(ctx, teamID, *name)
}

// DeleteTeam удаляет команду каскадно: задачи, их история назначений
// и все членства исчезают вместе с ней. Требует роль ADMIN. Необратимо.
func (uc *TeamUseCase) DeleteTeam(ctx context.Context, caller *domain.Identity, teamID string) error {
	uc.ops.Lock()
	defer uc.ops.Unlock()

	if _, err := uc.access.requireRole(ctx, caller, teamID, domain.RoleAdmin); err != nil {
		return err
	}
	return uc.teamRepo.DeleteCascade(ctx, teamID)
}

// ListMembers возвращает участников команды. Доступно любому её участнику.
func (uc *TeamUseCase) ListMembers(ctx context.Context, caller *domain.Identity, teamID string) ([]*domain.TeamMember, error) {
	if _, err := uc.access.requireTeamMember(ctx, caller, teamID); err != nil {
		return nil, err
	}
	return uc.teamRepo.MembersOfTeam(ctx, teamID)
}

// AddMember добавляет пользователя в команду. Требует роль ADMIN.
func (uc *TeamUseCase) AddMember(ctx context.Context, caller *domain.Identity, userID, teamID string, role domain.TeamRole) (*domain.TeamMember, error) {
	uc.ops.Lock()
	defer uc.ops.Unlock()

	// 1. Право на изменение состава
	if _, err := uc.access.requireRole(ctx, caller, teamID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	// 2. Команда и пользователь должны существовать
	if _, err := uc.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	// 3. Пара (userID, teamID) уникальна
	if _, err := uc.teamRepo.FindMember(ctx, userID, teamID); err == nil {
		return nil, domain.ErrAlreadyMember
	} else if !errors.Is(err, domain.ErrMemberNotFound) {
		return nil, err
	}

	if role == "" {
		role = domain.RoleUser
	}

	member := &domain.TeamMember{
		UserID: userID,
		TeamID: teamID,
		Role:   role,
	}
	if err := uc.teamRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// UpdateMemberRole меняет роль участника. Требует роль ADMIN в его команде.
// Самопонижение единственного админа запрещено: команда не может
// остаться без ADMIN через эту операцию.
func (uc *TeamUseCase) UpdateMemberRole(ctx context.Context, caller *domain.Identity, memberID string, role domain.TeamRole) (*domain.TeamMember, error) {
	uc.ops.Lock()
	defer uc.ops.Unlock()

	member, err := uc.teamRepo.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	actor, err := uc.access.requireRole(ctx, caller, member.TeamID, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if actor.ID == memberID && role != domain.RoleAdmin {
		admins, err := uc.teamRepo.CountAdmins(ctx, member.TeamID)
		if err != nil {
			return nil, err
		}
		if admins <= 1 {
			return nil, domain.ErrLastAdmin
		}
	}

	return uc.teamRepo.UpdateMemberRole(ctx, memberID, role)
}

// RemoveMember удаляет участника из команды. Требует роль ADMIN в его команде.
// Самоудаление единственного админа запрещено.
func (uc *TeamUseCase) RemoveMember(ctx context.Context, caller *domain.Identity, memberID string) error {
	uc.ops.Lock()
	defer uc.ops.Unlock()

	member, err := uc.teamRepo.GetMember(ctx, memberID)
	if err != nil {
		return err
	}

	actor, err := uc.access.requireRole(ctx, caller, member.TeamID, domain.RoleAdmin)
	if err != nil {
		return err
	}

	if actor.ID == memberID {
		admins, err := uc.teamRepo.CountAdmins(ctx, member.TeamID)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return domain.ErrLastAdmin
		}
	}

	return uc.teamRepo.RemoveMember(ctx, memberID)
}
