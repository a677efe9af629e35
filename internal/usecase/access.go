package usecase

import (
	"context"
	"errors"

	"team-task-service/internal/domain"
)

// accessControl — проверки доступа над (вызывающий, команда).
// Каждая мутация и каждый запрос к данным команды проходит ровно
// через одну из этих трех проверок до обращения к хранилищу.
type accessControl struct {
	teamRepo domain.TeamRepository
}

func newAccessControl(teamRepo domain.TeamRepository) *accessControl {
	return &accessControl{teamRepo: teamRepo}
}

// requireAuthenticated возвращает личность вызывающего
// либо ErrUnauthenticated, если её нет.
func (a *accessControl) requireAuthenticated(caller *domain.Identity) (*domain.Identity, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	return caller, nil
}

// requireTeamMember проверяет аутентификацию и членство вызывающего в команде.
// Отсутствие членства означает, что вызывающему команда не видна вовсе.
func (a *accessControl) requireTeamMember(ctx context.Context, caller *domain.Identity, teamID string) (*domain.TeamMember, error) {
	user, err := a.requireAuthenticated(caller)
	if err != nil {
		return nil, err
	}

	member, err := a.teamRepo.FindMember(ctx, user.UserID, teamID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return nil, domain.ErrNotTeamMember
		}
		return nil, err
	}
	return member, nil
}

// requireRole проверяет членство и роль вызывающего в команде.
func (a *accessControl) requireRole(ctx context.Context, caller *domain.Identity, teamID string, roles ...domain.TeamRole) (*domain.TeamMember, error) {
	member, err := a.requireTeamMember(ctx, caller, teamID)
	if err != nil {
		return nil, err
	}

	for _, role := range roles {
		if member.Role == role {
			return member, nil
		}
	}
	return nil, domain.ErrRoleRequired
}
