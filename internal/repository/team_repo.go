package repository

import (
	"context"
	"time"

	"team-task-service/internal/domain"
)

// TeamRepository реализует работу с командами и членствами поверх in-memory Store.
type TeamRepository struct {
	store *Store
}

// NewTeamRepository создает новый экземпляр TeamRepository.
func NewTeamRepository(store *Store) domain.TeamRepository {
	return &TeamRepository{store: store}
}

// CreateWithAdmin создает команду и членство создателя с ролью ADMIN
// под одной блокировкой: команда без админа не наблюдаема ни в какой момент.
func (r *TeamRepository) CreateWithAdmin(ctx context.Context, team *domain.Team, adminUserID string) (*domain.TeamMember, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()

	team.ID = s.newID()
	team.CreatedAt = now
	s.teams[team.ID] = cloneTeam(team)

	member := &domain.TeamMember{
		ID:       s.newID(),
		UserID:   adminUserID,
		TeamID:   team.ID,
		Role:     domain.RoleAdmin,
		JoinedAt: now,
	}
	s.members[member.ID] = cloneMember(member)

	return member, nil
}

// GetByID возвращает команду по идентификатору.
func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (*domain.Team, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[teamID]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	return cloneTeam(t), nil
}

// Rename обновляет название команды.
func (r *TeamRepository) Rename(ctx context.Context, teamID, name string) (*domain.Team, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.teams[teamID]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	t.Name = name
	return cloneTeam(t), nil
}

// DeleteCascade удаляет команду, её задачи, историю назначений этих задач
// и все членства. Выполняется целиком под одной write-блокировкой.
func (r *TeamRepository) DeleteCascade(ctx context.Context, teamID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[teamID]; !ok {
		return domain.ErrTeamNotFound
	}

	// Задачи команды → их история
	teamTasks := make(map[string]struct{})
	for id, t := range s.tasks {
		if t.TeamID == teamID {
			teamTasks[id] = struct{}{}
		}
	}
	for id, h := range s.history {
		if _, ok := teamTasks[h.TaskID]; ok {
			delete(s.history, id)
		}
	}
	for id := range teamTasks {
		delete(s.tasks, id)
	}

	// Членства
	for id, m := range s.members {
		if m.TeamID == teamID {
			delete(s.members, id)
		}
	}

	delete(s.teams, teamID)
	return nil
}

// GetMember возвращает членство по идентификатору.
func (r *TeamRepository) GetMember(ctx context.Context, memberID string) (*domain.TeamMember, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[memberID]
	if !ok {
		return nil, domain.ErrMemberNotFound
	}
	return cloneMember(m), nil
}

// FindMember ищет членство по паре (userID, teamID).
func (r *TeamRepository) FindMember(ctx context.Context, userID, teamID string) (*domain.TeamMember, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.members {
		if m.UserID == userID && m.TeamID == teamID {
			return cloneMember(m), nil
		}
	}
	return nil, domain.ErrMemberNotFound
}

// MembersOfTeam возвращает всех участников команды.
func (r *TeamRepository) MembersOfTeam(ctx context.Context, teamID string) ([]*domain.TeamMember, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0)
	for id, m := range s.members {
		if m.TeamID == teamID {
			ids = append(ids, id)
		}
	}
	sortByID(ids)

	members := make([]*domain.TeamMember, 0, len(ids))
	for _, id := range ids {
		members = append(members, cloneMember(s.members[id]))
	}
	return members, nil
}

// TeamsOfUser возвращает команды, в которых состоит пользователь.
func (r *TeamRepository) TeamsOfUser(ctx context.Context, userID string) ([]*domain.Team, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	teamIDs := make([]string, 0)
	for _, m := range s.members {
		if m.UserID == userID {
			if _, ok := s.teams[m.TeamID]; ok {
				teamIDs = append(teamIDs, m.TeamID)
			}
		}
	}
	sortByID(teamIDs)

	teams := make([]*domain.Team, 0, len(teamIDs))
	for _, id := range teamIDs {
		teams = append(teams, cloneTeam(s.teams[id]))
	}
	return teams, nil
}

// AddMember сохраняет новое членство, присваивая свежий id и JoinedAt.
// Уникальность пары (userID, teamID) проверяет вызывающий use case.
func (r *TeamRepository) AddMember(ctx context.Context, member *domain.TeamMember) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	member.ID = s.newID()
	member.JoinedAt = time.Now().UTC()
	s.members[member.ID] = cloneMember(member)

	return nil
}

// UpdateMemberRole меняет роль участника.
func (r *TeamRepository) UpdateMemberRole(ctx context.Context, memberID string, role domain.TeamRole) (*domain.TeamMember, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[memberID]
	if !ok {
		return nil, domain.ErrMemberNotFound
	}
	m.Role = role
	return cloneMember(m), nil
}

// RemoveMember удаляет членство. Каскада нет: членство — листовая сущность.
func (r *TeamRepository) RemoveMember(ctx context.Context, memberID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[memberID]; !ok {
		return domain.ErrMemberNotFound
	}
	delete(s.members, memberID)
	return nil
}

// CountAdmins возвращает количество участников команды с ролью ADMIN.
func (r *TeamRepository) CountAdmins(ctx context.Context, teamID string) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, m := range s.members {
		if m.TeamID == teamID && m.Role == domain.RoleAdmin {
			count++
		}
	}
	return count, nil
}
