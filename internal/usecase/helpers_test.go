package usecase_test

import (
	"context"
	"testing"
	"time"

	"team-task-service/internal/auth"
	"team-task-service/internal/domain"
	"team-task-service/internal/repository"
	"team-task-service/internal/usecase"

	"github.com/stretchr/testify/require"
)

// env поднимает все use case'ы над свежим in-memory Store.
type env struct {
	users domain.UserRepository
	teams domain.TeamRepository
	tasks domain.TaskRepository

	authUC domain.AuthUseCase
	teamUC domain.TeamUseCase
	taskUC domain.TaskUseCase

	tokens domain.TokenCodec
}

func newEnv() *env {
	store := repository.NewStore()
	users := repository.NewUserRepository(store)
	teams := repository.NewTeamRepository(store)
	tasks := repository.NewTaskRepository(store)

	hasher := auth.NewBcryptHasher(4) // bcrypt.MinCost: тесты не греют CPU
	tokens := auth.NewTokenManager("test-secret", "test-refresh-secret", time.Minute, time.Hour)
	ops := store.OperationLock()

	return &env{
		users:  users,
		teams:  teams,
		tasks:  tasks,
		authUC: usecase.NewAuthUseCase(users, hasher, tokens, ops),
		teamUC: usecase.NewTeamUseCase(teams, users, ops),
		taskUC: usecase.NewTaskUseCase(tasks, teams, users, ops),
		tokens: tokens,
	}
}

func (e *env) newUser(t *testing.T, email string) (*domain.User, *domain.Identity) {
	t.Helper()
	u := &domain.User{Email: email, PasswordHash: "irrelevant"}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u, &domain.Identity{UserID: u.ID, Email: u.Email}
}

func (e *env) newTeam(t *testing.T, caller *domain.Identity, name string) *domain.Team {
	t.Helper()
	team, err := e.teamUC.CreateTeam(context.Background(), caller, name)
	require.NoError(t, err)
	return team
}

func (e *env) addMember(t *testing.T, admin *domain.Identity, userID, teamID string, role domain.TeamRole) *domain.TeamMember {
	t.Helper()
	member, err := e.teamUC.AddMember(context.Background(), admin, userID, teamID, role)
	require.NoError(t, err)
	return member
}

func (e *env) newTask(t *testing.T, caller *domain.Identity, teamID, title string) *domain.Task {
	t.Helper()
	task, err := e.taskUC.CreateTask(context.Background(), caller, teamID, title, nil)
	require.NoError(t, err)
	return task
}
