package usecase_test

import (
	"context"
	"testing"

	"team-task-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskUseCase_CreateTask_InitialState(t *testing.T) {
	e := newEnv()
	_, admin := e.newUser(t, "admin@example.com")
	team := e.newTeam(t, admin, "Eng")

	task := e.newTask(t, admin, team.ID, "Fix bug")

	assert.Equal(t, domain.StatusUnassigned, task.Status)
	assert.Nil(t, task.AssignedUserID)
	assert.Equal(t, team.ID, task.TeamID)
}

func TestTaskUseCase_CreateTask_AnyMemberMayCreate(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	_, admin := e.newUser(t, "admin@example.com")
	u2, u2Ident := e.newUser(t, "u2@example.com")
	team := e.newTeam(t, admin, "Eng")
	e.addMember(t, admin, u2.ID, team.ID, domain.RoleUser)

	task, err := e.taskUC.CreateTask(ctx, u2Ident, team.ID, "From a user", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnassigned, task.Status)
}

func TestTaskUseCase_CreateTask_NonMemberRejected(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	_, admin := e.newUser(t, "admin@example.com")
	_, outsider := e.newUser(t, "outsider@example.com")
	team := e.newTeam(t, admin, "Eng")

	_, err := e.taskUC.CreateTask(ctx, outsider, team.ID, "Nope", nil)
	assert.ErrorIs(t, err, domain.ErrNotTeamMember)
}

func TestTaskUseCase_AssignUnassign_Scenario(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	_, admin := e.newUser(t, "admin@example.com")
	u2, _ := e.newUser(t, "u2@example.com")
	team := e.newTeam(t, admin, "Eng")
	e.addMember(t, admin, u2.ID, team.ID, domain.RoleUser)
	task := e.newTask(t, admin, team.ID, "Fix bug")

	// Назначение
	assigned, err := e.taskUC.AssignTask(ctx, admin, task.ID, u2.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAssigned, assigned.Status)
	require.NotNil(t, assigned.AssignedUserID)
	assert.Equal(t, u2.ID, *assigned.AssignedUserID)

	records, err := e.taskUC.GetAssignmentHistory(ctx, admin, task.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].FromUserID)
	assert.Equal(t, u2.ID, *records[0].ToUserID)
	assert.Equal(t, admin.UserID, records[0].ChangedByUserID)

	// Снятие
	unassigned, err := e.taskUC.UnassignTask(ctx, admin, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnassigned, unassigned.Status)
	assert.Nil(t, unassigned.AssignedUserID)

	records, err = e.taskUC.GetAssignmentHistory(ctx, admin, task.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, u2.ID, *records[1].FromUserID)
	assert.Nil(t, records[1].ToUserID)
}

func TestTaskUseCase_AssignTask_Validation(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	_, admin := e.newUser(t, "admin@example.com")
	u2, u2Ident := e.newUser(t, "u2@example.com")
	stranger, _ := e.newUser(t, "stranger@example.com")
	team := e.newTeam(t, admin, "Eng")
	e.addMember(t, admin, u2.ID, team.ID, domain.RoleUser)
	task := e.newTask(t, admin, team.ID, "Fix bug")

	testCases := []struct {
		name     string
		caller   *domain.Identity
		taskID   string
		userID   string
		expected error
	}{
		{
			name:     "Unknown task",
			caller:   admin,
			taskID:   "999",
			userID:   u2.ID,
			expected: domain.ErrTaskNotFound,
		},
		{
			name:     "Non-admin caller",
			caller:   u2Ident,
			taskID:   task.ID,
			userID:   u2.ID,
			expected: domain.ErrRoleRequired,
		},
		{
			name:     "Unknown assignee",
			caller:   admin,
			taskID:   task.ID,
			userID:   "999",
			expected: domain.ErrUserNotFound,
		},
		{
			name:     "Assignee outside team",
			caller:   admin,
			taskID:   task.ID,
			userID:   stranger.ID,
			expected: domain.ErrNotMemberOfTeam,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.taskUC.AssignTask(ctx, tc.caller, tc.taskID, tc.userID)
			assert.ErrorIs(t, err, tc.expected)
		})
	}

	// Неудачные вызовы не оставили следов в истории
	records, err := e.taskUC.GetAssignmentHistory(ctx, admin, task.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestTaskUseCase_Reassign_HistoryKeepsPreviousAssignee(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	_, admin := e.newUser(t, "admin@example.com")
	u2, _ := e.newUser(t, "u2@example.com")
	u3, _ := e.newUser(t, "u3@example.com")
	team := e.newTeam(t, admin, "Eng")
	e.addMember(t, admin, u2.ID, team.ID, domain.RoleUser)
	e.addMember(t, admin, u3.ID, team.ID, domain.RoleUser)
	task := e.newTask(t, admin, team.ID, "Fix bug")

	_, err := e.taskUC.AssignTask(ctx, admin, task.ID, u2.ID)
	require.NoError(t, err)
	_, err = e.taskUC.AssignTask(ctx, admin, task.ID, u3.ID)
	require.NoError(t, err)

	records, err := e.taskUC.GetAssignmentHistory(ctx, admin, task.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, u2.ID, *records[1].FromUserID)
	assert.Equal(t, u3.ID, *records[1].ToUserID)
}

func TestTaskUseCase_UpdateTask_OwnerOrAdminOnly(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	_, admin := e.newUser(t, "admin@example.com")
	u2, u2Ident := e.newUser(t, "u2@example.com")
	u3, u3Ident := e.newUser(t, "u3@example.com")
	team := e.newTeam(t, admin, "Eng")
	e.addMember(t, admin, u2.ID, team.ID, domain.RoleUser)
	e.addMember(t, admin, u3.ID, team.ID, domain.RoleUser)
	task := e.newTask(t, admin, team.ID, "Fix bug")

	_, err := e.taskUC.AssignTask(ctx, admin, task.ID, u2.ID)
	require.NoError(t, err)

	title := "Fix bug properly"

	// Участник, не являющийся исполнителем
	_, err = e.taskUC.UpdateTask(ctx, u3Ident, task.ID, &title, nil)
	assert.ErrorIs(t, err, domain.ErrNotTaskOwner)

	// Исполнитель
	updated, err := e.taskUC.UpdateTask(ctx, u2Ident, task.ID, &title, nil)
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	// Админ
	desc := "details"
	updated, err = e.taskUC.UpdateTask(ctx, admin, task.ID, nil, &desc)
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	assert.Equal(t, desc, *updated.Description)
	assert.Equal(t, title, updated.Title)
}

func TestTaskUseCase_UpdateTaskStatus_PermissiveTransitions(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	_, admin := e.newUser(t, "admin@example.com")
	team := e.newTeam(t, admin, "Eng")
	task := e.newTask(t, admin, team.ID, "Fix bug")

	// Любой статус принимается из любого текущего
	for _, status := range []domain.TaskStatus{
		domain.StatusDone,
		domain.StatusInProgress,
		domain.StatusUnassigned,
		domain.StatusAssigned,
	} {
		updated, err := e.taskUC.UpdateTaskStatus(ctx, admin, task.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	// Статус не трогает исполнителя и не пишет историю
	records, err := e.taskUC.GetAssignmentHistory(ctx, admin, task.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestTaskUseCase_UpdateTaskStatus_AssigneeMayUpdate(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	_, admin := e.newUser(t, "admin@example.com")
	u2, u2Ident := e.newUser(t, "u2@example.com")
	team := e.newTeam(t, admin, "Eng")
	e.addMember(t, admin, u2.ID, team.ID, domain.RoleUser)
	task := e.newTask(t, admin, team.ID, "Fix bug")

	_, err := e.taskUC.AssignTask(ctx, admin, task.ID, u2.ID)
	require.NoError(t, err)

	updated, err := e.taskUC.UpdateTaskStatus(ctx, u2Ident, task.ID, domain.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, updated.Status)
	// Исполнитель не изменился
	require.NotNil(t, updated.AssignedUserID)
	assert.Equal(t, u2.ID, *updated.AssignedUserID)
}

func TestTaskUseCase_DeleteTask_AdminOnly(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	_, admin := e.newUser(t, "admin@example.com")
	u2, u2Ident := e.newUser(t, "u2@example.com")
	team := e.newTeam(t, admin, "Eng")
	e.addMember(t, admin, u2.ID, team.ID, domain.RoleUser)
	task := e.newTask(t, admin, team.ID, "Fix bug")

	err := e.taskUC.DeleteTask(ctx, u2Ident, task.ID)
	assert.ErrorIs(t, err, domain.ErrRoleRequired)

	require.NoError(t, e.taskUC.DeleteTask(ctx, admin, task.ID))

	_, err = e.taskUC.GetTask(ctx, admin, task.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskUseCase_CrossTeamVisibility(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	_, u1 := e.newUser(t, "u1@example.com")
	_, u2 := e.newUser(t, "u2@example.com")
	team1 := e.newTeam(t, u1, "Eng")
	e.newTeam(t, u2, "Design")
	task := e.newTask(t, u1, team1.ID, "Secret")

	_, err := e.taskUC.GetTask(ctx, u2, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotTeamMember)

	_, err = e.taskUC.ListTeamTasks(ctx, u2, team1.ID)
	assert.ErrorIs(t, err, domain.ErrNotTeamMember)

	_, err = e.taskUC.GetAssignmentHistory(ctx, u2, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotTeamMember)
}
