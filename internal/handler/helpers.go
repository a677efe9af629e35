package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"team-task-service/internal/domain"
)

// Вспомогательные функции преобразования доменных моделей в API модели

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type TeamResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type MemberResponse struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	TeamID   string    `json:"team_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type TaskResponse struct {
	ID             string    `json:"id"`
	TeamID         string    `json:"team_id"`
	AssignedUserID *string   `json:"assigned_user_id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AssignmentRecordResponse struct {
	ID              string    `json:"id"`
	TaskID          string    `json:"task_id"`
	FromUserID      *string   `json:"from_user_id"`
	ToUserID        *string   `json:"to_user_id"`
	ChangedByUserID string    `json:"changed_by_user_id"`
	ChangedAt       time.Time `json:"changed_at"`
}

// toAPIUser не раскрывает PasswordHash наружу.
func toAPIUser(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

func toAPITeam(team *domain.Team) TeamResponse {
	return TeamResponse{
		ID:        team.ID,
		Name:      team.Name,
		CreatedAt: team.CreatedAt,
	}
}

func toAPITeams(teams []*domain.Team) []TeamResponse {
	result := make([]TeamResponse, len(teams))
	for i, t := range teams {
		result[i] = toAPITeam(t)
	}
	return result
}

func toAPIMember(member *domain.TeamMember) MemberResponse {
	return MemberResponse{
		ID:       member.ID,
		UserID:   member.UserID,
		TeamID:   member.TeamID,
		Role:     string(member.Role),
		JoinedAt: member.JoinedAt,
	}
}

func toAPIMembers(members []*domain.TeamMember) []MemberResponse {
	result := make([]MemberResponse, len(members))
	for i, m := range members {
		result[i] = toAPIMember(m)
	}
	return result
}

func toAPITask(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:             task.ID,
		TeamID:         task.TeamID,
		AssignedUserID: task.AssignedUserID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         string(task.Status),
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}

func toAPITasks(tasks []*domain.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = toAPITask(t)
	}
	return result
}

func toAPIHistory(records []*domain.AssignmentRecord) []AssignmentRecordResponse {
	result := make([]AssignmentRecordResponse, len(records))
	for i, r := range records {
		result[i] = AssignmentRecordResponse{
			ID:              r.ID,
			TaskID:          r.TaskID,
			FromUserID:      r.FromUserID,
			ToUserID:        r.ToUserID,
			ChangedByUserID: r.ChangedByUserID,
			ChangedAt:       r.ChangedAt,
		}
	}
	return result
}

func toErrorResponse(code, message string) domain.ErrorResponse {
	return domain.ErrorResponse{
		Error: domain.HTTPError{
			Code:    code,
			Message: message,
		},
	}
}

func getHTTPStatusCode(err error) int {
	switch {
	// Validation errors (400)
	case errors.Is(err, domain.ErrAlreadyMember),
		errors.Is(err, domain.ErrNotMemberOfTeam):
		return http.StatusBadRequest

	// Unauthenticated (401)
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrRefreshTokenExpired):
		return http.StatusUnauthorized

	// Unauthorized (403)
	case errors.Is(err, domain.ErrNotTeamMember),
		errors.Is(err, domain.ErrRoleRequired),
		errors.Is(err, domain.ErrNotTaskOwner),
		errors.Is(err, domain.ErrLastAdmin):
		return http.StatusForbidden

	// Not Found (404)
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTeamNotFound),
		errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound

	// Conflict (409)
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// errorJSON переводит domain ошибку в HTTP-ответ.
// Сообщения неизвестных ошибок наружу не раскрываются.
func errorJSON(c echo.Context, err error) error {
	if httpErr, exists := domain.ToHTTPError(err); exists {
		return c.JSON(getHTTPStatusCode(err), domain.ErrorResponse{Error: httpErr})
	}
	return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", "An unexpected error occurred."))
}

func validationJSON(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, toErrorResponse("VALIDATION_ERROR", err.Error()))
}
