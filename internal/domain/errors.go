package domain

import "errors"

// Domain errors (для бизнес-логики)
var (
	// Auth errors
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrRefreshTokenExpired = errors.New("refresh token invalid or expired")

	// Authorization errors
	ErrNotTeamMember = errors.New("caller is not a member of this team")
	ErrRoleRequired  = errors.New("caller role is not sufficient for this action")
	ErrNotTaskOwner  = errors.New("caller is not assigned to this task")
	ErrLastAdmin     = errors.New("team would be left without an admin")

	// Not found errors
	ErrUserNotFound   = errors.New("user not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrMemberNotFound = errors.New("team member not found")
	ErrTaskNotFound   = errors.New("task not found")

	// Validation errors (кросс-сущностные, проверяются в core)
	ErrAlreadyMember   = errors.New("user is already a member of this team")
	ErrNotMemberOfTeam = errors.New("user is not a member of this team")

	// Internal errors
	ErrInternal = errors.New("internal error")
)

// HTTPError для тела ответа API
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error HTTPError `json:"error"`
}

// Маппинг domain ошибок в HTTP ошибки
var ErrorMapping = map[error]HTTPError{
	ErrInvalidCredentials:  {Code: "INVALID_CREDENTIALS", Message: "Invalid email or password."},
	ErrEmailAlreadyExists:  {Code: "EMAIL_ALREADY_EXISTS", Message: "A user with this email already exists."},
	ErrUnauthenticated:     {Code: "UNAUTHENTICATED", Message: "You must be logged in to perform this action."},
	ErrRefreshTokenExpired: {Code: "REFRESH_TOKEN_EXPIRED", Message: "Refresh token is invalid or expired."},

	ErrNotTeamMember: {Code: "UNAUTHORIZED", Message: "You are not a member of this team."},
	ErrRoleRequired:  {Code: "UNAUTHORIZED", Message: "This action requires one of the following roles: ADMIN."},
	ErrNotTaskOwner:  {Code: "UNAUTHORIZED", Message: "You can only modify tasks assigned to you."},
	ErrLastAdmin:     {Code: "UNAUTHORIZED", Message: "Cannot demote or remove yourself: you are the only admin."},

	ErrUserNotFound:   {Code: "NOT_FOUND", Message: "User not found."},
	ErrTeamNotFound:   {Code: "NOT_FOUND", Message: "Team not found."},
	ErrMemberNotFound: {Code: "NOT_FOUND", Message: "Team member not found."},
	ErrTaskNotFound:   {Code: "NOT_FOUND", Message: "Task not found."},

	ErrAlreadyMember:   {Code: "VALIDATION_ERROR", Message: "User is already a member of this team."},
	ErrNotMemberOfTeam: {Code: "VALIDATION_ERROR", Message: "User is not a member of this team."},

	ErrInternal: {Code: "INTERNAL_ERROR", Message: "An unexpected error occurred."},
}

// ToHTTPError преобразует domain ошибку в HTTP ошибку
func ToHTTPError(err error) (HTTPError, bool) {
	httpErr, exists := ErrorMapping[err]
	return httpErr, exists
}
