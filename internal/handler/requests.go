package handler

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Запросы API. Полевые ограничения проверяются валидатором на границе,
// до вызова core-методов; core перепроверяет только существование сущностей
// и кросс-сущностные инварианты.

type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=8,max=128,password"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateTeamRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type UpdateTeamRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
}

type AddMemberRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Role   string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN USER"`
}

type CreateTaskRequest struct {
	TeamID      string  `json:"team_id" validate:"required"`
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type AssignTaskRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=UNASSIGNED ASSIGNED IN_PROGRESS DONE"`
}

// RequestValidator подключает go-playground/validator к echo.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator создает валидатор запросов с правилом "password":
// минимум одна заглавная, одна строчная буква и одна цифра.
func NewRequestValidator() *RequestValidator {
	v := validator.New()
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		var upper, lower, digit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsLower(r):
				lower = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		return upper && lower && digit
	})
	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}
