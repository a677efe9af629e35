package domain

import (
	"context"
	"time"
)

// User представляет сущность пользователя в системе.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         *string
	CreatedAt    time.Time
}

// Identity — личность вызывающего, извлечённая транспортным слоем из access-токена.
// nil означает неаутентифицированный запрос.
type Identity struct {
	UserID string
	Email  string
}

// UserRepository определяет контракт для работы с хранилищем пользователей.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)
}
