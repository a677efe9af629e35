package auth

import (
	"golang.org/x/crypto/bcrypt"

	"team-task-service/internal/domain"
)

// BcryptHasher реализует хеширование паролей через bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher создает хешер с заданной стоимостью.
// Нулевая или отрицательная стоимость заменяется bcrypt.DefaultCost.
func NewBcryptHasher(cost int) domain.PasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash возвращает bcrypt-хеш пароля.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify проверяет пароль против сохраненного хеша.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
