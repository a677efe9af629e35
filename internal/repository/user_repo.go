package repository

import (
	"context"
	"time"

	"team-task-service/internal/domain"
)

// UserRepository реализует работу с пользователями поверх in-memory Store.
type UserRepository struct {
	store *Store
}

// NewUserRepository создает новый экземпляр UserRepository.
func NewUserRepository(store *Store) domain.UserRepository {
	return &UserRepository{store: store}
}

// Create сохраняет пользователя, присваивая свежий id и CreatedAt.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.newID()
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = cloneUser(user)

	return nil
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

// GetByEmail возвращает пользователя по email. Сравнение точное,
// с учетом регистра — как email хранится, так и ищется.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ExistsEmail проверяет занятость email.
func (r *UserRepository) ExistsEmail(ctx context.Context, email string) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}
