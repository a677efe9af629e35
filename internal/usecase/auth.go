package usecase

import (
	"context"
	"sync"

	"team-task-service/internal/domain"
)

// AuthUseCase реализует бизнес-логику сессий.
type AuthUseCase struct {
	userRepo domain.UserRepository
	hasher   domain.PasswordHasher
	tokens   domain.TokenCodec
	ops      sync.Locker
}

// NewAuthUseCase создает новый экземпляр AuthUseCase.
func NewAuthUseCase(userRepo domain.UserRepository, hasher domain.PasswordHasher, tokens domain.TokenCodec, ops sync.Locker) domain.AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		ops:      ops,
	}
}

func (uc *AuthUseCase) issueTokens(user *domain.User) (*domain.AuthResult, error) {
	payload := domain.TokenPayload{UserID: user.ID, Email: user.Email}

	access, err := uc.tokens.SignAccess(payload)
	if err != nil {
		return nil, err
	}
	refresh, err := uc.tokens.SignRefresh(payload)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}

// Register создает пользователя и возвращает свежую пару токенов.
// Email сравнивается точно, с учетом регистра. Проверка занятости email
// и вставка выполняются под одним операционным замком: два параллельных
// запроса с одним email не создадут двух пользователей.
func (uc *AuthUseCase) Register(ctx context.Context, email, password string, name *string) (*domain.AuthResult, error) {
	// 1. Хешируем пароль. bcrypt дорог, под замком его держать нельзя
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	uc.ops.Lock()
	defer uc.ops.Unlock()

	// 2. Проверяем, что email свободен
	exists, err := uc.userRepo.ExistsEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	// 3. Создаем пользователя
	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return uc.issueTokens(user)
}

// Login проверяет учетные данные и возвращает свежую пару токенов.
// Неизвестный email и неверный пароль дают одну и ту же ошибку:
// перечисление аккаунтов по ответам невозможно.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !uc.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return uc.issueTokens(user)
}

// Refresh проверяет refresh-токен и выдает новую пару токенов.
// Отсутствующий, невалидный токен или удаленный пользователь
// дают ErrRefreshTokenExpired.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if refreshToken == "" {
		return nil, domain.ErrRefreshTokenExpired
	}

	payload := uc.tokens.VerifyRefresh(refreshToken)
	if payload == nil {
		return nil, domain.ErrRefreshTokenExpired
	}

	user, err := uc.userRepo.GetByID(ctx, payload.UserID)
	if err != nil {
		return nil, domain.ErrRefreshTokenExpired
	}

	return uc.issueTokens(user)
}

// Me возвращает пользователя по личности вызывающего.
func (uc *AuthUseCase) Me(ctx context.Context, caller *domain.Identity) (*domain.User, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	return uc.userRepo.GetByID(ctx, caller.UserID)
}
