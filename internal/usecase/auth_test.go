package usecase_test

import (
	"context"
	"sync"
	"testing"

	"team-task-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthUseCase_Register_Success(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	name := "Alice"
	result, err := e.authUC.Register(ctx, "a@example.com", "Password1", &name)
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "a@example.com", result.User.Email)
	require.NotNil(t, result.User.Name)
	assert.Equal(t, "Alice", *result.User.Name)
	assert.NotEmpty(t, result.User.ID)
	// Хеш не равен паролю
	assert.NotEqual(t, "Password1", result.User.PasswordHash)
}

func TestAuthUseCase_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	_, err := e.authUC.Register(ctx, "a@example.com", "Password1", nil)
	require.NoError(t, err)

	_, err = e.authUC.Register(ctx, "a@example.com", "Password1", nil)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestAuthUseCase_Register_EmailCaseSensitive(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	_, err := e.authUC.Register(ctx, "a@example.com", "Password1", nil)
	require.NoError(t, err)

	// Другой регистр — другой email
	_, err = e.authUC.Register(ctx, "A@example.com", "Password1", nil)
	assert.NoError(t, err)
}

func TestAuthUseCase_Login_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	_, err := e.authUC.Register(ctx, "a@example.com", "Password1", nil)
	require.NoError(t, err)

	_, wrongPassErr := e.authUC.Login(ctx, "a@example.com", "WrongPass1")
	_, unknownEmailErr := e.authUC.Login(ctx, "nobody@example.com", "Password1")

	assert.ErrorIs(t, wrongPassErr, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmailErr, domain.ErrInvalidCredentials)
	// Перечисление аккаунтов по тексту ошибки невозможно
	assert.Equal(t, wrongPassErr.Error(), unknownEmailErr.Error())
}

func TestAuthUseCase_Login_Success(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	registered, err := e.authUC.Register(ctx, "a@example.com", "Password1", nil)
	require.NoError(t, err)

	result, err := e.authUC.Login(ctx, "a@example.com", "Password1")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.NotEmpty(t, result.AccessToken)
}

func TestAuthUseCase_Refresh_Success(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	registered, err := e.authUC.Register(ctx, "a@example.com", "Password1", nil)
	require.NoError(t, err)

	result, err := e.authUC.Refresh(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
}

func TestAuthUseCase_Refresh_Invalid(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	registered, err := e.authUC.Register(ctx, "a@example.com", "Password1", nil)
	require.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "Empty token", token: ""},
		{name: "Garbage token", token: "not-a-jwt"},
		// Access-токен подписан другим секретом и не проходит как refresh
		{name: "Access token used as refresh", token: registered.AccessToken},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.authUC.Refresh(ctx, tc.token)
			assert.ErrorIs(t, err, domain.ErrRefreshTokenExpired)
		})
	}
}

func TestAuthUseCase_Me(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	registered, err := e.authUC.Register(ctx, "a@example.com", "Password1", nil)
	require.NoError(t, err)

	user, err := e.authUC.Me(ctx, &domain.Identity{UserID: registered.User.ID, Email: registered.User.Email})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", user.Email)

	_, err = e.authUC.Me(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthUseCase_Register_ConcurrentDuplicateEmail(t *testing.T) {
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		e := newEnv()

		start := make(chan struct{})
		errs := make([]error, 2)
		var wg sync.WaitGroup
		wg.Add(2)
		for slot := 0; slot < 2; slot++ {
			go func(slot int) {
				defer wg.Done()
				<-start
				_, errs[slot] = e.authUC.Register(ctx, "a@example.com", "Password1", nil)
			}(slot)
		}
		close(start)
		wg.Wait()

		// Ровно одна регистрация создает пользователя
		failed := 0
		for _, opErr := range errs {
			if opErr != nil {
				require.ErrorIs(t, opErr, domain.ErrEmailAlreadyExists)
				failed++
			}
		}
		require.Equal(t, 1, failed, "iteration %d", i)
	}
}
