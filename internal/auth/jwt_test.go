package auth_test

import (
	"testing"
	"time"

	"team-task-service/internal/auth"
	"team-task-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_SignAndVerify(t *testing.T) {
	tm := auth.NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	payload := domain.TokenPayload{UserID: "42", Email: "a@example.com"}

	access, err := tm.SignAccess(payload)
	require.NoError(t, err)
	refresh, err := tm.SignRefresh(payload)
	require.NoError(t, err)

	got := tm.VerifyAccess(access)
	require.NotNil(t, got)
	assert.Equal(t, payload, *got)

	got = tm.VerifyRefresh(refresh)
	require.NotNil(t, got)
	assert.Equal(t, payload, *got)
}

func TestTokenManager_SecretsAreNotInterchangeable(t *testing.T) {
	tm := auth.NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	payload := domain.TokenPayload{UserID: "42", Email: "a@example.com"}

	access, err := tm.SignAccess(payload)
	require.NoError(t, err)

	// Access-токен не проходит проверку refresh и наоборот
	assert.Nil(t, tm.VerifyRefresh(access))

	refresh, err := tm.SignRefresh(payload)
	require.NoError(t, err)
	assert.Nil(t, tm.VerifyAccess(refresh))
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	tm := auth.NewTokenManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)
	payload := domain.TokenPayload{UserID: "42", Email: "a@example.com"}

	access, err := tm.SignAccess(payload)
	require.NoError(t, err)

	assert.Nil(t, tm.VerifyAccess(access))
}

func TestTokenManager_GarbageToken(t *testing.T) {
	tm := auth.NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	assert.Nil(t, tm.VerifyAccess("garbage"))
	assert.Nil(t, tm.VerifyAccess(""))
}

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := auth.NewBcryptHasher(4)

	hash, err := h.Hash("Password1")
	require.NoError(t, err)
	assert.NotEqual(t, "Password1", hash)

	assert.True(t, h.Verify("Password1", hash))
	assert.False(t, h.Verify("Password2", hash))
	assert.False(t, h.Verify("Password1", "not-a-hash"))
}
