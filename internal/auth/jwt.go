package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"team-task-service/internal/domain"
)

// TokenManager подписывает и проверяет access/refresh токены (HS256).
// Access и refresh используют разные секреты и сроки жизни.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenManager создает новый экземпляр TokenManager.
func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) domain.TokenCodec {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (m *TokenManager) sign(payload domain.TokenPayload, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": payload.UserID,
		"email":  payload.Email,
		"exp":    time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (m *TokenManager) verify(tokenString string, secret []byte) *domain.TokenPayload {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return nil
	}
	email, _ := claims["email"].(string)

	return &domain.TokenPayload{UserID: userID, Email: email}
}

// SignAccess подписывает access-токен.
func (m *TokenManager) SignAccess(payload domain.TokenPayload) (string, error) {
	return m.sign(payload, m.accessSecret, m.accessTTL)
}

// SignRefresh подписывает refresh-токен.
func (m *TokenManager) SignRefresh(payload domain.TokenPayload) (string, error) {
	return m.sign(payload, m.refreshSecret, m.refreshTTL)
}

// VerifyAccess проверяет access-токен; nil для невалидного или просроченного.
func (m *TokenManager) VerifyAccess(token string) *domain.TokenPayload {
	return m.verify(token, m.accessSecret)
}

// VerifyRefresh проверяет refresh-токен; nil для невалидного или просроченного.
func (m *TokenManager) VerifyRefresh(token string) *domain.TokenPayload {
	return m.verify(token, m.refreshSecret)
}
