package domain

// TokenPayload — полезная нагрузка access/refresh токенов.
type TokenPayload struct {
	UserID string
	Email  string
}

// AuthResult — результат register/login/refresh: пара токенов и пользователь.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *User
}

// PasswordHasher — внешний примитив хеширования паролей.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenCodec — внешний кодек подписи/проверки токенов.
// VerifyRefresh возвращает nil для отсутствующего, просроченного
// или не прошедшего проверку токена.
type TokenCodec interface {
	SignAccess(payload TokenPayload) (string, error)
	SignRefresh(payload TokenPayload) (string, error)
	VerifyAccess(token string) *TokenPayload
	VerifyRefresh(token string) *TokenPayload
}
