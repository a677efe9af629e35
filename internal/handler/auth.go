package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"team-task-service/internal/domain"
)

const refreshCookieName = "refresh_token"

// AuthHandler обрабатывает HTTP-запросы регистрации, входа и обновления токенов
type AuthHandler struct {
	*BaseHandler
	authUseCase domain.AuthUseCase
	refreshTTL  time.Duration
}

// NewAuthHandler создает новый экземпляр AuthHandler
func NewAuthHandler(authUseCase domain.AuthUseCase, refreshTTL time.Duration, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authUseCase: authUseCase,
		refreshTTL:  refreshTTL,
	}
}

// setRefreshCookie кладет refresh-токен в httpOnly cookie:
// JS на клиенте его не видит.
func (h *AuthHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/api/auth",
		MaxAge:   int(h.refreshTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PostRegister обрабатывает регистрацию нового пользователя
func (h *AuthHandler) PostRegister(c echo.Context) error {
	logEntry := h.logRequest(c, "register")

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if err := c.Validate(&req); err != nil {
		logEntry.WithError(err).Warn("Validation failed")
		return validationJSON(c, err)
	}

	logEntry = logEntry.WithField("email", req.Email)

	result, err := h.authUseCase.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		logEntry.WithError(err).Warn("Registration failed")
		return errorJSON(c, err)
	}

	logEntry.WithField("user_id", result.User.ID).Info("User registered")
	h.setRefreshCookie(c, result.RefreshToken)
	return c.JSON(http.StatusCreated, AuthResponse{
		AccessToken: result.AccessToken,
		User:        toAPIUser(result.User),
	})
}

// PostLogin обрабатывает вход по email и паролю
func (h *AuthHandler) PostLogin(c echo.Context) error {
	logEntry := h.logRequest(c, "login")

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		return validationJSON(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		logEntry.WithField("email", req.Email).WithError(err).Warn("Login failed")
		return errorJSON(c, err)
	}

	logEntry.WithField("user_id", result.User.ID).Info("User logged in")
	h.setRefreshCookie(c, result.RefreshToken)
	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken: result.AccessToken,
		User:        toAPIUser(result.User),
	})
}

// PostRefresh выдает новую пару токенов по refresh-токену из cookie
func (h *AuthHandler) PostRefresh(c echo.Context) error {
	logEntry := h.logRequest(c, "refresh")

	var token string
	if cookie, err := c.Cookie(refreshCookieName); err == nil {
		token = cookie.Value
	}

	result, err := h.authUseCase.Refresh(c.Request().Context(), token)
	if err != nil {
		logEntry.WithError(err).Warn("Refresh failed")
		return errorJSON(c, err)
	}

	logEntry.WithField("user_id", result.User.ID).Info("Token refreshed")
	h.setRefreshCookie(c, result.RefreshToken)
	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken: result.AccessToken,
		User:        toAPIUser(result.User),
	})
}

// GetMe возвращает профиль вызывающего
func (h *AuthHandler) GetMe(c echo.Context) error {
	logEntry := h.logRequest(c, "me")

	user, err := h.authUseCase.Me(c.Request().Context(), callerIdentity(c))
	if err != nil {
		logEntry.WithError(err).Warn("Failed to get current user")
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, toAPIUser(user))
}
