package handler

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"team-task-service/internal/domain"
)

const identityKey = "identity"

// AuthMiddleware извлекает личность вызывающего из Bearer access-токена.
// Сам по себе запросы не отклоняет: отсутствие личности сигналит core
// через UNAUTHENTICATED.
func AuthMiddleware(tokens domain.TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if strings.HasPrefix(header, "Bearer ") {
				token := strings.TrimPrefix(header, "Bearer ")
				if payload := tokens.VerifyAccess(token); payload != nil {
					c.Set(identityKey, &domain.Identity{
						UserID: payload.UserID,
						Email:  payload.Email,
					})
				}
			}
			return next(c)
		}
	}
}

// callerIdentity возвращает личность вызывающего из контекста запроса,
// nil для неаутентифицированного запроса.
func callerIdentity(c echo.Context) *domain.Identity {
	if identity, ok := c.Get(identityKey).(*domain.Identity); ok {
		return identity
	}
	return nil
}

// LoggingMiddleware добавляет структурированное логирование запросов
func LoggingMiddleware(logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			latency := time.Since(start)
			status := c.Response().Status

			entry := logger.WithFields(logrus.Fields{
				"method":     c.Request().Method,
				"uri":        c.Request().URL.Path,
				"status":     status,
				"latency":    latency,
				"user_agent": c.Request().UserAgent(),
				"ip":         c.RealIP(),
			})

			if err != nil {
				entry = entry.WithField("error", err.Error())
			}

			if status >= 500 {
				entry.Error("Server error")
			} else if status >= 400 {
				entry.Warn("Client error")
			} else {
				entry.Info("Request processed")
			}

			return err
		}
	}
}
