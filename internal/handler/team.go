package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"team-task-service/internal/domain"
)

// TeamHandler обрабатывает HTTP-запросы для управления командами и участниками
type TeamHandler struct {
	*BaseHandler
	teamUseCase domain.TeamUseCase
}

// NewTeamHandler создает новый экземпляр TeamHandler
func NewTeamHandler(teamUseCase domain.TeamUseCase, logger *logrus.Logger) *TeamHandler {
	return &TeamHandler{
		BaseHandler: NewBaseHandler(logger),
		teamUseCase: teamUseCase,
	}
}

// PostTeam обрабатывает создание новой команды
func (h *TeamHandler) PostTeam(c echo.Context) error {
	logEntry := h.logRequest(c, "create_team")

	var req CreateTeamRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := c.Validate(&req); err != nil {
		return validationJSON(c, err)
	}

	team, err := h.teamUseCase.CreateTeam(c.Request().Context(), callerIdentity(c), req.Name)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to create team")
		return errorJSON(c, err)
	}

	logEntry.WithField("team_id", team.ID).Info("Team created")
	return c.JSON(http.StatusCreated, toAPITeam(team))
}

// GetTeams возвращает команды вызывающего
func (h *TeamHandler) GetTeams(c echo.Context) error {
	teams, err := h.teamUseCase.ListUserTeams(c.Request().Context(), callerIdentity(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, toAPITeams(teams))
}

// GetTeam возвращает команду по идентификатору
func (h *TeamHandler) GetTeam(c echo.Context) error {
	team, err := h.teamUseCase.GetTeam(c.Request().Context(), callerIdentity(c), c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, toAPITeam(team))
}

// PatchTeam обрабатывает переименование команды
func (h *TeamHandler) PatchTeam(c echo.Context) error {
	logEntry := h.logRequest(c, "update_team").WithField("team_id", c.Param("id"))

	var req UpdateTeamRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if err := c.Validate(&req); err != nil {
		return validationJSON(c, err)
	}

	team, err := h.teamUseCase.UpdateTeam(c.Request().Context(), callerIdentity(c), c.Param("id"), req.Name)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to update team")
		return errorJSON(c, err)
	}

	logEntry.Info("Team updated")
	return c.JSON(http.StatusOK, toAPITeam(team))
}

// DeleteTeam обрабатывает каскадное удаление команды
func (h *TeamHandler) DeleteTeam(c echo.Context) error {
	logEntry := h.logRequest(c, "delete_team").WithField("team_id", c.Param("id"))

	if err := h.teamUseCase.DeleteTeam(c.Request().Context(), callerIdentity(c), c.Param("id")); err != nil {
		logEntry.WithError(err).Warn("Failed to delete team")
		return errorJSON(c, err)
	}

	logEntry.Info("Team deleted")
	return c.NoContent(http.StatusNoContent)
}

// GetMembers возвращает участников команды
func (h *TeamHandler) GetMembers(c echo.Context) error {
	members, err := h.teamUseCase.ListMembers(c.Request().Context(), callerIdentity(c), c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, toAPIMembers(members))
}

// PostMember обрабатывает добавление пользователя в команду
func (h *TeamHandler) PostMember(c echo.Context) error {
	teamID := c.Param("id")
	logEntry := h.logRequest(c, "add_member").WithField("team_id", teamID)

	var req AddMemberRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return validationJSON(c, err)
	}

	member, err := h.teamUseCase.AddMember(c.Request().Context(), callerIdentity(c), req.UserID, teamID, domain.TeamRole(req.Role))
	if err != nil {
		logEntry.WithField("user_id", req.UserID).WithError(err).Warn("Failed to add member")
		return errorJSON(c, err)
	}

	logEntry.WithFields(logrus.Fields{
		"user_id":   req.UserID,
		"member_id": member.ID,
	}).Info("Member added")
	return c.JSON(http.StatusCreated, toAPIMember(member))
}

// PatchMemberRole обрабатывает смену роли участника
func (h *TeamHandler) PatchMemberRole(c echo.Context) error {
	memberID := c.Param("id")
	logEntry := h.logRequest(c, "update_member_role").WithField("member_id", memberID)

	var req UpdateMemberRoleRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return validationJSON(c, err)
	}

	member, err := h.teamUseCase.UpdateMemberRole(c.Request().Context(), callerIdentity(c), memberID, domain.TeamRole(req.Role))
	if err != nil {
		logEntry.WithError(err).Warn("Failed to update member role")
		return errorJSON(c, err)
	}

	logEntry.WithField("role", req.Role).Info("Member role updated")
	return c.JSON(http.StatusOK, toAPIMember(member))
}

// DeleteMember обрабатывает удаление участника из команды
func (h *TeamHandler) DeleteMember(c echo.Context) error {
	memberID := c.Param("id")
	logEntry := h.logRequest(c, "remove_member").WithField("member_id", memberID)

	if err := h.teamUseCase.RemoveMember(c.Request().Context(), callerIdentity(c), memberID); err != nil {
		logEntry.WithError(err).Warn("Failed to remove member")
		return errorJSON(c, err)
	}

	logEntry.Info("Member removed")
	return c.NoContent(http.StatusNoContent)
}
