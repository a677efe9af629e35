package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"team-task-service/internal/domain"
)

// TaskHandler обрабатывает HTTP-запросы для управления задачами
type TaskHandler struct {
	*BaseHandler
	taskUseCase domain.TaskUseCase
}

// NewTaskHandler создает новый экземпляр TaskHandler
func NewTaskHandler(taskUseCase domain.TaskUseCase, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{
		BaseHandler: NewBaseHandler(logger),
		taskUseCase: taskUseCase,
	}
}

// PostTask обрабатывает создание задачи
func (h *TaskHandler) PostTask(c echo.Context) error {
	logEntry := h.logRequest(c, "create_task")

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := c.Validate(&req); err != nil {
		return validationJSON(c, err)
	}

	task, err := h.taskUseCase.CreateTask(c.Request().Context(), callerIdentity(c), req.TeamID, req.Title, req.Description)
	if err != nil {
		logEntry.WithField("team_id", req.TeamID).WithError(err).Warn("Failed to create task")
		return errorJSON(c, err)
	}

	logEntry.WithFields(logrus.Fields{
		"team_id": req.TeamID,
		"task_id": task.ID,
	}).Info("Task created")
	return c.JSON(http.StatusCreated, toAPITask(task))
}

// GetTask возвращает задачу по идентификатору
func (h *TaskHandler) GetTask(c echo.Context) error {
	task, err := h.taskUseCase.GetTask(c.Request().Context(), callerIdentity(c), c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, toAPITask(task))
}

// GetTeamTasks возвращает задачи команды
func (h *TaskHandler) GetTeamTasks(c echo.Context) error {
	tasks, err := h.taskUseCase.ListTeamTasks(c.Request().Context(), callerIdentity(c), c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, toAPITasks(tasks))
}

// PatchTask обрабатывает изменение заголовка/описания задачи
func (h *TaskHandler) PatchTask(c echo.Context) error {
	taskID := c.Param("id")
	logEntry := h.logRequest(c, "update_task").WithField("task_id", taskID)

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
	}
	if err := c.Validate(&req); err != nil {
		return validationJSON(c, err)
	}

	task, err := h.taskUseCase.UpdateTask(c.Request().Context(), callerIdentity(c), taskID, req.Title, req.Description)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to update task")
		return errorJSON(c, err)
	}

	logEntry.Info("Task updated")
	return c.JSON(http.StatusOK, toAPITask(task))
}

// DeleteTask обрабатывает удаление задачи вместе с историей назначений
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	taskID := c.Param("id")
	logEntry := h.logRequest(c, "delete_task").WithField("task_id", taskID)

	if err := h.taskUseCase.DeleteTask(c.Request().Context(), callerIdentity(c), taskID); err != nil {
		logEntry.WithError(err).Warn("Failed to delete task")
		return errorJSON(c, err)
	}

	logEntry.Info("Task deleted")
	return c.NoContent(http.StatusNoContent)
}

// PostAssign обрабатывает назначение исполнителя задачи
func (h *TaskHandler) PostAssign(c echo.Context) error {
	taskID := c.Param("id")
	logEntry := h.logRequest(c, "assign_task").WithField("task_id", taskID)

	var req AssignTaskRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return validationJSON(c, err)
	}

	task, err := h.taskUseCase.AssignTask(c.Request().Context(), callerIdentity(c), taskID, req.UserID)
	if err != nil {
		logEntry.WithField("user_id", req.UserID).WithError(err).Warn("Failed to assign task")
		return errorJSON(c, err)
	}

	logEntry.WithField("user_id", req.UserID).Info("Task assigned")
	return c.JSON(http.StatusOK, toAPITask(task))
}

// PostUnassign обрабатывает снятие исполнителя задачи
func (h *TaskHandler) PostUnassign(c echo.Context) error {
	taskID := c.Param("id")
	logEntry := h.logRequest(c, "unassign_task").WithField("task_id", taskID)

	task, err := h.taskUseCase.UnassignTask(c.Request().Context(), callerIdentity(c), taskID)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to unassign task")
		return errorJSON(c, err)
	}

	logEntry.Info("Task unassigned")
	return c.JSON(http.StatusOK, toAPITask(task))
}

// PatchStatus обрабатывает смену статуса задачи
func (h *TaskHandler) PatchStatus(c echo.Context) error {
	taskID := c.Param("id")
	logEntry := h.logRequest(c, "update_task_status").WithField("task_id", taskID)

	var req UpdateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}
	if err := c.Validate(&req); err != nil {
		return validationJSON(c, err)
	}

	task, err := h.taskUseCase.UpdateTaskStatus(c.Request().Context(), callerIdentity(c), taskID, domain.TaskStatus(req.Status))
	if err != nil {
		logEntry.WithError(err).Warn("Failed to update task status")
		return errorJSON(c, err)
	}

	logEntry.WithField("status", req.Status).Info("Task status updated")
	return c.JSON(http.StatusOK, toAPITask(task))
}

// GetHistory возвращает историю назначений задачи
func (h *TaskHandler) GetHistory(c echo.Context) error {
	records, err := h.taskUseCase.GetAssignmentHistory(c.Request().Context(), callerIdentity(c), c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, toAPIHistory(records))
}
