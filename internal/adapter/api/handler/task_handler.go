package handler

import (
	"github.com/labstack/echo/v4"

	"gamerverse/internal/adapter/api/middleware"
	"gamerverse/internal/infrastructure/task"
	"gamerverse/pkg/errors"
	"gamerverse/pkg/response"
)

type TaskHandler struct {
	runner *task.Runner
}

func NewTaskHandler(runner *task.Runner) *TaskHandler {
	return &TaskHandler{
		runner: runner,
	}
}

// GetTask reports a background write started by the caller. Tasks belonging
// to someone else look like missing ones.
func (h *TaskHandler) GetTask(c echo.Context) error {
	t, ok := h.runner.Get(c.Param("id"))
	if !ok || t.Owner != middleware.CurrentUID(c) {
		return response.Error(c, errors.NotFound("Task", nil))
	}
	return response.Success(c, t.Snapshot())
}
