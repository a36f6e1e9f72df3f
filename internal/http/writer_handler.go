package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "workx.com/workx/internal/data_models"
	middleware "workx.com/workx/internal/http/middlewares"
)

func (h *Handler) AvailableTasks(c echo.Context) error {
	p, _ := middleware.Current(c)

	tasks, err := h.lifecycle.ListAvailable(c.Request().Context(), p)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tasks": tasks})
}

func (h *Handler) MyTasks(c echo.Context) error {
	p, _ := middleware.Current(c)

	tasks, err := h.lifecycle.ListMine(c.Request().Context(), p)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tasks": tasks})
}

func (h *Handler) ClaimTask(c echo.Context) error {
	p, _ := middleware.Current(c)

	var req dto.TaskIDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	if err := h.lifecycle.Claim(c.Request().Context(), p, req.TaskID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Task claimed successfully!",
	})
}

func (h *Handler) MarkComplete(c echo.Context) error {
	p, _ := middleware.Current(c)

	var req dto.TaskIDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	if err := h.lifecycle.MarkComplete(c.Request().Context(), p, req.TaskID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Task marked as complete! Admin will review and upload the final work.",
	})
}
