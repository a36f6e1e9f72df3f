package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"workx.com/workx/internal/attachments"
	"workx.com/workx/internal/constants"
	middleware "workx.com/workx/internal/http/middlewares"
	"workx.com/workx/internal/http/validators"
	"workx.com/workx/internal/services"
)

// CreateTask ingests the multipart order form: work type, deadline,
// notes, material option and one or more source files.
func (h *Handler) CreateTask(c echo.Context) error {
	p, _ := middleware.Current(c)

	workType := c.FormValue("work_type")
	deadlineDate := c.FormValue("deadline")
	deadlineTime := c.FormValue("deadline_time")
	if err := validators.ValidateCreateTask(workType, deadlineDate, deadlineTime); err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart form required")
	}

	uploads, err := attachments.FromMultipart(form.File["files"])
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read uploaded files")
	}

	task, err := h.lifecycle.Create(c.Request().Context(), p, services.CreateTaskInput{
		WorkType:       workType,
		DeadlineDate:   deadlineDate,
		DeadlineTime:   deadlineTime,
		Notes:          c.FormValue("notes"),
		MaterialOption: constants.MaterialOption(c.FormValue("material_option")),
		Uploads:        uploads,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"task_id": task.TaskID,
		"message": "Task created! Admin will review and set the price.",
	})
}

func (h *Handler) MyOrders(c echo.Context) error {
	p, _ := middleware.Current(c)

	orders, err := h.lifecycle.ListOrdersForOwner(c.Request().Context(), p)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// TaskSummary is the unauthenticated task status view.
func (h *Handler) TaskSummary(c echo.Context) error {
	taskID := c.Param("task_id")
	if taskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	summary, err := h.lifecycle.PublicView(c.Request().Context(), taskID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

// DownloadResult serves the admin-uploaded finished work.
func (h *Handler) DownloadResult(c echo.Context) error {
	att, payload, err := h.lifecycle.DownloadResult(c.Request().Context(), c.Param("task_id"))
	if err != nil {
		return toHTTPError(err)
	}
	return serveAttachment(c, att.Filename, att.ContentType, payload)
}

// DownloadUserFile serves an owner-uploaded source file; a purged
// payload yields 410, an unknown task or index 404.
func (h *Handler) DownloadUserFile(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("file_index"))
	if err != nil || index < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid file index")
	}

	att, payload, err := h.lifecycle.DownloadSource(c.Request().Context(), c.Param("task_id"), index)
	if err != nil {
		return toHTTPError(err)
	}
	return serveAttachment(c, att.Filename, att.ContentType, payload)
}

func serveAttachment(c echo.Context, filename, contentType string, payload []byte) error {
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, contentType, payload)
}
