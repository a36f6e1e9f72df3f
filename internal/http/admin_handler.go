package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"workx.com/workx/internal/attachments"
	"workx.com/workx/internal/constants"
	middleware "workx.com/workx/internal/http/middlewares"
	"workx.com/workx/internal/services"
)

func (h *Handler) AdminTasks(c echo.Context) error {
	p, _ := middleware.Current(c)

	views, err := h.lifecycle.ListAllForAdmin(c.Request().Context(), p)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tasks": views})
}

// AdminUpdateTask applies the administrative override. Only fields
// present in the form are touched; an attached completed_file becomes
// the task result.
func (h *Handler) AdminUpdateTask(c echo.Context) error {
	p, _ := middleware.Current(c)

	taskID := c.FormValue("task_id")
	if taskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}

	var in services.AdminUpdateInput

	if v, ok := formString(params, "status"); ok {
		status := constants.TaskStatus(v)
		in.Status = &status
	}
	if v, ok := formString(params, "writer_id"); ok {
		in.WriterID = &v
	}
	if v, ok := formString(params, "pages"); ok {
		pages, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "pages must be an integer")
		}
		in.Pages = &pages
	}
	for name, dst := range map[string]**float64{
		"base_price":    &in.BasePrice,
		"platform_fee":  &in.PlatformFee,
		"final_price":   &in.FinalPrice,
		"worker_payout": &in.WorkerPayout,
	} {
		if v, ok := formString(params, name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, name+" must be a number")
			}
			*dst = &f
		}
	}
	if vs, ok := params["payment_received"]; ok && len(vs) > 0 {
		b := vs[0] == "true"
		in.PaymentReceived = &b
	}
	if vs, ok := params["writer_paid"]; ok && len(vs) > 0 {
		b := vs[0] == "true"
		in.WriterPaid = &b
	}

	if fh, err := c.FormFile("completed_file"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "failed to read completed file")
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "failed to read completed file")
		}
		in.Result = &attachments.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	task, err := h.lifecycle.AdminUpdate(c.Request().Context(), p, taskID, in)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"task":    task,
	})
}

// formString reports a non-empty form value; empty submissions leave
// the field untouched.
func formString(params map[string][]string, key string) (string, bool) {
	vs, ok := params[key]
	if !ok || len(vs) == 0 || vs[0] == "" {
		return "", false
	}
	return vs[0], true
}
