package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ValidateCreateTask checks the required form fields before the
// lifecycle engine sees the request.
func ValidateCreateTask(workType, deadlineDate, deadlineTime string) error {
	if workType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "work type is required")
	}
	if deadlineDate == "" || deadlineTime == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "deadline date and time required")
	}
	return nil
}
