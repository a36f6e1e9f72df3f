package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/rueidis"
	"gorm.io/gorm"

	dto "workx.com/workx/internal/data_models"
	apperrors "workx.com/workx/internal/errors"
	middleware "workx.com/workx/internal/http/middlewares"
	"workx.com/workx/internal/pricing"
	"workx.com/workx/internal/services"
)

type Handler struct {
	accounts  *services.AccountService
	lifecycle *services.LifecycleService
	db        *gorm.DB
	redis     rueidis.Client
}

func NewHandler(
	accounts *services.AccountService,
	lifecycle *services.LifecycleService,
	db *gorm.DB,
	redis rueidis.Client,
) *Handler {
	return &Handler{
		accounts:  accounts,
		lifecycle: lifecycle,
		db:        db,
		redis:     redis,
	}
}

// toHTTPError maps service errors onto echo responses; anything
// outside the Exception taxonomy is a 500.
func toHTTPError(err error) error {
	var ex *apperrors.Exception
	if errors.As(err, &ex) {
		return echo.NewHTTPError(ex.StatusCode, ex.Message)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

func (h *Handler) Signup(c echo.Context) error {
	var req dto.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	if err := h.accounts.Signup(c.Request().Context(), req); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": req.UserType + " account created successfully",
	})
}

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	token, principal, err := h.accounts.Login(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"role":    principal.Role,
		"token":   token,
	})
}

func (h *Handler) Logout(c echo.Context) error {
	if err := h.accounts.Logout(c.Request().Context(), middleware.Token(c)); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *Handler) RateCard(c echo.Context) error {
	return c.JSON(http.StatusOK, pricing.RateCard())
}

// Health pings both backing stores; either failing marks the process
// unhealthy.
func (h *Handler) Health(c echo.Context) error {
	ctx := c.Request().Context()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}

	if h.redis != nil {
		if err := h.redis.Do(ctx, h.redis.B().Ping().Build()).Error(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":   "healthy",
		"database": "connected",
	})
}
