package http

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"workx.com/workx/internal/constants"
	middleware "workx.com/workx/internal/http/middlewares"
	"workx.com/workx/internal/sessions"
)

func Register(e *echo.Echo, h *Handler, store sessions.Store, rateLimitPerMinute int) {
	// Caps the request body before any handler buffers it.
	e.Use(echomw.BodyLimit("16M"))
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))
	e.Use(middleware.Authenticate(store))

	api := e.Group("/api")

	api.POST("/signup", h.Signup)
	api.POST("/login", h.Login)
	api.POST("/logout", h.Logout)

	api.POST("/create_task", h.CreateTask, middleware.RequireRole(constants.RoleUser))
	api.GET("/user/my_orders", h.MyOrders, middleware.RequireRole(constants.RoleUser))

	api.GET("/writer/available_tasks", h.AvailableTasks, middleware.RequireRole(constants.RoleWriter))
	api.POST("/writer/claim_task", h.ClaimTask, middleware.RequireRole(constants.RoleWriter))
	api.GET("/writer/my_tasks", h.MyTasks, middleware.RequireRole(constants.RoleWriter))
	api.POST("/writer/mark_complete", h.MarkComplete, middleware.RequireRole(constants.RoleWriter))

	api.GET("/admin/tasks", h.AdminTasks, middleware.RequireRole(constants.RoleAdmin))
	api.POST("/admin/update_task", h.AdminUpdateTask, middleware.RequireRole(constants.RoleAdmin))

	// Unauthenticated read paths.
	api.GET("/user/task/:task_id", h.TaskSummary)
	api.GET("/download/:task_id", h.DownloadResult)
	api.GET("/download_user_file/:task_id/:file_index", h.DownloadUserFile)
	api.GET("/rate_card", h.RateCard)
	api.GET("/health", h.Health)
}
