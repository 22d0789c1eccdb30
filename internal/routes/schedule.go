package routes

import (
	"attendance-system/internal/authz"
	"attendance-system/internal/controllers"
	"attendance-system/internal/services"
	"attendance-system/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runScheduleRouter(
	secureGroup *echo.Group,
	scheduleService services.ScheduleServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	scheduleCtrl := controllers.NewScheduleController(scheduleService, logger)

	schedules := secureGroup.Group("/schedules", authMW.RequirePage(authz.PageSchedule))
	schedules.GET("", scheduleCtrl.GetSchedules)
	schedules.POST("", scheduleCtrl.CreateSchedule)
	schedules.PUT("/:id", scheduleCtrl.UpdateSchedule)
	schedules.DELETE("/:id", scheduleCtrl.DeleteSchedule)
}
