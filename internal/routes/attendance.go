package routes

import (
	"attendance-system/internal/authz"
	"attendance-system/internal/controllers"
	"attendance-system/internal/services"
	"attendance-system/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAttendanceRouter(
	secureGroup *echo.Group,
	attendanceService services.AttendanceServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	attendanceCtrl := controllers.NewAttendanceController(attendanceService, logger)

	attendance := secureGroup.Group("/attendance")
	attendance.GET("", attendanceCtrl.GetAttendance, authMW.RequirePage(authz.PageAttendance))
	attendance.GET("/export", attendanceCtrl.ExportAttendance, authMW.RequirePage(authz.PageAttendance))
	attendance.POST("/scan", attendanceCtrl.RecordScan, authMW.RequirePage(authz.PageScanner))
	attendance.GET("/stats", attendanceCtrl.GetDashboardStats, authMW.RequirePage(authz.PageDashboard))
}
