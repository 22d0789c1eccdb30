package routes

import (
	"attendance-system/internal/authz"
	"attendance-system/internal/controllers"
	"attendance-system/internal/services"
	"attendance-system/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runStudentRouter(
	secureGroup *echo.Group,
	studentService services.StudentServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	studentCtrl := controllers.NewStudentController(studentService, logger)

	students := secureGroup.Group("/students", authMW.RequirePage(authz.PageStudents))
	students.GET("", studentCtrl.GetStudents)
	students.POST("", studentCtrl.CreateStudent)
	students.GET("/filters", studentCtrl.GetFilterValues)
	students.GET("/:id", studentCtrl.FindStudent)
	students.PUT("/:id", studentCtrl.UpdateStudent)
	students.DELETE("/:id", studentCtrl.DeleteStudent)

	// enrollment flows live on their own page grant
	rfid := secureGroup.Group("/students", authMW.RequirePage(authz.PageEnroll))
	rfid.GET("/check-rfid", studentCtrl.CheckRfid)
	rfid.PATCH("/:id/rfid", studentCtrl.AssignRfid)

	// tag lookup for the scanner page
	scanner := secureGroup.Group("/students", authMW.RequirePage(authz.PageScanner))
	scanner.GET("/rfid-search", studentCtrl.SearchRfid)
}
