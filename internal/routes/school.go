package routes

import (
	"attendance-system/internal/controllers"
	"attendance-system/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runSchoolRouter(
	api *echo.Group,
	schoolService services.SchoolServiceInterface,
	logger *zap.Logger,
) {
	schoolCtrl := controllers.NewSchoolController(schoolService, logger)

	api.GET("/schools", schoolCtrl.GetSchools)
}
