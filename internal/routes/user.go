package routes

import (
	"attendance-system/internal/controllers"
	"attendance-system/internal/services"
	"attendance-system/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runUserRouter(
	secureGroup *echo.Group,
	userService services.UserServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	userCtrl := controllers.NewUserController(userService, logger)

	users := secureGroup.Group("/users", authMW.RequireAdmin)
	users.GET("", userCtrl.GetUsers)
	users.POST("", userCtrl.CreateUser)
	users.GET("/:id", userCtrl.FindUser)
	users.PUT("/:id", userCtrl.UpdateUser)
	users.DELETE("/:id", userCtrl.DeleteUser)
}
