package routes

import (
	"attendance-system/internal/controllers"
	"attendance-system/internal/services"
	"attendance-system/pkg/session"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAuthRouter(
	api *echo.Group,
	authService services.AuthServiceInterface,
	roleService services.RoleServiceInterface,
	schoolService services.SchoolServiceInterface,
	sessions session.Service,
	logger *zap.Logger,
) {
	authCtrl := controllers.NewAuthController(authService, roleService, schoolService, sessions, logger)

	auth := api.Group("/auth")
	auth.POST("/login", authCtrl.Login)
	auth.POST("/logout", authCtrl.Logout)
	auth.GET("/session", authCtrl.GetSession)
}
