package routes

import (
	"attendance-system/internal/controllers"
	"attendance-system/internal/services"
	"attendance-system/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runRoleRouter(
	secureGroup *echo.Group,
	roleService services.RoleServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	roleCtrl := controllers.NewRoleController(roleService, logger)

	roles := secureGroup.Group("/roles", authMW.RequireAdmin)
	roles.GET("", roleCtrl.GetRoles)
	roles.POST("", roleCtrl.CreateRole)
	roles.GET("/:id", roleCtrl.FindRole)
	roles.PUT("/:id", roleCtrl.UpdateRole)
	roles.DELETE("/:id", roleCtrl.DeleteRole)
}
