package controllers

import (
	"net/http"

	"attendance-system/internal/services"
	"attendance-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SchoolController struct {
	schoolService services.SchoolServiceInterface
	logger        *zap.Logger
}

func NewSchoolController(schoolService services.SchoolServiceInterface, logger *zap.Logger) *SchoolController {
	return &SchoolController{schoolService: schoolService, logger: logger}
}

// GetSchools backs the school picker on the login page, so it is public.
func (c *SchoolController) GetSchools(ctx echo.Context) error {
	schools, err := c.schoolService.GetSchools(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"schools": schools})
}
