package controllers

import (
	"net/http"

	"attendance-system/internal/dto"
	"attendance-system/internal/services"
	apperrors "attendance-system/pkg/errors"
	"attendance-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ScheduleController struct {
	scheduleService services.ScheduleServiceInterface
	logger          *zap.Logger
}

func NewScheduleController(scheduleService services.ScheduleServiceInterface, logger *zap.Logger) *ScheduleController {
	return &ScheduleController{scheduleService: scheduleService, logger: logger}
}

func (c *ScheduleController) GetSchedules(ctx echo.Context) error {
	schedules, err := c.scheduleService.GetSchedules(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"schedules": schedules})
}

func (c *ScheduleController) CreateSchedule(ctx echo.Context) error {
	var payload dto.CreateScheduleDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	schedule, err := c.scheduleService.CreateSchedule(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"schedule": schedule})
}

func (c *ScheduleController) UpdateSchedule(ctx echo.Context) error {
	id, err := parseUUID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateScheduleDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	schedule, err := c.scheduleService.UpdateSchedule(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"schedule": schedule})
}

func (c *ScheduleController) DeleteSchedule(ctx echo.Context) error {
	id, err := parseUUID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.scheduleService.DeleteSchedule(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true})
}
