package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"attendance-system/internal/dto"
	"attendance-system/internal/repositories"
	"attendance-system/internal/services"
	apperrors "attendance-system/pkg/errors"
	"attendance-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AttendanceController struct {
	attendanceService services.AttendanceServiceInterface
	logger            *zap.Logger
}

func NewAttendanceController(attendanceService services.AttendanceServiceInterface, logger *zap.Logger) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService, logger: logger}
}

func attendanceFilterFromQuery(ctx echo.Context) repositories.AttendanceListFilter {
	filter := repositories.AttendanceListFilter{
		GradeLevel: ctx.QueryParam("grade_level"),
		Search:     ctx.QueryParam("search"),
	}
	filter.Page, _ = strconv.Atoi(ctx.QueryParam("page"))
	filter.PageSize, _ = strconv.Atoi(ctx.QueryParam("page_size"))

	if v := ctx.QueryParam("date_from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateFrom = &t
		}
	}
	if v := ctx.QueryParam("date_to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			// exclusive upper bound, midnight after the requested day
			end := t.AddDate(0, 0, 1)
			filter.DateTo = &end
		}
	}
	return filter
}

func (c *AttendanceController) GetAttendance(ctx echo.Context) error {
	claims, _ := utils.ClaimsFromCtx(ctx.Request().Context())
	records, total, err := c.attendanceService.GetAttendance(ctx.Request().Context(), claims, attendanceFilterFromQuery(ctx))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"attendance": records, "total": total})
}

// RecordScan is the scanner endpoint. The body always carries success and a
// display message; an unrecognized tag is not an HTTP error.
func (c *AttendanceController) RecordScan(ctx echo.Context) error {
	var payload dto.ScanRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.attendanceService.RecordScan(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, result)
}

func (c *AttendanceController) ExportAttendance(ctx echo.Context) error {
	claims, _ := utils.ClaimsFromCtx(ctx.Request().Context())
	data, filename, err := c.attendanceService.ExportAttendance(ctx.Request().Context(), claims, attendanceFilterFromQuery(ctx))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return ctx.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (c *AttendanceController) GetDashboardStats(ctx echo.Context) error {
	claims, _ := utils.ClaimsFromCtx(ctx.Request().Context())
	stats, err := c.attendanceService.GetDashboardStats(ctx.Request().Context(), claims)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, stats)
}
