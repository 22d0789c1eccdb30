package controllers

import (
	"net/http"
	"strconv"

	"attendance-system/internal/dto"
	"attendance-system/internal/services"
	apperrors "attendance-system/pkg/errors"
	"attendance-system/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type StudentController struct {
	studentService services.StudentServiceInterface
	logger         *zap.Logger
}

func NewStudentController(studentService services.StudentServiceInterface, logger *zap.Logger) *StudentController {
	return &StudentController{studentService: studentService, logger: logger}
}

func parseUUID(ctx echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.NewBadRequestError("Invalid id")
	}
	return id, nil
}

func (c *StudentController) GetStudents(ctx echo.Context) error {
	filter := dto.StudentListFilter{
		SchoolYear: ctx.QueryParam("school_year"),
		GradeLevel: ctx.QueryParam("grade_level"),
		Search:     ctx.QueryParam("search"),
	}
	filter.Page, _ = strconv.Atoi(ctx.QueryParam("page"))
	filter.PageSize, _ = strconv.Atoi(ctx.QueryParam("page_size"))

	claims, _ := utils.ClaimsFromCtx(ctx.Request().Context())
	students, total, err := c.studentService.GetStudents(ctx.Request().Context(), claims, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"students": students, "total": total})
}

func (c *StudentController) FindStudent(ctx echo.Context) error {
	id, err := parseUUID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	claims, _ := utils.ClaimsFromCtx(ctx.Request().Context())
	student, err := c.studentService.FindStudent(ctx.Request().Context(), claims, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"student": student})
}

func (c *StudentController) CreateStudent(ctx echo.Context) error {
	var payload dto.CreateStudentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	claims, _ := utils.ClaimsFromCtx(ctx.Request().Context())
	student, err := c.studentService.CreateStudent(ctx.Request().Context(), claims, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"student": student})
}

func (c *StudentController) UpdateStudent(ctx echo.Context) error {
	id, err := parseUUID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateStudentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	claims, _ := utils.ClaimsFromCtx(ctx.Request().Context())
	student, err := c.studentService.UpdateStudent(ctx.Request().Context(), claims, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"student": student})
}

func (c *StudentController) DeleteStudent(ctx echo.Context) error {
	id, err := parseUUID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	claims, _ := utils.ClaimsFromCtx(ctx.Request().Context())
	if err := c.studentService.DeleteStudent(ctx.Request().Context(), claims, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true})
}

func (c *StudentController) AssignRfid(ctx echo.Context) error {
	id, err := parseUUID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.AssignRfidDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid request body"), c.logger)
	}

	claims, _ := utils.ClaimsFromCtx(ctx.Request().Context())
	student, err := c.studentService.AssignRfid(ctx.Request().Context(), claims, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"student": student})
}

// CheckRfid reports whether a tag is already bound to a student. Used by
// the enrollment page while a tag is held against the reader.
func (c *StudentController) CheckRfid(ctx echo.Context) error {
	tag := rfidFromQuery(ctx)
	assigned, err := c.studentService.CheckRfid(ctx.Request().Context(), tag)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	claims, _ := utils.ClaimsFromCtx(ctx.Request().Context())
	student, err := c.studentService.FindStudentByRfid(ctx.Request().Context(), claims, tag)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"assigned": assigned, "student": student})
}

// SearchRfid resolves a tag to its student for the scanner page; unknown
// tags answer {"student": null}.
func (c *StudentController) SearchRfid(ctx echo.Context) error {
	claims, _ := utils.ClaimsFromCtx(ctx.Request().Context())
	student, err := c.studentService.FindStudentByRfid(ctx.Request().Context(), claims, rfidFromQuery(ctx))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"student": student})
}

func rfidFromQuery(ctx echo.Context) string {
	if tag := ctx.QueryParam("rfid"); tag != "" {
		return tag
	}
	return ctx.QueryParam("rfid_tag")
}

func (c *StudentController) GetFilterValues(ctx echo.Context) error {
	claims, _ := utils.ClaimsFromCtx(ctx.Request().Context())
	values, err := c.studentService.GetFilterValues(ctx.Request().Context(), claims)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, values)
}
