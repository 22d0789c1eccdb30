package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "attendance-system/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse maps an error to the wire contract: a JSON body of the form
// {"error": <message>} with the status from the taxonomy. Internal causes are
// logged, never serialized.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("http error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}
		return c.JSON(httpErr.Code, echo.Map{"error": httpErr.Message})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation failed: " + strings.Join(msgs, "; ")})
	}

	code := apperrors.StatusOf(err)
	if code == http.StatusInternalServerError {
		logger.Error("unexpected error", zap.Error(err))
		return c.JSON(code, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(code, echo.Map{"error": err.Error()})
}
