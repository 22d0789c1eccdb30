package controllers

import (
	"errors"
	"net/http"
	"time"

	"attendance-system/internal/dto"
	"attendance-system/internal/services"
	apperrors "attendance-system/pkg/errors"
	"attendance-system/pkg/session"
	"attendance-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthController struct {
	authService   services.AuthServiceInterface
	roleService   services.RoleServiceInterface
	schoolService services.SchoolServiceInterface
	sessions      session.Service
	logger        *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	roleService services.RoleServiceInterface,
	schoolService services.SchoolServiceInterface,
	sessions session.Service,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService:   authService,
		roleService:   roleService,
		schoolService: schoolService,
		sessions:      sessions,
		logger:        logger,
	}
}

func (c *AuthController) Login(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.LoginDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	user, err := c.authService.Login(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	claims := session.Claims{
		UserID:   user.UserID,
		SchoolID: user.SchoolID,
		Role:     user.Role,
		Username: user.Username,
	}
	token, err := c.sessions.Issue(claims, c.sessions.TTL())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	ctx.SetCookie(c.sessionCookie(token, c.sessions.TTL()))

	return ctx.JSON(http.StatusOK, c.buildSessionResponse(ctx, user.UserID))
}

func (c *AuthController) Logout(ctx echo.Context) error {
	ctx.SetCookie(c.sessionCookie("", -time.Hour))
	return ctx.JSON(http.StatusOK, echo.Map{"success": true})
}

// GetSession reports the current session, or nulls when anonymous. It never
// fails for an unauthenticated caller.
func (c *AuthController) GetSession(ctx echo.Context) error {
	claims, err := utils.ClaimsFromCtx(ctx.Request().Context())
	if err != nil || claims == nil {
		return ctx.JSON(http.StatusOK, echo.Map{"user": nil})
	}
	return ctx.JSON(http.StatusOK, c.buildSessionResponse(ctx, claims.UserID))
}

func (c *AuthController) buildSessionResponse(ctx echo.Context, userID int64) *dto.LoginResponseDTO {
	reqCtx := ctx.Request().Context()

	user, err := c.authService.GetUserByID(reqCtx, userID)
	if err != nil {
		return &dto.LoginResponseDTO{AllowedPages: []string{}}
	}

	pages, err := c.roleService.GetPageKeysForRole(reqCtx, user.Role)
	if err != nil {
		c.logger.Warn("failed to load allowed pages", zap.String("role", user.Role), zap.Error(err))
		pages = []string{}
	}

	resp := &dto.LoginResponseDTO{
		User: dto.SessionUserDTO{
			UserID:       user.UserID,
			Username:     user.Username,
			Fullname:     user.Fullname,
			Role:         user.Role,
			SchoolID:     user.SchoolID,
			EmailAddress: user.EmailAddress,
			ContactNo:    user.ContactNo,
		},
		AllowedPages: pages,
		SchoolID:     user.SchoolID,
	}
	if user.SchoolID != nil {
		school, err := c.schoolService.FindSchool(reqCtx, *user.SchoolID)
		if err == nil {
			resp.SchoolName = school.SchoolName
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			c.logger.Warn("failed to load school for session", zap.Error(err))
		}
	}
	return resp
}

func (c *AuthController) sessionCookie(token string, maxAge time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge > 0 {
		cookie.MaxAge = int(maxAge.Seconds())
	} else {
		cookie.MaxAge = -1
	}
	return cookie
}
