package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"attendance-system/internal/repositories"
	"attendance-system/internal/services"
	"attendance-system/pkg/config"
	"attendance-system/pkg/middleware"
	"attendance-system/pkg/session"
	"attendance-system/pkg/sms"
)

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	sessions session.Service,
	logger *zap.Logger,
	cfg *config.Config,
) {
	api := e.Group("/api")

	// repositories
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	userRepo := repositories.NewUserRepository(dbConn)
	roleRepo := repositories.NewRoleRepository(dbConn)
	studentRepo := repositories.NewStudentRepository(dbConn)
	attendanceRepo := repositories.NewAttendanceRepository(dbConn)
	scheduleRepo := repositories.NewScheduleRepository(dbConn)
	schoolRepo := repositories.NewSchoolRepository(dbConn)

	// services
	smsClient := sms.NewService(cfg.Sms.APIKey, cfg.Sms.SenderName, cfg.Sms.BaseURL)
	authService := services.NewAuthService(userRepo, cacheRepo, logger, &cfg.Auth)
	roleService := services.NewRoleService(roleRepo, userRepo, cacheRepo, logger, &cfg.Auth)
	userService := services.NewUserService(userRepo, logger)
	studentService := services.NewStudentService(studentRepo, logger)
	notificationService := services.NewNotificationService(smsClient, logger, &cfg.Sms)
	attendanceService := services.NewAttendanceService(attendanceRepo, studentRepo, notificationService, logger)
	scheduleService := services.NewScheduleService(scheduleRepo, logger)
	schoolService := services.NewSchoolService(schoolRepo)

	// routers
	authMW := middleware.NewAuthMiddleware(sessions, roleService, logger)
	api.Use(authMW.WithSession)
	secureGroup := api.Group("", authMW.RequireAuth)

	runAuthRouter(api, authService, roleService, schoolService, sessions, logger)
	runSchoolRouter(api, schoolService, logger)
	runUserRouter(secureGroup, userService, logger, authMW)
	runRoleRouter(secureGroup, roleService, logger, authMW)
	runStudentRouter(secureGroup, studentService, logger, authMW)
	runAttendanceRouter(secureGroup, attendanceService, logger, authMW)
	runScheduleRouter(secureGroup, scheduleService, logger, authMW)
}
