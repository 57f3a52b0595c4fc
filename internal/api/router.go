package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kambaz/kambaz-api/internal/api/handler"
	"github.com/kambaz/kambaz-api/internal/api/middleware"
	"github.com/kambaz/kambaz-api/internal/core/service"
	"github.com/kambaz/kambaz-api/internal/infrastructure/config"
	mongodb "github.com/kambaz/kambaz-api/internal/infrastructure/db/mongo"
	redisdb "github.com/kambaz/kambaz-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	sessions := redisdb.NewSessionStore(rdb, cfg.Session.TTL)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("kambaz"))
	e.Use(middleware.Session(sessions, cfg.Session.CookieName))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	courseRepo := mongodb.NewCourseRepository(db)
	moduleRepo := mongodb.NewModuleRepository(db)
	enrollmentRepo := mongodb.NewEnrollmentRepository(db)

	userService := service.NewUserService(userRepo, courseRepo, enrollmentRepo, sessions, log)
	courseService := service.NewCourseService(courseRepo, log)
	moduleService := service.NewModuleService(moduleRepo, log)

	cookie := handler.SessionCookie{
		Name:     cfg.Session.CookieName,
		TTL:      cfg.Session.TTL,
		Secure:   cfg.Session.CookieSecure,
		SameSite: cfg.Session.SameSite,
		Domain:   cfg.Session.Domain,
	}

	userHandler := handler.NewUserHandler(userService, cookie)
	courseHandler := handler.NewCourseHandler(courseService)
	moduleHandler := handler.NewModuleHandler(moduleService)

	// --- User routes ---
	e.POST("/api/users/current/courses", userHandler.CreateCourse)
	e.POST("/api/users", userHandler.Create)
	e.GET("/api/users", userHandler.List)
	e.GET("/api/users/:userId", userHandler.Get)
	e.PUT("/api/users/:userId", userHandler.Update)
	e.DELETE("/api/users/:userId", userHandler.Delete)
	e.POST("/api/users/signup", userHandler.Signup)
	e.POST("/api/users/signin", userHandler.Signin)
	e.POST("/api/users/signout", userHandler.Signout)
	e.GET("/api/users/profile", userHandler.Profile)
	e.GET("/api/users/:userId/courses", userHandler.EnrolledCourses)

	// --- Course routes ---
	e.GET("/api/courses", courseHandler.List)
	e.POST("/api/courses", courseHandler.Create)
	e.GET("/api/courses/:courseId", courseHandler.Get)
	e.PUT("/api/courses/:courseId", courseHandler.Update)
	e.DELETE("/api/courses/:courseId", courseHandler.Delete)

	// --- Module routes ---
	e.GET("/api/courses/:courseId/modules", moduleHandler.ListForCourse)
	e.POST("/api/courses/:courseId/modules", moduleHandler.Create)
	e.PUT("/api/modules/:moduleId", moduleHandler.Update)
	e.DELETE("/api/modules/:moduleId", moduleHandler.Delete)

	// --- Operations ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
