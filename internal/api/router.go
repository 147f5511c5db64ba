package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brc-dashboard/dashboard-api/internal/api/handler"
	"github.com/brc-dashboard/dashboard-api/internal/api/middleware"
	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
	"github.com/brc-dashboard/dashboard-api/internal/core/ports"
	"github.com/brc-dashboard/dashboard-api/internal/infrastructure/http/handlers"
)

// Services bundles the wired application services for route registration.
type Services struct {
	Auth    ports.AuthService
	Project ports.ProjectService
	Admin   ports.AdminService
	Users   ports.UserRepository
}

// Options carries router-level settings.
type Options struct {
	JWTSecret string
	UploadDir string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svcs Services, db *mongo.Database, rdb *redis.Client, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("dashboard"))

	authHandler := handler.NewAuthHandler(svcs.Auth)
	projectHandler := handler.NewProjectHandler(svcs.Project)
	adminHandler := handler.NewAdminHandler(svcs.Admin)

	authenticated := middleware.Auth(opts.JWTSecret, svcs.Users)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)

	// --- Project routes (any authenticated role) ---
	projects := e.Group("/api/projects", authenticated)
	projects.POST("", projectHandler.Create)
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.PATCH("/:id", projectHandler.Update)
	projects.POST("/:id/attachment", projectHandler.UploadAttachment)
	projects.POST("/:id/meeting", projectHandler.SetMeetingLink)

	// --- Admin routes ---
	admin := e.Group("/api/admin", authenticated, adminOnly)
	admin.GET("/overview", adminHandler.Overview)
	admin.GET("/projects", adminHandler.ListProjects)
	admin.GET("/projects/assignable", adminHandler.ListAssignableProjects)
	admin.GET("/users/assignable", adminHandler.ListAssignableUsers)
	admin.GET("/users/:userId/projects", adminHandler.ListUserProjects)
	admin.POST("/projects/:projectId/assign", adminHandler.Assign)
	admin.PATCH("/projects/:projectId/status", adminHandler.ChangeStatus)
	admin.PUT("/projects/:projectId", adminHandler.UpdateProject)
	admin.DELETE("/projects/:projectId", adminHandler.DeleteProject)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateUser)
	admin.DELETE("/users/:userId", adminHandler.DeleteUser)

	// --- Uploaded file bytes (static) ---
	e.Static("/uploads", opts.UploadDir)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
