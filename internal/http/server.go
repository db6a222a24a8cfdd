package http

import (
	"context"
	stdhttp "net/http"

	"openupload/internal/auth"
	"openupload/internal/config"
	"openupload/internal/http/handler"
	"openupload/internal/http/middleware"
	"openupload/internal/usage"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	jsonKeyStatus = "status"
	statusOK      = "ok"
)

// UsageService is both the sink the metering middleware writes to and the
// reader the dashboard handlers query.
type UsageService interface {
	handler.UsageReader
	usage.Sink
}

type ServerDependencies struct {
	Config         *config.Config
	ProjectRepo    handler.ProjectRepository
	FileRepo       handler.FileRepository
	APIKeyRepo     handler.APIKeyRepository
	UsageService   UsageService
	BlobStore      handler.BlobStore
	AuthMiddleware *auth.Middleware
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID first, so all logs have one
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(deps.Config.Server.BodyLimit))

	if deps.Config.Server.FrontendOrigin != "" {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: []string{deps.Config.Server.FrontendOrigin},
			AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, "X-API-Key"},
		}))
	}

	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	projectHandler := handler.NewProjectHandler(deps.ProjectRepo, deps.FileRepo, deps.APIKeyRepo, deps.BlobStore)
	apiKeyHandler := handler.NewAPIKeyHandler(deps.APIKeyRepo, deps.ProjectRepo)
	fileHandler := handler.NewFileHandler(deps.FileRepo, deps.ProjectRepo, deps.BlobStore)
	usageHandler := handler.NewUsageHandler(deps.UsageService, deps.FileRepo)
	userHandler := handler.NewUserHandler()

	e.GET("/health", healthCheck)
	e.GET("/files/:id", fileHandler.DownloadFile)

	e.GET("/me", userHandler.Me, deps.AuthMiddleware.RequireBearer())

	frontend := e.Group("/frontend")
	frontend.Use(deps.AuthMiddleware.RequireBearer())

	frontend.POST("/projects", projectHandler.CreateProject)
	frontend.GET("/projects", projectHandler.ListProjects)
	frontend.GET("/projects/:id", projectHandler.GetProject)
	frontend.DELETE("/projects/:id", projectHandler.DeleteProject)
	frontend.GET("/projects/:id/stats", projectHandler.ProjectStats)

	frontend.POST("/api-keys", apiKeyHandler.CreateAPIKey)
	frontend.GET("/api-keys", apiKeyHandler.ListAPIKeys)
	frontend.DELETE("/api-keys/:id", apiKeyHandler.DeleteAPIKey)
	frontend.GET("/api-keys/verify", apiKeyHandler.VerifyAPIKey)

	frontend.POST("/files/upload", fileHandler.UploadFile)
	frontend.GET("/files", fileHandler.ListFiles)
	frontend.DELETE("/files/:id", fileHandler.DeleteFile)

	gated := frontend.Group("/usage")
	gated.Use(deps.AuthMiddleware.RequireRoles(auth.RoleWhitelisted))
	gated.GET("", usageHandler.UsageByDay)
	gated.GET("/dashboard-stats", usageHandler.DashboardStats)
	gated.GET("/details", usageHandler.UsageDetails)

	// Every route behind the key middleware is metered; requests rejected at
	// authentication never reach the recorder.
	api := e.Group("/api/v1")
	api.Use(deps.AuthMiddleware.RequireAPIKey())
	api.Use(usage.Middleware(deps.UsageService))

	api.POST("/files/upload", fileHandler.UploadFileByKey)
	api.GET("/files/list", fileHandler.ListFilesByKey)
	api.DELETE("/files/:id", fileHandler.DeleteFileByKey)
	api.GET("/projects/info", projectHandler.ProjectInfo)
	api.GET("/usage/stats", usageHandler.KeyUsageStats)

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
