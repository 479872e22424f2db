package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/learnpath-backend/internal/http/handlers"
	httpMW "github.com/yungbote/learnpath-backend/internal/http/middleware"
	"github.com/yungbote/learnpath-backend/internal/observability"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string
	Metrics        *observability.Metrics
	Limiter        httpMW.Limiter

	AuthHandler      *httpH.AuthHandler
	AuthMiddleware   *httpMW.AuthMiddleware
	UserHandler      *httpH.UserHandler
	ProgressHandler  *httpH.ProgressHandler
	PathHandler      *httpH.PathHandler
	LibraryHandler   *httpH.LibraryHandler
	ChatHandler      *httpH.ChatHandler
	DashboardHandler *httpH.DashboardHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.CORS(cfg.AllowedOrigins))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.RequestLogger(cfg.Log))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Auth (public); refresh works off the refresh token alone so an
		// expired access token can still be rotated.
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
		}

		// Progress
		if cfg.ProgressHandler != nil {
			protected.POST("/progress/update", cfg.ProgressHandler.Update)
		}

		// Learning paths
		if cfg.PathHandler != nil {
			protected.POST("/learning-paths/generate",
				httpMW.RateLimit(cfg.Log, cfg.Limiter, cfg.Metrics, "generate"),
				cfg.PathHandler.Generate,
			)
			protected.GET("/learning-paths", cfg.PathHandler.List)
			protected.GET("/learning-paths/:id", cfg.PathHandler.Get)
		}

		// Library
		if cfg.LibraryHandler != nil {
			protected.POST("/library/add", cfg.LibraryHandler.Add)
			protected.POST("/library/favorite", cfg.LibraryHandler.Favorite)
			protected.GET("/library", cfg.LibraryHandler.List)
		}

		// Chat (SSE)
		if cfg.ChatHandler != nil {
			protected.POST("/chat",
				httpMW.RateLimit(cfg.Log, cfg.Limiter, cfg.Metrics, "chat"),
				cfg.ChatHandler.Stream,
			)
		}

		// Dashboard
		if cfg.DashboardHandler != nil {
			protected.GET("/dashboard", cfg.DashboardHandler.Get)
		}
	}

	return r
}
