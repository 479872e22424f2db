package app

import (
	"github.com/gin-gonic/gin"

	httpx "github.com/yungbote/learnpath-backend/internal/http"
	httpH "github.com/yungbote/learnpath-backend/internal/http/handlers"
	httpMW "github.com/yungbote/learnpath-backend/internal/http/middleware"
	"github.com/yungbote/learnpath-backend/internal/observability"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	User      *httpH.UserHandler
	Progress  *httpH.ProgressHandler
	Path      *httpH.PathHandler
	Library   *httpH.LibraryHandler
	Chat      *httpH.ChatHandler
	Dashboard *httpH.DashboardHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(),
		Auth:      httpH.NewAuthHandler(log, services.Auth),
		User:      httpH.NewUserHandler(log, services.User),
		Progress:  httpH.NewProgressHandler(log, services.Progress),
		Path:      httpH.NewPathHandler(log, services.Path),
		Library:   httpH.NewLibraryHandler(log, services.Library),
		Chat:      httpH.NewChatHandler(log, services.Chat),
		Dashboard: httpH.NewDashboardHandler(log, services.Dashboard),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouter(log *logger.Logger, cfg Config, clients Clients, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	rc := httpx.RouterConfig{
		Log:              log,
		AllowedOrigins:   cfg.Origins(),
		Metrics:          metrics,
		AuthHandler:      handlers.Auth,
		AuthMiddleware:   middleware.Auth,
		UserHandler:      handlers.User,
		ProgressHandler:  handlers.Progress,
		PathHandler:      handlers.Path,
		LibraryHandler:   handlers.Library,
		ChatHandler:      handlers.Chat,
		DashboardHandler: handlers.Dashboard,
		HealthHandler:    handlers.Health,
	}
	if cfg.OtelEnabled {
		rc.ServiceName = cfg.OtelServiceName
	}
	// A nil *redis.Limiter must not become a non-nil interface.
	if clients.Limiter != nil {
		rc.Limiter = clients.Limiter
	}
	return httpx.NewRouter(rc)
}
