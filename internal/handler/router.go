package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/fx"

	"campus-placement/internal/domain/user"
	"campus-placement/internal/handler/api"
	"campus-placement/internal/handler/middleware"
	"campus-placement/internal/pkg/config"
	"campus-placement/internal/realtime"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine              *gin.Engine
	Config              config.Config
	Logger              *slog.Logger
	AuthMiddleware      *middleware.AuthMiddleware
	ApplicationHandler  *api.ApplicationHandler
	NotificationHandler *api.NotificationHandler
	Realtime            *realtime.Server
	ConnectLimiter      realtime.ConnectLimiter
}

func NewRouter(p RouterParams) {
	setupMiddleware(p.Engine, p.Config, p.Logger)
	setupRoutes(p)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	auth := p.AuthMiddleware
	apps := p.ApplicationHandler
	inbox := p.NotificationHandler

	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Authentication happens inside the socket, on the first frame.
	engine.GET("/ws", middleware.ConnectRateLimit(p.ConnectLimiter), gin.WrapH(p.Realtime.Handler()))

	apiGroup := engine.Group("/api")
	apiGroup.Use(auth.RequireAuth())
	{
		candidateOnly := []gin.HandlerFunc{auth.RequireRole(user.RoleStudent)}
		organizationOnly := []gin.HandlerFunc{auth.RequireRole(user.RoleCompany, user.RoleAdmin)}

		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/opportunities/:id/applications", Handler: apps.Apply, Mw: candidateOnly},
			{Method: http.MethodGet, Path: "/applications", Handler: apps.ListMine, Mw: candidateOnly},
			{Method: http.MethodGet, Path: "/applications/:id", Handler: apps.Get},
			{Method: http.MethodPut, Path: "/applications/:id/rounds/:round", Handler: apps.RecordRound, Mw: organizationOnly},
			{Method: http.MethodPost, Path: "/applications/:id/offer", Handler: apps.CreateOffer, Mw: organizationOnly},
			{Method: http.MethodPost, Path: "/offers/:id/response", Handler: apps.RespondToOffer, Mw: candidateOnly},
		})

		notifications := apiGroup.Group("/notifications")
		addRoutes(notifications, []route{
			{Method: http.MethodGet, Path: "", Handler: inbox.List},
			{Method: http.MethodGet, Path: "/unread-count", Handler: inbox.UnreadCount},
			{Method: http.MethodPost, Path: "/:id/read", Handler: inbox.MarkRead},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
