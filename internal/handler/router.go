package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"artisan-quotes/internal/domain/user"
	"artisan-quotes/internal/handler/api"
	"artisan-quotes/internal/handler/middleware"
	"artisan-quotes/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, quoteHandler *api.QuoteHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, quoteHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, quoteHandler *api.QuoteHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		quotes := apiGroup.Group("/quotes")
		quotes.Use(authMiddleware.RequireAuth())
		{
			addRoutes(quotes, []route{
				{Method: http.MethodPost, Path: "", Handler: quoteHandler.Create,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleCustomer)}},
				{Method: http.MethodGet, Path: "", Handler: quoteHandler.List},
				{Method: http.MethodGet, Path: "/stats", Handler: quoteHandler.Stats},
				{Method: http.MethodGet, Path: "/:id", Handler: quoteHandler.Get},
				{Method: http.MethodGet, Path: "/:id/history", Handler: quoteHandler.History},
				{Method: http.MethodPost, Path: "/:id/respond", Handler: quoteHandler.Respond,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleArtisan)}},
				{Method: http.MethodPost, Path: "/:id/messages", Handler: quoteHandler.AddMessage},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: quoteHandler.Cancel},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: quoteHandler.Complete,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleAdmin)}},
			})
		}
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
