package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/sekai-soft/yurikamome/config"
	"github.com/sekai-soft/yurikamome/internal/application/services"
	"github.com/sekai-soft/yurikamome/internal/infrastructure/cache/redis"
	"github.com/sekai-soft/yurikamome/internal/interfaces/http/handlers"
	"github.com/sekai-soft/yurikamome/internal/interfaces/http/middleware"
	"github.com/sekai-soft/yurikamome/pkg/logger"
	"github.com/sekai-soft/yurikamome/web"
)

// Router wraps the Gin engine with application dependencies.
type Router struct {
	engine *gin.Engine
	cfg    *config.Config
}

// RouterDeps contains dependencies needed by the router.
type RouterDeps struct {
	AppService     *services.AppService
	OAuthService   *services.OAuthService
	SessionService *services.SessionService
	LoginLimiter   *redis.LoginLimiter
	DBHealther     handlers.HealthChecker
	RedisHealther  handlers.HealthChecker
	Logger         logger.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(cfg *config.Config, deps *RouterDeps) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.NewRequestLoggerMiddleware(deps.Logger).Handler())
	engine.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "templates/*.html")))

	hostURL := cfg.Instance.HostURL()
	secureCookies := cfg.Security.SecureCookies

	appsHandler := handlers.NewAppsHandler(deps.AppService)
	oauthHandler := handlers.NewOAuthHandler(deps.OAuthService, deps.SessionService, secureCookies)
	accountsHandler := handlers.NewAccountsHandler(hostURL)
	timelinesHandler := handlers.NewTimelinesHandler(hostURL)
	instanceHandler := handlers.NewInstanceHandler(hostURL, cfg.Instance.ContactEmail())
	pagesHandler := handlers.NewPagesHandler(deps.SessionService, secureCookies)
	healthHandler := handlers.NewHealthHandler(deps.DBHealther, deps.RedisHealther)

	authMiddleware := middleware.NewAuthMiddleware(deps.SessionService)
	loginRateLimit := middleware.NewLoginRateLimitMiddleware(deps.LoginLimiter, deps.Logger)

	engine.GET("/health", healthHandler.Health)

	engine.Use(corsMiddleware(cfg.Security.AllowedOrigins))

	// Human-facing pages, gated on the session cookie.
	pages := engine.Group("")
	pages.Use(authMiddleware.LoadSession())
	{
		pages.GET("/", pagesHandler.Index)
		pages.GET("/login", pagesHandler.LoginPage)
		pages.POST("/twitter_auth", loginRateLimit.Handler(), pagesHandler.TwitterAuth)
		pages.GET("/logout", pagesHandler.Logout)
		pages.GET("/oauth/authorize", oauthHandler.Authorize)
		pages.POST("/oauth/authorize", oauthHandler.AuthorizeConfirm)
	}

	engine.POST("/oauth/token", oauthHandler.Token)

	// Mastodon API surface.
	api := engine.Group("/api/v1")
	{
		api.POST("/apps", appsHandler.Create)
		api.GET("/instance", instanceHandler.Instance)

		protected := api.Group("")
		protected.Use(authMiddleware.RequireAccessToken())
		{
			protected.GET("/accounts/verify_credentials", accountsHandler.VerifyCredentials)
			protected.GET("/timelines/home", timelinesHandler.Home)
		}
	}

	return &Router{
		engine: engine,
		cfg:    cfg,
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// corsMiddleware creates a CORS middleware.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, o := range allowedOrigins {
			if o == "*" || o == origin {
				allowed = true
				break
			}
		}

		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Max-Age", "86400")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
