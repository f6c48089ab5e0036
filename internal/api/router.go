package api

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/user-management-console/internal/activity"
	activityHttp "github.com/nekogravitycat/user-management-console/internal/activity/http"
	"github.com/nekogravitycat/user-management-console/internal/auth"
	authHttp "github.com/nekogravitycat/user-management-console/internal/auth/http"
	"github.com/nekogravitycat/user-management-console/internal/observability"
	"github.com/nekogravitycat/user-management-console/internal/screen"
	screenHttp "github.com/nekogravitycat/user-management-console/internal/screen/http"
	"github.com/nekogravitycat/user-management-console/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Config holds the dependencies required to build the router.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	Logger       *zap.Logger

	ScreenService   screen.Service
	Sessions        *session.Manager
	ActivityService activity.Service

	JWTManager   *auth.JWTManager
	Cookie       auth.CookieConfig
	OperatorGate *auth.OperatorGate
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (Logger, CORS, Session) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - RequestLogger: Logs request information through zap.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(observability.RequestLogger(cfg.Logger), observability.Recovery(cfg.Logger))

	// Configure CORS (Cross-Origin Resource Sharing) for browser clients of the JSON API.
	// Production without PROD_ORIGINS serves same-origin only.
	if origins := allowedOrigins(cfg); len(origins) > 0 {
		config := cors.DefaultConfig()
		config.AllowOrigins = origins
		config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
		// The session travels in a cookie.
		config.AllowCredentials = true
		r.Use(cors.New(config))
	}

	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))
	static, _ := fs.Sub(staticFS, "static")
	r.StaticFS("/static", http.FS(static))

	// sessionMiddleware: Attaches (or starts) the caller's screen session.
	sessionMiddleware := auth.SessionRequired(cfg.JWTManager, cfg.Cookie)
	// operatorMiddleware: Requires operator login when a password is configured.
	operatorMiddleware := auth.OperatorRequired(cfg.OperatorGate, "/login")

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	screenHandler := screenHttp.NewHandler(
		cfg.ScreenService,
		cfg.Sessions,
		cfg.Logger,
		cfg.OperatorGate.Enabled(),
		cfg.ActivityService.Enabled(),
	)
	authHandler := authHttp.NewHandler(cfg.OperatorGate, cfg.JWTManager, cfg.Cookie, cfg.Sessions, cfg.Logger)
	activityHandler := activityHttp.NewHandler(cfg.ActivityService)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Server-rendered screen
	authHttp.RegisterRoutes(r, authHandler, sessionMiddleware)
	screenHttp.RegisterPageRoutes(r, screenHandler, sessionMiddleware, operatorMiddleware)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		screenHttp.RegisterRoutes(v1, screenHandler, sessionMiddleware, operatorMiddleware)
		activityHttp.RegisterRoutes(v1, activityHandler, sessionMiddleware, operatorMiddleware)
	}

	return r
}

func allowedOrigins(cfg Config) []string {
	if cfg.IsProduction {
		return cfg.ProdOrigins
	}
	return []string{
		"http://localhost:3000",
		"http://localhost:8081", // Swagger
	}
}
