package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/user-management-console/internal/activity"
	"github.com/nekogravitycat/user-management-console/internal/api"
	"github.com/nekogravitycat/user-management-console/internal/auth"
	"github.com/nekogravitycat/user-management-console/internal/screen"
	"github.com/nekogravitycat/user-management-console/internal/session"
	"github.com/nekogravitycat/user-management-console/internal/user"
)

const SessionCookieName = "umc_session"

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	Logger       *zap.Logger

	UsersAPIBaseURL string
	UsersAPITimeout time.Duration
	// HTTPClient overrides the client built from UsersAPITimeout. Optional.
	HTTPClient *http.Client

	SessionSecret string
	SessionTTL    time.Duration
	// SessionStore defaults to an in-memory store when nil.
	SessionStore session.Store

	// DBPool enables the activity journal when non-nil.
	DBPool *pgxpool.Pool

	OperatorPasswordHash string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Sessions   *session.Manager
	Store      session.Store
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Init Components
	jwtManager := auth.NewJWTManager(cfg.SessionSecret, cfg.SessionTTL)
	operatorGate := auth.NewOperatorGate(cfg.OperatorPasswordHash, auth.NewBcryptPasswordHasher())
	cookie := auth.CookieConfig{
		Name:   SessionCookieName,
		Secure: cfg.IsProduction,
	}

	// Activity Module
	activityService := activity.NewNopService()
	if cfg.DBPool != nil {
		activityRepo := activity.NewPgxRepository(cfg.DBPool)
		activityService = activity.NewService(activityRepo, logger.Named("activity"))
	}

	// User Module
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.UsersAPITimeout}
	}
	userRepo := user.NewHTTPRepository(cfg.UsersAPIBaseURL, client)

	// Screen Module
	screenService := screen.NewService(userRepo, activityService, logger.Named("screen"))

	// Session Module
	store := cfg.SessionStore
	if store == nil {
		store = session.NewMemoryStore(cfg.SessionTTL)
	}
	sessions := session.NewManager(store, screenService)

	// API Router Config
	routerParams := api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		Logger:          logger,
		ScreenService:   screenService,
		Sessions:        sessions,
		ActivityService: activityService,
		JWTManager:      jwtManager,
		Cookie:          cookie,
		OperatorGate:    operatorGate,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Sessions:   sessions,
		Store:      store,
	}
}
