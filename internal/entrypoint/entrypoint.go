package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/radreads/internal/auth"
	"github.com/mrlokans/radreads/internal/config"
	"github.com/mrlokans/radreads/internal/database"
	"github.com/mrlokans/radreads/internal/database/catalog"
	"github.com/mrlokans/radreads/internal/database/goals"
	http_controllers "github.com/mrlokans/radreads/internal/http"
	"github.com/mrlokans/radreads/internal/scheduler"
	"github.com/mrlokans/radreads/internal/services"
	"github.com/mrlokans/radreads/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// secretBytes decodes a configured secret (hex or raw) or generates one for
// this process.
func secretBytes(configured, envName string) ([]byte, error) {
	if configured != "" {
		if b, err := hex.DecodeString(configured); err == nil {
			return b, nil
		}
		return []byte(configured), nil
	}

	secret, err := auth.GenerateSessionSecret()
	if err != nil {
		return nil, err
	}
	log.Printf("Generated %s for this process (set it to persist across restarts)", envName)
	return hex.DecodeString(secret)
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Rad Reads v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path, database.ParseLogLevel(cfg.Database.LogLevel))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	shelfService := services.NewShelfService(db.DB)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.ConfigFrom(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer taskClient.Close()

		taskClient.Register(
			tasks.NewProvisionUserShelvesQueue(shelfService),
			tasks.NewProvisionAllShelvesQueue(shelfService),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		taskClient.Start(taskCtx)
	}

	// Backfill default shelves for accounts created before provisioning
	var enqueuer scheduler.TaskEnqueuer
	if taskClient != nil {
		enqueuer = taskClient
	}
	sweeper := scheduler.NewProvisioningScheduler(cfg.Provisioning, enqueuer, shelfService)
	if err := sweeper.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start provisioning scheduler: %v", err)
	}
	if cfg.Provisioning.SweepEnabled {
		sweeper.RunNow()
	}

	// Authentication
	jwtSecret, err := secretBytes(cfg.Auth.JWTSecret, "AUTH_JWT_SECRET")
	if err != nil {
		log.Fatalf("Failed to generate JWT secret: %v", err)
	}
	authService := auth.NewService(db.DB, auth.NewTokenManager(jwtSecret, cfg.Auth.TokenExpiry), cfg.Auth)

	var sessionManager *auth.SessionManager
	var csrfSecret []byte
	if cfg.Auth.SessionsEnabled {
		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatalf("Failed to get SQL DB for sessions: %v", err)
		}

		sessionManager, err = auth.NewSessionManager(sqlDB, cfg.Auth)
		if err != nil {
			log.Fatalf("Failed to initialize session manager: %v", err)
		}

		csrfSecret, err = secretBytes(cfg.Auth.SessionSecret, "AUTH_SESSION_SECRET")
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
	}

	rateLimiter := auth.NewRateLimiter(auth.RateLimitConfig{
		MaxAttempts:     cfg.Auth.MaxLoginAttempts,
		WindowDuration:  cfg.Auth.RateLimitWindow,
		LockoutDuration: cfg.Auth.LockoutDuration,
	})
	defer rateLimiter.Stop()

	routerCfg := http_controllers.RouterConfig{
		Shelves:        shelfService,
		Books:          catalog.NewRepository(db.DB),
		Goals:          goals.NewRepository(db.DB),
		Accounts:       authService,
		Authenticate:   auth.NewMiddleware(authService, sessionManager).Handler(),
		SessionManager: sessionManager,
		RateLimiter:    rateLimiter,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		AuthService:    authService,
		Database:       db,
		Version:        version,
	}
	if taskClient != nil {
		routerCfg.TaskQueue = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		sweeper.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
