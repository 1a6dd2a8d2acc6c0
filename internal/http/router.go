package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/radreads/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if err := RegisterValidators(); err != nil {
		log.Printf("Warning: custom validators not registered: %v", err)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware(31536000))
	}

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies, cfg.AuthService))
	}

	// Session runs after CSRF so session context isn't overwritten by CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	api := router.Group("/api")

	authController := NewAuthController(cfg.Accounts, cfg.SessionManager, cfg.RateLimiter)
	authController.RegisterPublicRoutes(api)

	authenticate := cfg.Authenticate
	if authenticate == nil {
		log.Printf("Warning: no authentication handler configured, rejecting all protected requests")
		authenticate = denyAll
	}
	protected := api.Group("", authenticate)

	protected.GET("/users/me", authController.Me)

	NewShelfController(cfg.Shelves).RegisterRoutes(protected)

	books := NewBooksController(cfg.Books)
	protected.GET("/books/search", books.SearchBooks)
	protected.GET("/books/:id", books.GetBook)

	NewGoalsController(cfg.Goals).RegisterRoutes(protected)

	// Task management endpoints
	if cfg.TaskQueue != nil {
		NewTasksController(cfg.TaskQueue).RegisterRoutes(protected)
	}

	return router
}

func denyAll(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required", Code: "UNAUTHORIZED"})
}
