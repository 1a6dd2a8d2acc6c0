package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/radreads/internal/apperrors"
	"github.com/mrlokans/radreads/internal/auth"
)

// LoginRequest accepts the OAuth2 password-form field names as well as JSON.
// Username carries the account email.
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AuthController handles registration, login and the current-user lookup.
type AuthController struct {
	accounts       AccountService
	sessionManager *auth.SessionManager
	rateLimiter    *auth.RateLimiter
}

// NewAuthController creates the controller. sessionManager and rateLimiter
// may be nil.
func NewAuthController(accounts AccountService, sessionManager *auth.SessionManager, rateLimiter *auth.RateLimiter) *AuthController {
	return &AuthController{
		accounts:       accounts,
		sessionManager: sessionManager,
		rateLimiter:    rateLimiter,
	}
}

// RegisterPublicRoutes mounts the endpoints that do not require a login.
func (ac *AuthController) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.POST("/register", ac.Register)
	api.POST("/login", ac.Login)
	api.POST("/logout", ac.Logout)
	api.GET("/csrf", ac.CSRFToken)
}

func (ac *AuthController) Register(c *gin.Context) {
	var in auth.RegisterInput
	if err := c.ShouldBind(&in); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ac.accounts.Register(c.Request.Context(), in)
	if err != nil {
		respondAppError(c, err, "register")
		return
	}
	respondCreated(c, user)
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	clientIP := c.ClientIP()

	// Check rate limiting before attempting authentication
	if ac.rateLimiter != nil {
		allowed, retryAfter := ac.rateLimiter.Allow(clientIP, req.Username)
		if !allowed {
			c.Header("Retry-After", retryAfter.String())
			respondError(c, http.StatusTooManyRequests, "too many login attempts, try again later")
			return
		}
	}

	user, err := ac.accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if ac.rateLimiter != nil && errors.Is(err, apperrors.ErrUnauthorized) {
			ac.rateLimiter.RecordFailure(clientIP, req.Username)
		}
		respondAppError(c, err, "login")
		return
	}

	// Record successful login (clears rate limit tracking)
	if ac.rateLimiter != nil {
		ac.rateLimiter.RecordSuccess(clientIP, req.Username)
	}

	token, expiresAt, err := ac.accounts.IssueToken(user)
	if err != nil {
		respondInternalError(c, err, "issue token")
		return
	}

	if ac.sessionManager != nil {
		if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
			respondInternalError(c, err, "create session")
			return
		}
	}

	log.Printf("User %d logged in", user.ID)
	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	if ac.sessionManager != nil {
		if err := ac.sessionManager.DestroySession(c.Request); err != nil {
			respondInternalError(c, err, "destroy session")
			return
		}
	}
	respondSuccess(c, "logged out")
}

// CSRFToken returns the token cookie-session clients must echo in the
// X-CSRF-Token header on state-changing requests.
func (ac *AuthController) CSRFToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"csrf_token": auth.GetCSRFToken(c)})
}

// Me returns the authenticated user.
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.accounts.GetUserByID(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondAppError(c, err, "current user")
		return
	}
	c.JSON(http.StatusOK, user)
}
