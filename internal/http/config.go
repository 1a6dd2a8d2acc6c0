package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/radreads/internal/auth"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Domain services
	Shelves ShelfStore
	Books   BookReader
	Goals   GoalStore

	// Identity
	Accounts       AccountService
	Authenticate   gin.HandlerFunc // guards every /api route except the public auth ones
	SessionManager *auth.SessionManager
	RateLimiter    *auth.RateLimiter

	// CSRF protection for cookie sessions; disabled when CSRFSecret is empty
	CSRFSecret    []byte
	SecureCookies bool
	AuthService   *auth.Service // lets CSRF skip requests with a valid bearer token

	// Task queue client (optional)
	TaskQueue TaskQueue

	Database Pinger
	Version  string
}
