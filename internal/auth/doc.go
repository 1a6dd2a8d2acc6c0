// Package auth provides registration, login and request authentication.
//
// Clients authenticate with a short-lived HS256 access token returned by
// login and sent as "Authorization: Bearer <token>". When sessions are
// enabled, login also establishes a cookie session stored in SQLite, and
// state-changing cookie requests must echo the CSRF token in X-CSRF-Token.
//
// # Configuration
//
//	AUTH_JWT_SECRET=<random>           # Auto-generated per process if empty
//	AUTH_TOKEN_EXPIRY=30m              # Access token lifetime
//	AUTH_SESSIONS_ENABLED=true         # Cookie sessions alongside bearer tokens
//	AUTH_SESSION_SECRET=<random>       # CSRF key, auto-generated if empty
//	AUTH_SESSION_LIFETIME=24h          # Session duration
//	AUTH_BCRYPT_COST=12                # bcrypt cost factor
//	AUTH_SECURE_COOKIES=true           # HTTPS-only cookies
//
// # Usage
//
//	tokens := auth.NewTokenManager(secret, cfg.Auth.TokenExpiry)
//	authService := auth.NewService(db, tokens, cfg.Auth)
//	authMiddleware := auth.NewMiddleware(authService, sessionManager)
//	protected.Use(authMiddleware.Handler())
//
// Extract user in handlers:
//
//	userID := auth.GetUserID(c)
package auth
