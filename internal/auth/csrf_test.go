package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

var testCSRFSecret = []byte("test-secret-key-32-bytes-long!!!")

func csrfRouter(authService *Service) *gin.Engine {
	router := gin.New()
	router.Use(CSRFMiddleware(testCSRFSecret, false, authService))
	handler := func(c *gin.Context) {
		c.String(http.StatusOK, GetCSRFToken(c))
	}
	router.GET("/test", handler)
	router.POST("/test", handler)
	return router
}

func sessionCookie() *http.Cookie {
	return &http.Cookie{Name: SessionCookieName, Value: "some-session"}
}

func TestCSRFMiddleware_SkipsValidBearer(t *testing.T) {
	service, _ := setupService(t)
	user := registerUser(t, service, "reader@example.com")
	token, _, err := service.IssueToken(user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.AddCookie(sessionCookie())
	rr := httptest.NewRecorder()
	csrfRouter(service).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200 for valid bearer request, got %d", rr.Code)
	}
}

func TestCSRFMiddleware_InvalidBearerIsChecked(t *testing.T) {
	service, _ := setupService(t)

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set("Authorization", "Bearer forged")
	req.AddCookie(sessionCookie())
	rr := httptest.NewRecorder()
	csrfRouter(service).ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for invalid bearer with session cookie, got %d", rr.Code)
	}
}

func TestCSRFMiddleware_SkipsRequestsWithoutSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	rr := httptest.NewRecorder()
	csrfRouter(nil).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200 for POST without session cookie, got %d", rr.Code)
	}
}

func TestCSRFMiddleware_AllowsGETAndIssuesToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	csrfRouter(nil).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200 for GET request, got %d", rr.Code)
	}
	if rr.Body.String() == "" {
		t.Error("Expected CSRF token in context")
	}
	if rr.Header().Get(CSRFTokenHeader) == "" {
		t.Error("Expected CSRF token header")
	}
}

func TestCSRFMiddleware_BlocksSessionPOSTWithoutToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.AddCookie(sessionCookie())
	rr := httptest.NewRecorder()
	csrfRouter(nil).ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for session POST without CSRF token, got %d", rr.Code)
	}
	if rr.Body.String() == "" || rr.Header().Get("Content-Type") != "application/json" {
		t.Error("Expected JSON error body")
	}
}

func TestGetCSRFToken_NoToken(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if GetCSRFToken(c) != "" {
		t.Error("Expected empty token")
	}
}

func TestIsAPIWithValidBearer(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{"bearer", "Bearer sometoken", true},
		{"lowercase", "bearer sometoken", true},
		{"basic", "Basic dXNlcjpwYXNz", false},
		{"none", "", false},
		{"empty token", "Bearer ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}
			if got := isAPIWithValidBearer(c, nil); got != tt.want {
				t.Errorf("isAPIWithValidBearer() = %v, want %v", got, tt.want)
			}
		})
	}
}
