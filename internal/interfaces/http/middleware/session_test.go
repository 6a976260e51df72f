package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JamalC77/penned-works/pkg/utils"
)

func newSessionRouter(cfg SessionConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Session(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c), "username": Username(c)})
	})
	r.GET("/check", ResolveSession(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": Username(c)})
	})
	return r
}

func sessionCookie(t *testing.T, cfg SessionConfig, ttl time.Duration) *http.Cookie {
	t.Helper()
	token, err := utils.NewJWTManager(cfg.Secret, cfg.Issuer).GenerateSessionToken("user-1", "jane", ttl)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return &http.Cookie{Name: cfg.CookieName, Value: token}
}

func TestSession_ValidCookie(t *testing.T) {
	cfg := SessionConfig{Secret: "test-secret", Issuer: "penned-works", CookieName: "pennedworks_session"}
	r := newSessionRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(sessionCookie(t, cfg, time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestSession_MissingCookie(t *testing.T) {
	cfg := SessionConfig{Secret: "test-secret", Issuer: "penned-works", CookieName: "pennedworks_session"}
	r := newSessionRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestSession_ExpiredCookie(t *testing.T) {
	cfg := SessionConfig{Secret: "test-secret", Issuer: "penned-works", CookieName: "pennedworks_session"}
	r := newSessionRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(sessionCookie(t, cfg, -time.Minute))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestSession_TamperedCookie(t *testing.T) {
	cfg := SessionConfig{Secret: "test-secret", Issuer: "penned-works", CookieName: "pennedworks_session"}
	other := SessionConfig{Secret: "other-secret", Issuer: "penned-works", CookieName: "pennedworks_session"}
	r := newSessionRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(sessionCookie(t, other, time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

// ResolveSession 从不中断请求，无会话时身份为空。
func TestResolveSession_NeverAborts(t *testing.T) {
	cfg := SessionConfig{Secret: "test-secret", Issuer: "penned-works", CookieName: "pennedworks_session"}
	r := newSessionRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Body.String(); got != `{"username":""}` {
		t.Errorf("body = %s, want empty username", got)
	}
}
