package middlewares

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func setJWTSecretEnv(t *testing.T, secret string) {
	t.Helper()
	_ = os.Setenv("JWT_SECRET", secret)
	t.Cleanup(func() { _ = os.Unsetenv("JWT_SECRET") })
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"userID":      UserID(c),
			"telegramID":  c.GetString("telegramID"),
			"isAdmin":     c.GetBool("isAdmin"),
			"reachedNext": true,
		})
	})
	r.GET("/admin", AdminOnly(), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	return r
}

func signHS256(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return s
}

func doReq(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingToken_401(t *testing.T) {
	setJWTSecretEnv(t, "test-secret")
	r := newTestRouter()

	w := doReq(r, "/ok", "")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Missing access token") {
		t.Fatalf("expected Missing access token, got %s", w.Body.String())
	}
}

func TestAuthMiddleware_InvalidToken_401(t *testing.T) {
	setJWTSecretEnv(t, "test-secret")
	r := newTestRouter()

	w := doReq(r, "/ok", "not-a-jwt")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Invalid or expired token") {
		t.Fatalf("expected Invalid or expired token, got %s", w.Body.String())
	}
}

func TestAuthMiddleware_WrongSecret_401(t *testing.T) {
	setJWTSecretEnv(t, "test-secret")
	r := newTestRouter()

	token := signHS256(t, "other-secret", jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	w := doReq(r, "/ok", token)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestAuthMiddleware_MissingUserID_401(t *testing.T) {
	setJWTSecretEnv(t, "test-secret")
	r := newTestRouter()

	token := signHS256(t, "test-secret", jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	w := doReq(r, "/ok", token)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "invalid user ID") {
		t.Fatalf("expected invalid user ID, got %s", w.Body.String())
	}
}

func TestAuthMiddleware_ValidToken_SetsIdentity(t *testing.T) {
	setJWTSecretEnv(t, "test-secret")
	r := newTestRouter()

	token := signHS256(t, "test-secret", jwt.MapClaims{
		"user_id":     42,
		"telegram_id": "100500",
		"is_admin":    true,
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	w := doReq(r, "/ok", token)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"userID":42`) {
		t.Fatalf("userID not propagated: %s", body)
	}
	if !strings.Contains(body, `"telegramID":"100500"`) {
		t.Fatalf("telegramID not propagated: %s", body)
	}
	if !strings.Contains(body, `"isAdmin":true`) {
		t.Fatalf("isAdmin not propagated: %s", body)
	}
}

func TestAdminOnly_NonAdmin_403(t *testing.T) {
	setJWTSecretEnv(t, "test-secret")
	r := newTestRouter()

	token := signHS256(t, "test-secret", jwt.MapClaims{
		"user_id": 42,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	w := doReq(r, "/admin", token)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestAdminOnly_Admin_200(t *testing.T) {
	setJWTSecretEnv(t, "test-secret")
	r := newTestRouter()

	token := signHS256(t, "test-secret", jwt.MapClaims{
		"user_id":  42,
		"is_admin": true,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	w := doReq(r, "/admin", token)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
}
