package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"careerpath/internal/domain"
	"careerpath/internal/service"
)

func protectedRouter(jwtSvc *service.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(nil, jwtSvc), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.JSON(http.StatusOK, user)
	})
	return r
}

func TestJWTAuthMiddleware_SetsCurrentUser(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", "careerpath", 15*time.Minute)
	token, err := jwtSvc.GenerateAccessToken(domain.User{ID: "u1", Email: " User@Example.com ", DisplayName: "Ana "})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protectedRouter(jwtSvc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.ID != "u1" || user.Email != "user@example.com" || user.DisplayName != "Ana" {
		t.Fatalf("unexpected current user %+v", user)
	}
}

func TestJWTAuthMiddleware_RejectsMissingToken(t *testing.T) {
	r := protectedRouter(service.NewJWTService("secret", "careerpath", 15*time.Minute))

	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	claims := service.Claims{
		UserID:    "u1",
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "careerpath",
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(past),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protectedRouter(service.NewJWTService("secret", "careerpath", 0)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "token expired" {
		t.Fatalf("expected token expired error, got %q", body["error"])
	}
}

func TestJWTAuthMiddleware_NotConfigured(t *testing.T) {
	rec := httptest.NewRecorder()
	protectedRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestCurrentUserMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := CurrentUser(c); ok {
		t.Fatalf("expected no user without middleware")
	}
	c.Set(currentUserKey, domain.User{})
	if _, ok := CurrentUser(c); ok {
		t.Fatalf("user without id must not count as authenticated")
	}
}
