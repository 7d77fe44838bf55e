package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Ritwik411/DevConnector/internal/utils"
	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	_ = os.Setenv("JWT_SECRET", "devconnector_test_jwt_secret_key_1234567890")
	os.Exit(m.Run())
}

func protectedRouter(t *testing.T) (*gin.Engine, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seenUserID int
	router := gin.New()
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		value, _ := c.Get("user_id")
		seenUserID, _ = value.(int)
		c.Status(http.StatusOK)
	})
	return router, &seenUserID
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	router, _ := protectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router, _ := protectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("x-auth-token", "not-a-valid-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthMiddlewareAttachesUserID(t *testing.T) {
	router, seenUserID := protectedRouter(t)

	token, err := utils.GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("x-auth-token", token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if *seenUserID != 42 {
		t.Fatalf("expected user 42 in context, got %d", *seenUserID)
	}
}
