package serverutils

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func newJwtTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", JwtMiddleware, func(ctx *fiber.Ctx) error {
		return ctx.SendString(ctx.Locals("user_id").(string))
	})
	return app
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestJwtMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newJwtTestApp()

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "valid token passes the user id through",
			authHeader: "Bearer " + signToken(t, "test-secret", jwt.MapClaims{"user_id": "user-1"}),
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "not a bearer scheme",
			authHeader: "Basic abc123",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "wrong secret",
			authHeader: "Bearer " + signToken(t, "other-secret", jwt.MapClaims{"user_id": "user-1"}),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name: "expired token",
			authHeader: "Bearer " + signToken(t, "test-secret", jwt.MapClaims{
				"user_id": "user-1",
				"exp":     time.Now().Add(-time.Hour).Unix(),
			}),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "token without a user id",
			authHeader: "Bearer " + signToken(t, "test-secret", jwt.MapClaims{"sub": "user-1"}),
			wantStatus: fiber.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus == fiber.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				if string(body) != "user-1" {
					t.Errorf("user id = %q, want %q", body, "user-1")
				}
			}
		})
	}
}
