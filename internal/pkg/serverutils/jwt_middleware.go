package serverutils

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JwtMiddleware authenticates the request with an HMAC-signed bearer token
// and stores the caller's id in ctx.Locals("user_id"). Session ownership
// checks downstream rely on that id being a non-empty string.
func JwtMiddleware(ctx *fiber.Ctx) error {
	tokenStr, found := strings.CutPrefix(ctx.Get("Authorization"), "Bearer ")
	if !found || tokenStr == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "missing bearer token"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token claims"})
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "token has no user id"})
	}

	ctx.Locals("user_id", userID)
	return ctx.Next()
}
