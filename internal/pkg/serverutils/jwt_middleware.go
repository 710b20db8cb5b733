package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ParseUserToken validates a signed token and returns the user id claim.
// Used directly by websocket handshakes, where the token arrives as a query
// parameter instead of a header.
func ParseUserToken(tokenStr string) (string, bool) {
	return parseToken(tokenStr)
}

func parseToken(tokenStr string) (string, bool) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		// Same fallback as the signer so dev setups without the env var
		// still round-trip.
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			secret = "default_secret"
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}

	userID, ok := claims["user_id"].(string)
	return userID, ok
}

func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
	}

	userID, ok := parseToken(authHeader[7:])
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	ctx.Locals("user_id", userID)
	return ctx.Next()
}

// OptionalJwtMiddleware attaches the user id when a valid token is present
// but lets anonymous requests through. Routes that serve public chats and
// unauthenticated document streaming run behind this.
func OptionalJwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) >= 7 && authHeader[:7] == "Bearer " {
		if userID, ok := parseToken(authHeader[7:]); ok {
			ctx.Locals("user_id", userID)
		}
	}
	return ctx.Next()
}
