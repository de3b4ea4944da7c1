package serverutils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userIdKey = "user_id"

type TokenParser interface {
	ParseToken(tokenStr string) (uuid.UUID, error)
}

// JwtMiddleware rejects requests without a valid bearer token.
func JwtMiddleware(parser TokenParser) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr, ok := bearerToken(ctx)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}

		userId, err := parser.ParseToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}

		ctx.Locals(userIdKey, userId)
		return ctx.Next()
	}
}

// OptionalJwtMiddleware records the user when a valid token is sent and lets
// anonymous requests through. An invalid token is still rejected.
func OptionalJwtMiddleware(parser TokenParser) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr, ok := bearerToken(ctx)
		if !ok {
			return ctx.Next()
		}

		userId, err := parser.ParseToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}

		ctx.Locals(userIdKey, userId)
		return ctx.Next()
	}
}

// UserID returns the authenticated user set by the JWT middlewares.
func UserID(ctx *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := ctx.Locals(userIdKey).(uuid.UUID)
	return id, ok
}

func bearerToken(ctx *fiber.Ctx) (string, bool) {
	authHeader := ctx.Get(fiber.HeaderAuthorization)
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(authHeader[7:])
	return token, token != ""
}
