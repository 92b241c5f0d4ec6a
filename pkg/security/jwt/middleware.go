package jwt

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// NewAuthMiddleware пропускает запрос только с валидным токеном и кладёт
// auth.Principal в c.Locals.
func NewAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	v := NewVerifier(secret, expectedIssuer)
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthorized(c, "missing Authorization header")
		}
		raw := bearerToken(header)
		if raw == "" {
			return unauthorized(c, "empty token")
		}
		p, err := v.Verify(raw)
		if err != nil {
			return unauthorized(c, err.Error())
		}
		c.Locals(principalKey, p)
		return c.Next()
	}
}

// bearerToken accepts "Bearer <token>" and a bare token.
func bearerToken(header string) string {
	scheme, rest, ok := strings.Cut(header, " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(header)
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": msg})
}
