package jwt

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumebuilder/pkg/auth"
)

var ErrNoPrincipal = errors.New("unauthorized")

// Principal возвращает субъект, выставленный NewAuthMiddleware.
func Principal(c *fiber.Ctx) (auth.Principal, error) {
	p, ok := c.Locals(principalKey).(auth.Principal)
	if !ok {
		return auth.Principal{}, ErrNoPrincipal
	}
	return p, nil
}
