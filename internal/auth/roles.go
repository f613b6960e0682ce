package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/pkg/util"
)

// Protection declares the role requirement of a protected operation. An
// empty Required set means any authenticated caller passes.
type Protection struct {
	Operation string
	Required  []domain.Role
}

// Protect returns the middleware form of the gate. It must run after the
// token middleware attached a principal.
func Protect(p Protection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		if err := Authorize(principal, p); err != nil {
			return err
		}
		return c.Next()
	}
}

// Authorize is the single gate checking a caller against a declared
// requirement. Any intersection between the caller's roles and the required
// set grants access.
func Authorize(caller *domain.User, p Protection) error {
	if caller == nil {
		return util.NewMissingPrincipal()
	}
	if len(p.Required) == 0 {
		return nil
	}
	if caller.HasAnyRole(p.Required...) {
		return nil
	}
	return util.NewForbidden(fmt.Sprintf("User %s need a valid role: %v", caller.Name, domain.RolesToStrings(p.Required)))
}
