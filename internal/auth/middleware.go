package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/repository"
	"github.com/spec-kit/user-service/pkg/util"
)

const principalKey = "auth_principal"

// AuthMiddleware validates bearer tokens and loads the principal. The
// subject's active status is re-checked on every request, so tokens issued
// to a later-deactivated account stop working before they expire.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return util.NewInvalidToken("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return util.NewInvalidToken("invalid authorization header")
	}

	user, err := m.ValidateToken(c.Context(), parts[1])
	if err != nil {
		return err
	}

	c.Locals(principalKey, user)
	return c.Next()
}

// ValidateToken verifies the token and resolves its subject to an account.
// The subject must still exist and be active.
func (m *AuthMiddleware) ValidateToken(ctx context.Context, tokenStr string) (*domain.User, error) {
	subjectID, err := m.tokens.Validate(tokenStr)
	if err != nil {
		return nil, err
	}
	if uuid.Validate(subjectID) != nil {
		return nil, util.NewInvalidToken("")
	}

	user, err := m.users.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewInvalidToken("")
		}
		return nil, util.NewUnknown(err)
	}
	if !user.IsActive {
		return nil, util.NewInactiveAccount(user.ID)
	}
	return user, nil
}

// PrincipalFromContext retrieves the authenticated account.
func PrincipalFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.User)
	return principal, ok
}
