package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-service/internal/domain"
	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	UserID domain.ID
	Claims *Claims
}

// AuthMiddleware validates bearer tokens and stores the principal in request locals.
type AuthMiddleware struct {
	tokens  *TokenManager
	revoked RevocationList
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, revoked RevocationList) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, revoked: revoked}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return unauthorized("missing authorization header", nil)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return unauthorized("invalid authorization header", nil)
	}

	claims, err := m.tokens.Verify(strings.TrimSpace(parts[1]))
	if err != nil {
		return unauthorized("invalid token", err)
	}

	if m.revoked != nil {
		revoked, err := m.revoked.IsRevoked(c.UserContext(), claims.ID)
		if err != nil {
			return apperrors.NewServiceFailure("revocation-check-failed", "unable to check token revocation").WithCause(err)
		}
		if revoked {
			return unauthorized("token revoked", nil)
		}
	}

	userID, err := claims.SubjectID()
	if err != nil {
		return unauthorized("invalid token subject", err)
	}

	c.Locals(principalKey, &Principal{UserID: userID, Claims: claims})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

func unauthorized(message string, cause error) error {
	return apperrors.NewUnauthorized("unauthorized", message).WithCause(cause)
}
