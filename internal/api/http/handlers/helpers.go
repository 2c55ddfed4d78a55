package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-service/internal/auth"
	"github.com/spec-kit/directory-service/internal/domain"
	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewIllegalArgument("invalid-payload", "Invalid request body").WithCause(err)
	}
	return nil
}

func pathID(c *fiber.Ctx) (domain.ID, error) {
	return domain.ParseID(c.Params("id"))
}

func principal(c *fiber.Ctx) (*auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("unauthorized", "authentication required")
	}
	return p, nil
}

// requireSelf rejects callers acting on an account other than their own.
func requireSelf(c *fiber.Ctx, id domain.ID) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if p.UserID != id {
		return apperrors.NewUnauthorized("not-owner", "cannot modify another user's account").
			WithArgs(map[string]string{"id": id.String()})
	}
	return nil
}

func data(c *fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(fiber.Map{"data": payload})
}
