package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-service/internal/api/dto"
	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/service"
	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

// UsersHandler exposes user account endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.users.Create(c.UserContext(), req.ToInput())
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewUserResponse(user))
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewUserResponse(user))
}

// FindByEmail handles GET /users?email=.
func (h *UsersHandler) FindByEmail(c *fiber.Ctx) error {
	raw := c.Query("email")
	if raw == "" {
		return apperrors.NewIllegalArgument("missing-query", "email query parameter is required").
			WithArgs(map[string]string{"parameter": "email"})
	}
	email, err := domain.NewEmail(raw)
	if err != nil {
		return err
	}
	user, err := h.users.FindByEmail(c.UserContext(), email)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewUserResponse(user))
}

// Update handles PATCH /users/:id. Only the account owner may call it.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := requireSelf(c, id); err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	patch, err := req.ToPatch(id)
	if err != nil {
		return err
	}
	user, err := h.users.Update(c.UserContext(), patch)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewUserResponse(user))
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := requireSelf(c, id); err != nil {
		return err
	}
	user, err := h.users.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewUserResponse(user))
}
