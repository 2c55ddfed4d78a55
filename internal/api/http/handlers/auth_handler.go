package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-service/internal/api/dto"
	"github.com/spec-kit/directory-service/internal/service"
)

// AuthHandler exposes sign-up, sign-in and sign-out.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// SignUp handles POST /auth/signup.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, err := h.auth.SignUp(c.UserContext(), req.ToInput())
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, fiber.Map{
		"user": dto.NewUserResponse(user),
		"auth": dto.NewAuthResponse(token),
	})
}

// SignIn handles POST /auth/signin.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, err := h.auth.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, fiber.Map{
		"user": dto.NewUserResponse(user),
		"auth": dto.NewAuthResponse(token),
	})
}

// SignOut handles POST /auth/signout.
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.auth.SignOut(c.UserContext(), p.Claims); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
