package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-service/internal/api/dto"
	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/service"
	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

// CustomerServicesHandler exposes directory listing endpoints.
type CustomerServicesHandler struct {
	services *service.CustomerServiceService
}

func NewCustomerServicesHandler(services *service.CustomerServiceService) *CustomerServicesHandler {
	return &CustomerServicesHandler{services: services}
}

// Create handles POST /customer-services. The caller becomes the owner.
func (h *CustomerServicesHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.CreateCustomerServiceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	listing, err := h.services.Create(c.UserContext(), p.UserID, req.ToInput())
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewCustomerServiceResponse(listing))
}

// Get handles GET /customer-services/:id.
func (h *CustomerServicesHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	listing, err := h.services.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewCustomerServiceResponse(listing))
}

// ListByOwner handles GET /customer-services?owner_id=.
func (h *CustomerServicesHandler) ListByOwner(c *fiber.Ctx) error {
	raw := c.Query("owner_id")
	if raw == "" {
		return apperrors.NewIllegalArgument("missing-query", "owner_id query parameter is required").
			WithArgs(map[string]string{"parameter": "owner_id"})
	}
	owner, err := domain.ParseID(raw)
	if err != nil {
		return err
	}
	listings, err := h.services.ListByOwner(c.UserContext(), owner)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewCustomerServiceList(listings))
}

// Update handles PATCH /customer-services/:id.
func (h *CustomerServicesHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateCustomerServiceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	patch, err := req.ToPatch(id)
	if err != nil {
		return err
	}
	listing, err := h.services.Update(c.UserContext(), p.UserID, patch)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewCustomerServiceResponse(listing))
}

// Delete handles DELETE /customer-services/:id.
func (h *CustomerServicesHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	listing, err := h.services.Delete(c.UserContext(), p.UserID, id)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewCustomerServiceResponse(listing))
}
