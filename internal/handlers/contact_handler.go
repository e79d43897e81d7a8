package handlers

import (
	"fmt"
	"strconv"

	"catalog/internal/apperror"
	"catalog/internal/serializers"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ContactHandler handles HTTP requests for contacts. All routes are open.
type ContactHandler struct {
	service *services.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{
		service: service,
	}
}

// RegisterRoutes registers the contact routes with the Fiber app.
func (h *ContactHandler) RegisterRoutes(router fiber.Router) {
	contactRoutes := router.Group("/contacts")
	contactRoutes.Get("/", h.HandleGetContacts)
	contactRoutes.Post("/", h.HandleCreateContact)
	contactRoutes.Get("/:id", h.HandleGetContact)
	contactRoutes.Put("/:id", h.HandleUpdateContact)
	contactRoutes.Patch("/:id", h.HandlePartialUpdateContact)
	contactRoutes.Delete("/:id", h.HandleDeleteContact)
}

// contactID parses the :id parameter. A malformed id cannot name a record,
// so it is reported as not found.
func contactID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("contact with ID %q: %w", raw, apperror.ErrNotFound)
	}
	return uint(id), nil
}

// HandleGetContacts lists every contact.
func (h *ContactHandler) HandleGetContacts(c *fiber.Ctx) error {
	contacts, err := h.service.GetAllContacts()
	if err != nil {
		return err
	}
	return c.JSON(serializers.SerializeContacts(contacts))
}

// HandleGetContact retrieves a single contact by its ID.
func (h *ContactHandler) HandleGetContact(c *fiber.Ctx) error {
	id, err := contactID(c)
	if err != nil {
		return err
	}
	contact, err := h.service.GetContactByID(id)
	if err != nil {
		return err
	}
	return c.JSON(serializers.SerializeContact(*contact))
}

// HandleCreateContact creates a new contact.
func (h *ContactHandler) HandleCreateContact(c *fiber.Ctx) error {
	payload, err := serializers.DecodePayload(c.Body())
	if err != nil {
		return err
	}
	contact, err := h.service.CreateContact(payload)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(serializers.SerializeContact(*contact))
}

// HandleUpdateContact replaces a contact.
func (h *ContactHandler) HandleUpdateContact(c *fiber.Ctx) error {
	return h.update(c, false)
}

// HandlePartialUpdateContact changes only the supplied fields.
func (h *ContactHandler) HandlePartialUpdateContact(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *ContactHandler) update(c *fiber.Ctx, partial bool) error {
	id, err := contactID(c)
	if err != nil {
		return err
	}
	payload, err := serializers.DecodePayload(c.Body())
	if err != nil {
		return err
	}
	contact, err := h.service.UpdateContact(id, payload, partial)
	if err != nil {
		return err
	}
	return c.JSON(serializers.SerializeContact(*contact))
}

// HandleDeleteContact deletes a contact.
func (h *ContactHandler) HandleDeleteContact(c *fiber.Ctx) error {
	id, err := contactID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteContact(id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
