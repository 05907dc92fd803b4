package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tutorbook-app/backend/internal/model"
	"github.com/tutorbook-app/backend/internal/service"
	"go.uber.org/zap"
)

type WaitlistHandler struct {
	waitlist *service.WaitlistService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewWaitlistHandler(waitlist *service.WaitlistService, validate *validator.Validate, logger *zap.Logger) *WaitlistHandler {
	return &WaitlistHandler{waitlist: waitlist, validate: validate, logger: logger}
}

type createWaitlistRequest struct {
	Name    string  `json:"name" validate:"required,max=128"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=32"`
	Message *string `json:"message" validate:"omitempty,max=2048"`
}

// Create records an unauthenticated contact request.
func (h *WaitlistHandler) Create(c *fiber.Ctx) error {
	var req createWaitlistRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "malformed JSON body")
	}
	if err := h.validate.Struct(req); err != nil {
		return ValidationError(c, err)
	}

	entry, err := h.waitlist.Create(c.UserContext(), &model.WaitlistEntry{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		return ServiceError(c, h.logger, err)
	}

	return SuccessWithCode(c, fiber.StatusCreated, "request received", entry)
}

// List returns the contact-request inbox.
func (h *WaitlistHandler) List(c *fiber.Ctx) error {
	entries, err := h.waitlist.GetAll(c.UserContext())
	if err != nil {
		return ServiceError(c, h.logger, err)
	}
	return Success(c, "waitlist", entries)
}

// Delete removes a contact request.
func (h *WaitlistHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid waitlist entry id")
	}

	if err := h.waitlist.Delete(c.UserContext(), id); err != nil {
		return ServiceError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
