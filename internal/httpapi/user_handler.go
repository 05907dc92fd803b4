package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tutorbook-app/backend/internal/service"
	"go.uber.org/zap"
)

type UserHandler struct {
	users    *service.UserService
	slots    *service.SlotService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewUserHandler(users *service.UserService, slots *service.SlotService, validate *validator.Validate, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, slots: slots, validate: validate, logger: logger}
}

// List returns every account.
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.users.GetAll(c.UserContext())
	if err != nil {
		return ServiceError(c, h.logger, err)
	}
	return Success(c, "users", users)
}

// Get returns one account.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	user, err := h.users.GetByID(c.UserContext(), id)
	if err != nil {
		return ServiceError(c, h.logger, err)
	}
	return Success(c, "user", user)
}

type createUserRequest struct {
	Username     string  `json:"username" validate:"required,min=3,max=64"`
	Password     string  `json:"password" validate:"required,min=6,max=128"`
	Name         string  `json:"name" validate:"required,max=128"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone" validate:"omitempty,max=32"`
	Address      *string `json:"address" validate:"omitempty,max=256"`
	AdminNotes   *string `json:"admin_notes" validate:"omitempty,max=1024"`
	DefaultPrice *int    `json:"default_price" validate:"omitempty,gte=0"`
}

// Create adds a student account on the admin's behalf.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "malformed JSON body")
	}
	if err := h.validate.Struct(req); err != nil {
		return ValidationError(c, err)
	}

	user, err := h.users.CreateStudent(c.UserContext(), service.NewUserRequest{
		Username:     req.Username,
		Password:     req.Password,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		AdminNotes:   req.AdminNotes,
		DefaultPrice: req.DefaultPrice,
	})
	if err != nil {
		return ServiceError(c, h.logger, err)
	}

	return SuccessWithCode(c, fiber.StatusCreated, "user created", user)
}

type updateUserRequest struct {
	Username     *string `json:"username" validate:"omitempty,min=3,max=64"`
	Password     *string `json:"password" validate:"omitempty,min=6,max=128"`
	Name         *string `json:"name" validate:"omitempty,max=128"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone" validate:"omitempty,max=32"`
	Address      *string `json:"address" validate:"omitempty,max=256"`
	AdminNotes   *string `json:"admin_notes" validate:"omitempty,max=1024"`
	DefaultPrice *int    `json:"default_price" validate:"omitempty,gte=0"`
}

// Update applies a partial profile update.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "malformed JSON body")
	}
	if err := h.validate.Struct(req); err != nil {
		return ValidationError(c, err)
	}

	user, err := h.users.Update(c.UserContext(), id, service.UserUpdate{
		Username:     req.Username,
		Password:     req.Password,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		AdminNotes:   req.AdminNotes,
		DefaultPrice: req.DefaultPrice,
	})
	if err != nil {
		return ServiceError(c, h.logger, err)
	}

	return Success(c, "user updated", user)
}

// Delete removes a student together with their slots.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return ServiceError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Debt reports a student's unpaid past lessons and their total.
func (h *UserHandler) Debt(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	if _, err := h.users.GetByID(c.UserContext(), id); err != nil {
		return ServiceError(c, h.logger, err)
	}

	total, slots, err := h.slots.Debt(c.UserContext(), id)
	if err != nil {
		return ServiceError(c, h.logger, err)
	}

	return Success(c, "debt", fiber.Map{
		"total": total,
		"slots": slots,
	})
}

// SettleAll marks every unpaid past lesson of a student as paid.
func (h *UserHandler) SettleAll(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	count, err := h.slots.SettleAll(c.UserContext(), id)
	if err != nil {
		return ServiceError(c, h.logger, err)
	}

	return Success(c, "debt settled", fiber.Map{"count": count})
}
