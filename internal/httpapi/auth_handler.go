package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tutorbook-app/backend/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	users    *service.UserService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewAuthHandler(users *service.UserService, validate *validator.Validate, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, validate: validate, logger: logger}
}

type registerRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=64"`
	Password string  `json:"password" validate:"required,min=6,max=128"`
	Name     string  `json:"name" validate:"required,max=128"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=32"`
}

// Register creates a student account and logs it in.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "malformed JSON body")
	}
	if err := h.validate.Struct(req); err != nil {
		return ValidationError(c, err)
	}

	user, token, err := h.users.Register(c.UserContext(), service.NewUserRequest{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		return ServiceError(c, h.logger, err)
	}

	return SuccessWithCode(c, fiber.StatusCreated, "registered", fiber.Map{
		"user":  user,
		"token": token,
	})
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login checks credentials and returns a session token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "malformed JSON body")
	}
	if err := h.validate.Struct(req); err != nil {
		return ValidationError(c, err)
	}

	user, token, err := h.users.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return ServiceError(c, h.logger, err)
	}

	return Success(c, "logged in", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Me returns the caller's profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.UserContext(), callerID(c))
	if err != nil {
		return ServiceError(c, h.logger, err)
	}
	return Success(c, "profile", user)
}
