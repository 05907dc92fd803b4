package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tutorbook-app/backend/internal/model"
	"github.com/tutorbook-app/backend/internal/service"
	"go.uber.org/zap"
)

type TemplateHandler struct {
	templates *service.TemplateService
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewTemplateHandler(templates *service.TemplateService, validate *validator.Validate, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{templates: templates, validate: validate, logger: logger}
}

// List returns the whole weekly template.
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	items, err := h.templates.GetAll(c.UserContext())
	if err != nil {
		return ServiceError(c, h.logger, err)
	}
	return Success(c, "weekly schedule", items)
}

type createTemplateRequest struct {
	DayOfWeek       int    `json:"day_of_week" validate:"required,min=1,max=6"`
	StartTime       string `json:"start_time" validate:"required,datetime=15:04"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0,lte=480"`
	Price           int    `json:"price" validate:"gte=0"`
	LocationType    string `json:"location_type" validate:"required,oneof=onsite commute"`
	TravelMinutes   int    `json:"travel_minutes" validate:"gte=0,lte=240"`
	StudentID       *int64 `json:"student_id"`
}

// Create adds a weekly rule.
func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	var req createTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "malformed JSON body")
	}
	if err := h.validate.Struct(req); err != nil {
		return ValidationError(c, err)
	}

	item, err := h.templates.Create(c.UserContext(), &model.WeeklyTemplateItem{
		DayOfWeek:       req.DayOfWeek,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		LocationType:    model.LocationType(req.LocationType),
		TravelMinutes:   req.TravelMinutes,
		StudentID:       req.StudentID,
	})
	if err != nil {
		return ServiceError(c, h.logger, err)
	}

	return SuccessWithCode(c, fiber.StatusCreated, "template item created", item)
}

type updateTemplateRequest struct {
	DayOfWeek       *int    `json:"day_of_week" validate:"omitempty,min=1,max=6"`
	StartTime       *string `json:"start_time" validate:"omitempty,datetime=15:04"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,gt=0,lte=480"`
	Price           *int    `json:"price" validate:"omitempty,gte=0"`
	LocationType    *string `json:"location_type" validate:"omitempty,oneof=onsite commute"`
	TravelMinutes   *int    `json:"travel_minutes" validate:"omitempty,gte=0,lte=240"`
	StudentID       *int64  `json:"student_id"`
	ClearStudent    bool    `json:"clear_student"`
}

// Update applies a partial update to a weekly rule.
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid template item id")
	}

	var req updateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "malformed JSON body")
	}
	if err := h.validate.Struct(req); err != nil {
		return ValidationError(c, err)
	}

	upd := service.TemplateUpdate{
		DayOfWeek:       req.DayOfWeek,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		TravelMinutes:   req.TravelMinutes,
		StudentID:       req.StudentID,
		ClearStudent:    req.ClearStudent,
	}
	if req.LocationType != nil {
		lt := model.LocationType(*req.LocationType)
		upd.LocationType = &lt
	}

	item, err := h.templates.Update(c.UserContext(), id, upd)
	if err != nil {
		return ServiceError(c, h.logger, err)
	}

	return Success(c, "template item updated", item)
}

// Delete removes a weekly rule.
func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid template item id")
	}

	if err := h.templates.Delete(c.UserContext(), id); err != nil {
		return ServiceError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
