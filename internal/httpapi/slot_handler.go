package httpapi

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tutorbook-app/backend/internal/model"
	"github.com/tutorbook-app/backend/internal/render"
	"github.com/tutorbook-app/backend/internal/service"
	"go.uber.org/zap"
)

type SlotHandler struct {
	slots    *service.SlotService
	users    *service.UserService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewSlotHandler(slots *service.SlotService, users *service.UserService, validate *validator.Validate, logger *zap.Logger) *SlotHandler {
	return &SlotHandler{slots: slots, users: users, validate: validate, logger: logger}
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// parseTimestamp accepts RFC3339 or a bare date.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// List returns slots in the requested range, defaulting to the current week.
func (h *SlotHandler) List(c *fiber.Ctx) error {
	from := time.Now().AddDate(0, 0, -int(time.Now().Weekday()))
	to := from.AddDate(0, 0, 14)

	if s := c.Query("start"); s != "" {
		parsed, err := parseTimestamp(s)
		if err != nil {
			return Error(c, fiber.StatusBadRequest, "start must be an ISO-8601 timestamp")
		}
		from = parsed
	}
	if s := c.Query("end"); s != "" {
		parsed, err := parseTimestamp(s)
		if err != nil {
			return Error(c, fiber.StatusBadRequest, "end must be an ISO-8601 timestamp")
		}
		to = parsed
	}

	slots, err := h.slots.GetByRange(c.UserContext(), from, to)
	if err != nil {
		return ServiceError(c, h.logger, err)
	}

	return Success(c, "slots", slots)
}

type createSlotRequest struct {
	StartTime       time.Time `json:"start_time" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,gt=0,lte=480"`
	Price           int       `json:"price" validate:"gte=0"`
	Topic           string    `json:"topic" validate:"max=256"`
	LocationType    string    `json:"location_type" validate:"required,oneof=onsite commute"`
	TravelMinutes   int       `json:"travel_minutes" validate:"gte=0,lte=240"`
	StudentID       *int64    `json:"student_id"`
}

// Create adds a slot (admin only).
func (h *SlotHandler) Create(c *fiber.Ctx) error {
	var req createSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "malformed JSON body")
	}
	if err := h.validate.Struct(req); err != nil {
		return ValidationError(c, err)
	}

	slot, err := h.slots.Create(c.UserContext(), service.NewSlotRequest{
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Topic:           req.Topic,
		LocationType:    model.LocationType(req.LocationType),
		TravelMinutes:   req.TravelMinutes,
		StudentID:       req.StudentID,
	})
	if err != nil {
		return ServiceError(c, h.logger, err)
	}

	return SuccessWithCode(c, fiber.StatusCreated, "slot created", slot)
}

type updateSlotRequest struct {
	StartTime       *time.Time `json:"start_time"`
	DurationMinutes *int       `json:"duration_minutes" validate:"omitempty,gt=0,lte=480"`
	Topic           *string    `json:"topic" validate:"omitempty,max=256"`
	LocationType    *string    `json:"location_type" validate:"omitempty,oneof=onsite commute"`
	TravelMinutes   *int       `json:"travel_minutes" validate:"omitempty,gte=0,lte=240"`
	Price           *int       `json:"price" validate:"omitempty,gte=0"`
	IsBooked        *bool      `json:"is_booked"`
	StudentID       *int64     `json:"student_id"`
	IsPaid          *bool      `json:"is_paid"`
}

// Update applies a partial update. Students may only book a free slot for
// themselves; everything else is the admin's.
func (h *SlotHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid slot id")
	}

	var req updateSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "malformed JSON body")
	}
	if err := h.validate.Struct(req); err != nil {
		return ValidationError(c, err)
	}

	if !callerIsAdmin(c) {
		if req.IsBooked == nil || !*req.IsBooked ||
			req.StartTime != nil || req.DurationMinutes != nil || req.LocationType != nil ||
			req.TravelMinutes != nil || req.Price != nil || req.IsPaid != nil || req.StudentID != nil {
			return Error(c, fiber.StatusForbidden, "students may only book a slot")
		}

		topic := ""
		if req.Topic != nil {
			topic = *req.Topic
		}
		slot, err := h.slots.Book(c.UserContext(), id, callerID(c), topic)
		if err != nil {
			return ServiceError(c, h.logger, err)
		}
		return Success(c, "slot booked", slot)
	}

	upd := service.SlotUpdate{
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Topic:           req.Topic,
		TravelMinutes:   req.TravelMinutes,
		Price:           req.Price,
		IsBooked:        req.IsBooked,
		StudentID:       req.StudentID,
		IsPaid:          req.IsPaid,
	}
	if req.LocationType != nil {
		lt := model.LocationType(*req.LocationType)
		upd.LocationType = &lt
	}

	slot, err := h.slots.Update(c.UserContext(), id, upd)
	if err != nil {
		return ServiceError(c, h.logger, err)
	}

	return Success(c, "slot updated", slot)
}

// Delete removes a slot entirely (admin only).
func (h *SlotHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid slot id")
	}

	if err := h.slots.Delete(c.UserContext(), id); err != nil {
		return ServiceError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Cancel releases a booking, policy-checked for students.
func (h *SlotHandler) Cancel(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid slot id")
	}

	actor, err := h.users.GetByID(c.UserContext(), callerID(c))
	if err != nil {
		return ServiceError(c, h.logger, err)
	}

	slot, err := h.slots.Cancel(c.UserContext(), id, actor)
	if err != nil {
		return ServiceError(c, h.logger, err)
	}

	return Success(c, "booking canceled", slot)
}

type generateFromTemplateRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// GenerateFromTemplate expands the weekly template over a date range.
func (h *SlotHandler) GenerateFromTemplate(c *fiber.Ctx) error {
	var req generateFromTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "malformed JSON body")
	}
	if err := h.validate.Struct(req); err != nil {
		return ValidationError(c, err)
	}

	startDate, _ := time.ParseInLocation("2006-01-02", req.StartDate, time.Local)
	endDate, _ := time.ParseInLocation("2006-01-02", req.EndDate, time.Local)

	count, err := h.slots.GenerateFromTemplate(c.UserContext(), startDate, endDate)
	if err != nil {
		return ServiceError(c, h.logger, err)
	}

	return Success(c, "slots generated", fiber.Map{"count": count})
}

type generateDailyRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	Duration  int    `json:"duration" validate:"required,gt=0,lte=480"`
}

// Generate carves a uniform daily window into slots.
func (h *SlotHandler) Generate(c *fiber.Ctx) error {
	var req generateDailyRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "malformed JSON body")
	}
	if err := h.validate.Struct(req); err != nil {
		return ValidationError(c, err)
	}

	startDate, _ := time.ParseInLocation("2006-01-02", req.StartDate, time.Local)
	endDate, _ := time.ParseInLocation("2006-01-02", req.EndDate, time.Local)

	count, err := h.slots.GenerateDaily(c.UserContext(), startDate, endDate, req.StartTime, req.EndTime, req.Duration)
	if err != nil {
		return ServiceError(c, h.logger, err)
	}

	return Success(c, "slots generated", fiber.Map{"count": count})
}

// WeekImage renders the week around ?date= as a PNG.
func (h *SlotHandler) WeekImage(c *fiber.Ctx) error {
	date := time.Now()
	if s := c.Query("date"); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return Error(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		date = parsed
	}

	weekStart := date.AddDate(0, 0, -7)
	weekEnd := date.AddDate(0, 0, 8)
	slots, err := h.slots.GetByRange(c.UserContext(), weekStart, weekEnd)
	if err != nil {
		return ServiceError(c, h.logger, err)
	}

	users, err := h.users.GetAll(c.UserContext())
	if err != nil {
		return ServiceError(c, h.logger, err)
	}
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	png, err := render.WeekImage(date, slots, names)
	if err != nil {
		return ServiceError(c, h.logger, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
