package service

import (
	"context"

	"github.com/tutorbook-app/backend/internal/apperr"
	"github.com/tutorbook-app/backend/internal/model"
	"github.com/tutorbook-app/backend/internal/schedule"
	"go.uber.org/zap"
)

type TemplateService struct {
	templateRepo TemplateStore
	userRepo     UserStore
	logger       *zap.Logger
}

func NewTemplateService(templateRepo TemplateStore, userRepo UserStore, logger *zap.Logger) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// GetAll returns the whole weekly template.
func (s *TemplateService) GetAll(ctx context.Context) ([]*model.WeeklyTemplateItem, error) {
	return s.templateRepo.GetAll(ctx)
}

// validate enforces field rules plus the same-weekday effective-interval
// invariant; excludeID keeps an edited item from colliding with itself.
func (s *TemplateService) validate(ctx context.Context, item *model.WeeklyTemplateItem, excludeID int64) error {
	if item.DayOfWeek < 1 || item.DayOfWeek > 6 {
		return apperr.Validation("day_of_week must be 1-6 (Monday-Saturday)")
	}
	if !schedule.ValidHHMM(item.StartTime) {
		return apperr.Validation("start_time must be HH:mm")
	}
	if item.DurationMinutes <= 0 {
		return apperr.Validation("duration must be positive")
	}
	if item.LocationType != model.LocationOnsite && item.LocationType != model.LocationCommute {
		return apperr.Validation("unknown location type %q", item.LocationType)
	}
	if item.LocationType != model.LocationCommute {
		item.TravelMinutes = 0
	}

	if item.StudentID != nil {
		student, err := s.userRepo.GetByID(ctx, *item.StudentID)
		if err != nil {
			return err
		}
		if student == nil {
			return apperr.NotFound("student %d", *item.StudentID)
		}
	}

	existing, err := s.templateRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	if schedule.TemplateCollides(item, existing, excludeID) {
		return apperr.Conflict("template item overlaps another rule on the same weekday")
	}

	return nil
}

// Create adds a weekly rule.
func (s *TemplateService) Create(ctx context.Context, item *model.WeeklyTemplateItem) (*model.WeeklyTemplateItem, error) {
	if err := s.validate(ctx, item, 0); err != nil {
		return nil, err
	}

	if err := s.templateRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("Template item created",
		zap.Int64("template_id", item.ID),
		zap.Int("day_of_week", item.DayOfWeek),
		zap.String("start_time", item.StartTime),
	)

	return item, nil
}

// TemplateUpdate is a typed partial update; nil fields stay untouched.
type TemplateUpdate struct {
	DayOfWeek       *int
	StartTime       *string
	DurationMinutes *int
	Price           *int
	LocationType    *model.LocationType
	TravelMinutes   *int
	StudentID       *int64
	ClearStudent    bool
}

// Update applies a partial update and re-validates the weekday invariant.
func (s *TemplateService) Update(ctx context.Context, id int64, upd TemplateUpdate) (*model.WeeklyTemplateItem, error) {
	item, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound("template item %d", id)
	}

	if upd.DayOfWeek != nil {
		item.DayOfWeek = *upd.DayOfWeek
	}
	if upd.StartTime != nil {
		item.StartTime = *upd.StartTime
	}
	if upd.DurationMinutes != nil {
		item.DurationMinutes = *upd.DurationMinutes
	}
	if upd.Price != nil {
		item.Price = *upd.Price
	}
	if upd.LocationType != nil {
		item.LocationType = *upd.LocationType
	}
	if upd.TravelMinutes != nil {
		item.TravelMinutes = *upd.TravelMinutes
	}
	if upd.ClearStudent {
		item.StudentID = nil
	} else if upd.StudentID != nil {
		item.StudentID = upd.StudentID
	}

	if err := s.validate(ctx, item, id); err != nil {
		return nil, err
	}

	if err := s.templateRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes a weekly rule; already generated slots are untouched.
func (s *TemplateService) Delete(ctx context.Context, id int64) error {
	item, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperr.NotFound("template item %d", id)
	}
	return s.templateRepo.Delete(ctx, id)
}
