package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tutorbook-app/backend/internal/apperr"
	"github.com/tutorbook-app/backend/internal/model"
	"github.com/tutorbook-app/backend/internal/notify"
	"github.com/tutorbook-app/backend/internal/schedule"
	"go.uber.org/zap"
)

type SlotService struct {
	slotRepo     SlotStore
	userRepo     UserStore
	templateRepo TemplateStore
	notifier     notify.Notifier
	logger       *zap.Logger
	now          func() time.Time
}

func NewSlotService(slotRepo SlotStore, userRepo UserStore, templateRepo TemplateStore, notifier notify.Notifier, logger *zap.Logger) *SlotService {
	return &SlotService{
		slotRepo:     slotRepo,
		userRepo:     userRepo,
		templateRepo: templateRepo,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

// NewSlotRequest describes an explicit per-slot creation by the admin.
type NewSlotRequest struct {
	StartTime       time.Time
	DurationMinutes int
	Price           int
	Topic           string
	LocationType    model.LocationType
	TravelMinutes   int
	StudentID       *int64
}

// SlotUpdate is a typed partial update; nil fields stay untouched.
type SlotUpdate struct {
	StartTime       *time.Time
	DurationMinutes *int
	Topic           *string
	LocationType    *model.LocationType
	TravelMinutes   *int
	Price           *int
	IsBooked        *bool
	StudentID       *int64
	IsPaid          *bool
}

// GetByRange returns all slots starting inside [from, to).
func (s *SlotService) GetByRange(ctx context.Context, from, to time.Time) ([]*model.Slot, error) {
	return s.slotRepo.GetByRange(ctx, from, to)
}

// GetByID returns a slot or a not-found error.
func (s *SlotService) GetByID(ctx context.Context, id int64) (*model.Slot, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, apperr.NotFound("slot %d", id)
	}
	return slot, nil
}

// collides re-validates a candidate interval against the day's stored slots.
// The client pre-check is advisory only; this is the authoritative one.
func (s *SlotService) collides(ctx context.Context, start time.Time, duration time.Duration, locationType model.LocationType, travelMinutes int, excludeID int64) (bool, error) {
	// Busy windows never span a day boundary by more than the travel
	// buffer, one day of margin on each side covers every case.
	from := schedule.DayStart(start).AddDate(0, 0, -1)
	to := schedule.DayStart(start).AddDate(0, 0, 2)

	existing, err := s.slotRepo.GetByRange(ctx, from, to)
	if err != nil {
		return false, err
	}

	return schedule.SlotCollides(start, duration, locationType, travelMinutes, existing, excludeID), nil
}

// Create adds a concrete slot after the authoritative collision check.
// A fixed student on the request pre-books the slot.
func (s *SlotService) Create(ctx context.Context, req NewSlotRequest) (*model.Slot, error) {
	if req.DurationMinutes <= 0 {
		return nil, apperr.Validation("duration must be positive")
	}
	if req.LocationType != model.LocationOnsite && req.LocationType != model.LocationCommute {
		return nil, apperr.Validation("unknown location type %q", req.LocationType)
	}

	duration := time.Duration(req.DurationMinutes) * time.Minute
	collides, err := s.collides(ctx, req.StartTime, duration, req.LocationType, req.TravelMinutes, 0)
	if err != nil {
		return nil, err
	}
	if collides {
		return nil, apperr.Conflict("slot overlaps an existing lesson")
	}

	slot := &model.Slot{
		StartTime:     req.StartTime,
		EndTime:       req.StartTime.Add(duration),
		Topic:         req.Topic,
		LocationType:  req.LocationType,
		TravelMinutes: req.TravelMinutes,
		Price:         req.Price,
	}
	if req.StudentID != nil {
		now := s.now()
		slot.IsBooked = true
		slot.StudentID = req.StudentID
		slot.BookedAt = &now
	}

	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, err
	}

	s.logger.Info("Slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Time("start_time", slot.StartTime),
		zap.Bool("pre_booked", slot.IsBooked),
	)

	return slot, nil
}

// Update applies a partial update. Time or location changes re-run the
// collision check with the slot excluding itself; booking transitions go
// through the same guarded paths as Book/Cancel.
func (s *SlotService) Update(ctx context.Context, id int64, upd SlotUpdate) (*model.Slot, error) {
	slot, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Booking transition first, through the check-and-set path.
	if upd.IsBooked != nil && *upd.IsBooked && !slot.IsBooked {
		if upd.StudentID == nil {
			return nil, apperr.Validation("student_id is required to book a slot")
		}
		topic := slot.Topic
		if upd.Topic != nil {
			topic = *upd.Topic
		}
		if _, err := s.Book(ctx, id, *upd.StudentID, topic); err != nil {
			return nil, err
		}
		slot, err = s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
	}
	if upd.IsBooked != nil && !*upd.IsBooked && slot.IsBooked {
		if err := s.slotRepo.ClearBooking(ctx, id); err != nil {
			return nil, err
		}
		slot, err = s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	changed := *slot
	timingChanged := false

	if upd.StartTime != nil {
		duration := changed.EndTime.Sub(changed.StartTime)
		changed.StartTime = *upd.StartTime
		changed.EndTime = upd.StartTime.Add(duration)
		timingChanged = true
	}
	if upd.DurationMinutes != nil {
		if *upd.DurationMinutes <= 0 {
			return nil, apperr.Validation("duration must be positive")
		}
		changed.EndTime = changed.StartTime.Add(time.Duration(*upd.DurationMinutes) * time.Minute)
		timingChanged = true
	}
	if upd.LocationType != nil {
		if *upd.LocationType != model.LocationOnsite && *upd.LocationType != model.LocationCommute {
			return nil, apperr.Validation("unknown location type %q", *upd.LocationType)
		}
		changed.LocationType = *upd.LocationType
		timingChanged = true
	}
	if upd.TravelMinutes != nil {
		changed.TravelMinutes = *upd.TravelMinutes
		timingChanged = true
	}
	if upd.Topic != nil {
		changed.Topic = *upd.Topic
	}
	if upd.Price != nil {
		changed.Price = *upd.Price
	}
	if upd.IsPaid != nil {
		changed.IsPaid = *upd.IsPaid
	}

	if timingChanged {
		collides, err := s.collides(ctx, changed.StartTime, changed.EndTime.Sub(changed.StartTime), changed.LocationType, changed.TravelMinutes, changed.ID)
		if err != nil {
			return nil, err
		}
		if collides {
			return nil, apperr.Conflict("slot overlaps an existing lesson")
		}
	}

	if err := s.slotRepo.Update(ctx, &changed); err != nil {
		return nil, err
	}

	return &changed, nil
}

// Book claims a free future slot for a student.
func (s *SlotService) Book(ctx context.Context, slotID, studentID int64, topic string) (*model.Slot, error) {
	slot, err := s.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}

	if slot.StartTime.Before(s.now()) {
		return nil, apperr.Conflict("slot is in the past")
	}

	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperr.NotFound("student %d", studentID)
	}

	booked, err := s.slotRepo.Book(ctx, slotID, studentID, topic)
	if err != nil {
		return nil, err
	}
	if !booked {
		return nil, apperr.Conflict("slot is already booked")
	}

	slot, err = s.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Slot booked",
		zap.Int64("slot_id", slotID),
		zap.Int64("student_id", studentID),
		zap.Time("start_time", slot.StartTime),
	)

	s.notifier.SlotBooked(ctx, slot, student)

	return slot, nil
}

// Cancel releases a booking. Students may only cancel their own booking
// and only inside the policy windows; the admin cancels unconditionally.
func (s *SlotService) Cancel(ctx context.Context, slotID int64, actor *model.User) (*model.Slot, error) {
	slot, err := s.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}

	if !slot.IsBooked {
		return nil, apperr.Conflict("slot is not booked")
	}

	if !actor.IsAdmin() {
		if slot.StudentID == nil || *slot.StudentID != actor.ID {
			return nil, apperr.Forbidden("slot is booked by another student")
		}
		if !schedule.StudentCanCancel(s.now(), slot.StartTime, slot.BookedAt) {
			return nil, apperr.Conflict("cancellation window has passed, please contact the tutor")
		}
	}

	if err := s.slotRepo.ClearBooking(ctx, slotID); err != nil {
		return nil, err
	}

	s.logger.Info("Booking canceled",
		zap.Int64("slot_id", slotID),
		zap.Int64("actor_id", actor.ID),
		zap.Bool("by_admin", actor.IsAdmin()),
	)

	s.notifier.SlotCanceled(ctx, slot, actor.IsAdmin())

	return s.GetByID(ctx, slotID)
}

// Delete removes the slot row entirely.
func (s *SlotService) Delete(ctx context.Context, slotID int64) error {
	if _, err := s.GetByID(ctx, slotID); err != nil {
		return err
	}
	return s.slotRepo.Delete(ctx, slotID)
}

// SetPaid flips the paid flag on a slot.
func (s *SlotService) SetPaid(ctx context.Context, slotID int64, paid bool) (*model.Slot, error) {
	if _, err := s.GetByID(ctx, slotID); err != nil {
		return nil, err
	}
	if err := s.slotRepo.SetPaid(ctx, slotID, paid); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, slotID)
}

// Debt sums a student's booked, unpaid lessons that already took place.
func (s *SlotService) Debt(ctx context.Context, studentID int64) (int, []*model.Slot, error) {
	slots, err := s.slotRepo.UnpaidPast(ctx, studentID, s.now())
	if err != nil {
		return 0, nil, err
	}

	total := 0
	for _, slot := range slots {
		total += slot.Price
	}
	return total, slots, nil
}

// SettleAll marks every unpaid past lesson of a student as paid.
func (s *SlotService) SettleAll(ctx context.Context, studentID int64) (int64, error) {
	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return 0, err
	}
	if student == nil {
		return 0, apperr.NotFound("student %d", studentID)
	}

	count, err := s.slotRepo.SettleAll(ctx, studentID, s.now())
	if err != nil {
		return 0, err
	}

	s.logger.Info("Settled all debt",
		zap.Int64("student_id", studentID),
		zap.Int64("slots_settled", count),
	)

	return count, nil
}

// GenerateFromTemplate expands the weekly template over [startDate, endDate].
// Best-effort: a failing day is logged and skipped, existing slots at the
// same start are skipped so re-runs are idempotent. Returns the created count.
func (s *SlotService) GenerateFromTemplate(ctx context.Context, startDate, endDate time.Time) (int, error) {
	if endDate.Before(startDate) {
		return 0, apperr.Validation("end date is before start date")
	}

	items, err := s.templateRepo.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	runID := uuid.NewString()
	planned := schedule.PlanFromTemplate(items, startDate, endDate)

	count := 0
	for _, slot := range planned {
		exists, err := s.slotRepo.ExistsAt(ctx, slot.StartTime)
		if err != nil {
			s.logger.Warn("Failed to check slot existence",
				zap.String("run_id", runID),
				zap.Time("start_time", slot.StartTime),
				zap.Error(err),
			)
			continue
		}
		if exists {
			continue
		}

		if slot.IsBooked {
			now := s.now()
			slot.BookedAt = &now
		}

		if err := s.slotRepo.Create(ctx, slot); err != nil {
			s.logger.Warn("Failed to create slot",
				zap.String("run_id", runID),
				zap.Time("start_time", slot.StartTime),
				zap.Error(err),
			)
			continue
		}
		count++
	}

	s.logger.Info("Generated slots from template",
		zap.String("run_id", runID),
		zap.Int("planned", len(planned)),
		zap.Int("created", count),
	)

	return count, nil
}

// GenerateDaily creates back-to-back slots in a uniform daily window.
func (s *SlotService) GenerateDaily(ctx context.Context, startDate, endDate time.Time, dailyStart, dailyEnd string, durationMinutes int) (int, error) {
	if endDate.Before(startDate) {
		return 0, apperr.Validation("end date is before start date")
	}
	if durationMinutes <= 0 {
		return 0, apperr.Validation("duration must be positive")
	}
	if !schedule.ValidHHMM(dailyStart) || !schedule.ValidHHMM(dailyEnd) {
		return 0, apperr.Validation("times must be HH:mm")
	}

	runID := uuid.NewString()
	planned := schedule.PlanDaily(startDate, endDate, dailyStart, dailyEnd, durationMinutes)

	count := 0
	for _, slot := range planned {
		exists, err := s.slotRepo.ExistsAt(ctx, slot.StartTime)
		if err != nil {
			s.logger.Warn("Failed to check slot existence",
				zap.String("run_id", runID),
				zap.Time("start_time", slot.StartTime),
				zap.Error(err),
			)
			continue
		}
		if exists {
			continue
		}

		if err := s.slotRepo.Create(ctx, slot); err != nil {
			s.logger.Warn("Failed to create slot",
				zap.String("run_id", runID),
				zap.Time("start_time", slot.StartTime),
				zap.Error(err),
			)
			continue
		}
		count++
	}

	s.logger.Info("Generated daily slots",
		zap.String("run_id", runID),
		zap.Int("planned", len(planned)),
		zap.Int("created", count),
	)

	return count, nil
}
