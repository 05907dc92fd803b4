package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tutorbook-app/backend/internal/model"
)

// In-memory stores mirroring the repository semantics, so services can be
// exercised without a database.

type fakeSlotStore struct {
	slots  map[int64]*model.Slot
	nextID int64
	now    func() time.Time
}

func newFakeSlotStore() *fakeSlotStore {
	return &fakeSlotStore{
		slots:  make(map[int64]*model.Slot),
		nextID: 1,
		now:    time.Now,
	}
}

func (s *fakeSlotStore) add(slot *model.Slot) *model.Slot {
	cp := *slot
	cp.ID = s.nextID
	s.nextID++
	s.slots[cp.ID] = &cp
	return &cp
}

func (s *fakeSlotStore) Create(_ context.Context, slot *model.Slot) error {
	created := s.add(slot)
	slot.ID = created.ID
	return nil
}

func (s *fakeSlotStore) GetByID(_ context.Context, id int64) (*model.Slot, error) {
	slot, ok := s.slots[id]
	if !ok {
		return nil, nil
	}
	cp := *slot
	return &cp, nil
}

func (s *fakeSlotStore) GetByRange(_ context.Context, from, to time.Time) ([]*model.Slot, error) {
	var out []*model.Slot
	for _, slot := range s.slots {
		if !slot.StartTime.Before(from) && slot.StartTime.Before(to) {
			cp := *slot
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (s *fakeSlotStore) Update(_ context.Context, slot *model.Slot) error {
	if _, ok := s.slots[slot.ID]; !ok {
		return fmt.Errorf("slot not found")
	}
	cp := *slot
	s.slots[slot.ID] = &cp
	return nil
}

func (s *fakeSlotStore) Book(_ context.Context, slotID, studentID int64, topic string) (bool, error) {
	slot, ok := s.slots[slotID]
	if !ok || slot.IsBooked {
		return false, nil
	}
	now := s.now()
	slot.IsBooked = true
	slot.StudentID = &studentID
	slot.Topic = topic
	slot.BookedAt = &now
	return true, nil
}

func (s *fakeSlotStore) ClearBooking(_ context.Context, slotID int64) error {
	slot, ok := s.slots[slotID]
	if !ok {
		return fmt.Errorf("slot not found")
	}
	slot.IsBooked = false
	slot.StudentID = nil
	slot.BookedAt = nil
	slot.Topic = ""
	slot.IsPaid = false
	return nil
}

func (s *fakeSlotStore) SetPaid(_ context.Context, slotID int64, paid bool) error {
	slot, ok := s.slots[slotID]
	if !ok {
		return fmt.Errorf("slot not found")
	}
	slot.IsPaid = paid
	return nil
}

func (s *fakeSlotStore) Delete(_ context.Context, slotID int64) error {
	if _, ok := s.slots[slotID]; !ok {
		return fmt.Errorf("slot not found")
	}
	delete(s.slots, slotID)
	return nil
}

func (s *fakeSlotStore) ExistsAt(_ context.Context, startTime time.Time) (bool, error) {
	for _, slot := range s.slots {
		if slot.StartTime.Equal(startTime) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeSlotStore) UnpaidPast(_ context.Context, studentID int64, now time.Time) ([]*model.Slot, error) {
	var out []*model.Slot
	for _, slot := range s.slots {
		if slot.StudentID != nil && *slot.StudentID == studentID &&
			slot.IsBooked && !slot.IsPaid && slot.StartTime.Before(now) {
			cp := *slot
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (s *fakeSlotStore) SettleAll(_ context.Context, studentID int64, now time.Time) (int64, error) {
	var count int64
	for _, slot := range s.slots {
		if slot.StudentID != nil && *slot.StudentID == studentID &&
			slot.IsBooked && !slot.IsPaid && slot.StartTime.Before(now) {
			slot.IsPaid = true
			count++
		}
	}
	return count, nil
}

type fakeUserStore struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User), nextID: 1}
}

func (s *fakeUserStore) add(user *model.User) *model.User {
	cp := *user
	cp.ID = s.nextID
	s.nextID++
	s.users[cp.ID] = &cp
	return &cp
}

func (s *fakeUserStore) Create(_ context.Context, user *model.User) error {
	created := s.add(user)
	user.ID = created.ID
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) GetAll(_ context.Context) ([]*model.User, error) {
	var out []*model.User
	for _, user := range s.users {
		cp := *user
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeUserStore) Update(_ context.Context, user *model.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return fmt.Errorf("user not found")
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *fakeUserStore) DeleteCascade(_ context.Context, id int64) error {
	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("user not found")
	}
	delete(s.users, id)
	return nil
}

type fakeTemplateStore struct {
	items  map[int64]*model.WeeklyTemplateItem
	nextID int64
}

func newFakeTemplateStore() *fakeTemplateStore {
	return &fakeTemplateStore{items: make(map[int64]*model.WeeklyTemplateItem), nextID: 1}
}

func (s *fakeTemplateStore) Create(_ context.Context, item *model.WeeklyTemplateItem) error {
	cp := *item
	cp.ID = s.nextID
	s.nextID++
	s.items[cp.ID] = &cp
	item.ID = cp.ID
	return nil
}

func (s *fakeTemplateStore) GetByID(_ context.Context, id int64) (*model.WeeklyTemplateItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (s *fakeTemplateStore) GetAll(_ context.Context) ([]*model.WeeklyTemplateItem, error) {
	var out []*model.WeeklyTemplateItem
	for _, item := range s.items {
		cp := *item
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeTemplateStore) Update(_ context.Context, item *model.WeeklyTemplateItem) error {
	if _, ok := s.items[item.ID]; !ok {
		return fmt.Errorf("template item not found")
	}
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

func (s *fakeTemplateStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("template item not found")
	}
	delete(s.items, id)
	return nil
}

type fakeWaitlistStore struct {
	entries map[int64]*model.WaitlistEntry
	nextID  int64
}

func newFakeWaitlistStore() *fakeWaitlistStore {
	return &fakeWaitlistStore{entries: make(map[int64]*model.WaitlistEntry), nextID: 1}
}

func (s *fakeWaitlistStore) Create(_ context.Context, entry *model.WaitlistEntry) error {
	cp := *entry
	cp.ID = s.nextID
	s.nextID++
	s.entries[cp.ID] = &cp
	entry.ID = cp.ID
	return nil
}

func (s *fakeWaitlistStore) GetAll(_ context.Context) ([]*model.WaitlistEntry, error) {
	var out []*model.WaitlistEntry
	for _, entry := range s.entries {
		cp := *entry
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeWaitlistStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.entries[id]; !ok {
		return fmt.Errorf("waitlist entry not found")
	}
	delete(s.entries, id)
	return nil
}

// recordingNotifier counts events so tests can assert notification side
// effects without a delivery channel.
type recordingNotifier struct {
	booked   int
	canceled int
	waitlist int
}

func (n *recordingNotifier) SlotBooked(context.Context, *model.Slot, *model.User) { n.booked++ }
func (n *recordingNotifier) SlotCanceled(context.Context, *model.Slot, bool)      { n.canceled++ }
func (n *recordingNotifier) WaitlistRequest(context.Context, *model.WaitlistEntry) {
	n.waitlist++
}
